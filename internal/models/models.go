package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"      json:"id"`
	Email        string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FullName     string `gorm:"size:50;not null"              json:"fullname"`
	Username     string `gorm:"size:150"                      json:"username"`
	PasswordHash string `gorm:"not null"                      json:"-"`
	IsAdmin      bool   `gorm:"default:false"                 json:"is_admin"`
	ProfileURL   string `gorm:"size:1250"                     json:"profile_url"`
}

type AdminProfile struct {
	ID      uint   `gorm:"primaryKey"           json:"-"`
	UserID  uint   `gorm:"uniqueIndex;not null" json:"-"`
	Career  string `gorm:"size:255"             json:"career"`
	Country string `gorm:"size:50"              json:"country"`
	City    string `gorm:"size:100"             json:"city"`
	AboutMe string `json:"about_me"`
}

// BlacklistedToken holds the literal string of a revoked JWT. A row here
// invalidates the token immediately, regardless of its expiry claim.
type BlacklistedToken struct {
	ID            uint      `gorm:"primaryKey"                    json:"id"`
	Token         string    `gorm:"uniqueIndex;size:500;not null" json:"token"`
	BlacklistedAt time.Time `gorm:"index;autoCreateTime"          json:"blacklisted_at"`
}

func (BlacklistedToken) TableName() string { return "blacklisted_tokens" }

type Skill struct {
	ID          uint      `gorm:"primaryKey"                                   json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uniq_user_skill"         json:"-"`
	Name        string    `gorm:"size:50;not null;uniqueIndex:uniq_user_skill" json:"name"`
	LastUpdated time.Time `gorm:"autoUpdateTime"                               json:"last_updated"`
}

type Project struct {
	ID          uint   `gorm:"primaryKey"                                      json:"id"`
	UserID      uint   `gorm:"index;not null;uniqueIndex:uniq_user_project"    json:"-"`
	Title       string `gorm:"size:100;not null;uniqueIndex:uniq_user_project" json:"title"`
	Description string `json:"description"`
	Image       string `gorm:"size:1250" json:"image"`
}

type BlogPost struct {
	ID        uint      `gorm:"primaryKey"                    json:"id"`
	Title     string    `gorm:"uniqueIndex;size:100;not null" json:"title"`
	Content   string    `gorm:"not null"                      json:"content"`
	Category  string    `gorm:"size:100"                      json:"category"`
	Image     string    `gorm:"size:1250"                     json:"image"`
	AuthorID  uint      `gorm:"index;not null"                json:"-"`
	Author    User      `gorm:"foreignKey:AuthorID"           json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BlogComment struct {
	ID         uint      `gorm:"primaryKey"                           json:"id"`
	BlogPostID uint      `gorm:"index:idx_blog_comment_feed;not null" json:"-"`
	UserID     uint      `gorm:"not null"                             json:"-"`
	User       User      `gorm:"foreignKey:UserID"                    json:"user"`
	Content    string    `gorm:"not null"                             json:"content"`
	CreatedAt  time.Time `gorm:"index:idx_blog_comment_feed"          json:"created_at"`
}

type ProjectComment struct {
	ID        uint      `gorm:"primaryKey"                              json:"id"`
	ProjectID uint      `gorm:"index:idx_project_comment_feed;not null" json:"-"`
	UserID    uint      `gorm:"not null"                                json:"-"`
	User      User      `gorm:"foreignKey:UserID"                       json:"user"`
	Content   string    `gorm:"not null"                                json:"content"`
	CreatedAt time.Time `gorm:"index:idx_project_comment_feed"          json:"created_at"`
}
