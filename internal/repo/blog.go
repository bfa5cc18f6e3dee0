package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/skillfolio/portfolio-api/internal/models"
)

func (r *GormRepo) CreateBlogPost(ctx context.Context, p *models.BlogPost) error {
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("create blog post: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}

func (r *GormRepo) FindBlogPostByTitle(ctx context.Context, title string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.DB.WithContext(ctx).Preload("Author").Where("title = ?", title).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *GormRepo) DeleteBlogPostByTitle(ctx context.Context, title string, authorID uint) error {
	result := r.DB.WithContext(ctx).
		Where("title = ? AND author_id = ?", title, authorID).
		Delete(&models.BlogPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) ListBlogPosts(ctx context.Context, authorID uint, offset, limit int) (int64, []models.BlogPost, error) {
	var total int64
	q := r.DB.WithContext(ctx).Model(&models.BlogPost{}).Where("author_id = ?", authorID)
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var posts []models.BlogPost
	err := r.DB.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return total, posts, err
}

func (r *GormRepo) CreateBlogComment(ctx context.Context, c *models.BlogComment) error {
	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	// reload with the author attached for the response body
	return r.DB.WithContext(ctx).Preload("User").First(c, c.ID).Error
}

func (r *GormRepo) ListBlogComments(ctx context.Context, blogPostID uint, offset, limit int) (int64, []models.BlogComment, error) {
	var total int64
	q := r.DB.WithContext(ctx).Model(&models.BlogComment{}).Where("blog_post_id = ?", blogPostID)
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var comments []models.BlogComment
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("blog_post_id = ?", blogPostID).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	return total, comments, err
}

func (r *GormRepo) CreateProjectComment(ctx context.Context, c *models.ProjectComment) error {
	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Preload("User").First(c, c.ID).Error
}

func (r *GormRepo) ListProjectComments(ctx context.Context, projectID uint, offset, limit int) (int64, []models.ProjectComment, error) {
	var total int64
	q := r.DB.WithContext(ctx).Model(&models.ProjectComment{}).Where("project_id = ?", projectID)
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var comments []models.ProjectComment
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	return total, comments, err
}
