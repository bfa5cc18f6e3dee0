package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/skillfolio/portfolio-api/internal/models"
)

// GetOrCreateAdminProfile mirrors a get_or_create: the profile row is lazily
// created the first time the admin touches it.
func (r *GormRepo) GetOrCreateAdminProfile(ctx context.Context, userID uint) (*models.AdminProfile, error) {
	var profile models.AdminProfile
	err := r.DB.WithContext(ctx).
		Where(models.AdminProfile{UserID: userID}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) SaveAdminProfile(ctx context.Context, p *models.AdminProfile) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) FindAdminProfile(ctx context.Context, userID uint) (*models.AdminProfile, error) {
	var profile models.AdminProfile
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) CreateSkill(ctx context.Context, s *models.Skill) error {
	if err := r.DB.WithContext(ctx).Create(s).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("create skill: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}

// DeleteSkill is scoped to the owning user so an id can never delete
// someone else's row.
func (r *GormRepo) DeleteSkill(ctx context.Context, id, userID uint) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Skill{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) ListSkills(ctx context.Context, userID uint) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&skills).Error
	return skills, err
}

func (r *GormRepo) CreateProject(ctx context.Context, p *models.Project) error {
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("create project: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}

func (r *GormRepo) DeleteProject(ctx context.Context, id, userID uint) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) ListProjects(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&projects).Error
	return projects, err
}

func (r *GormRepo) FindProjectByTitle(ctx context.Context, title string) (*models.Project, error) {
	var project models.Project
	err := r.DB.WithContext(ctx).Where("title = ?", title).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}
