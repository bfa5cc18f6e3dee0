package repo

import (
	"context"
	"fmt"

	"github.com/skillfolio/portfolio-api/internal/models"
)

// IsBlacklisted is checked on every authenticated request after signature
// verification succeeds and before the user row is loaded.
func (r *GormRepo) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.BlacklistedToken{}).
		Where("token = ?", rawToken).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Blacklist records the literal token string. Revoking the same token twice
// violates the unique constraint and comes back as ErrDuplicate; callers
// surface that as a conflict instead of swallowing it.
func (r *GormRepo) Blacklist(ctx context.Context, rawToken string) error {
	entry := models.BlacklistedToken{Token: rawToken}
	if err := r.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("blacklist token: %w", ErrDuplicate)
		}
		return err
	}
	return nil
}
