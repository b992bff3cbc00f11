package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/models"
)

// tokenRetries bounds the collision-check loop on the unique token column.
// A collision needs two identical 256-bit random draws, so one retry is
// already more than the table will ever see.
const tokenRetries = 3

// IssueOrRotateRefreshToken gives the user a fresh token value, replacing
// the existing row if one exists. At most one row per user survives; the
// unique index on user_id backs that up against concurrent logins.
func (r *GormRepo) IssueOrRotateRefreshToken(ctx context.Context, userID uint) (*models.RefreshToken, error) {
	var out *models.RefreshToken
	for attempt := 0; attempt < tokenRetries; attempt++ {
		value, err := newTokenValue()
		if err != nil {
			return nil, err
		}
		now := time.Now().UTC()

		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.RefreshToken
			findErr := tx.Where("user_id = ?", userID).First(&existing).Error
			switch {
			case findErr == nil:
				existing.Token = value
				existing.Created = now
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				out = &existing
				return nil
			case errors.Is(findErr, gorm.ErrRecordNotFound):
				fresh := models.RefreshToken{Token: value, UserID: userID, Created: now}
				if err := tx.Create(&fresh).Error; err != nil {
					return err
				}
				out = &fresh
				return nil
			default:
				return findErr
			}
		})
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("refresh token: could not generate a unique value")
}

// ValidateAndRotateRefreshToken exchanges a presented token value for a new
// one bound to the same user. The rotation is a single guarded UPDATE keyed
// on the old value, so two concurrent calls with the same stale value get
// exactly one success; the loser sees NOT_FOUND.
func (r *GormRepo) ValidateAndRotateRefreshToken(ctx context.Context, value string) (*models.RefreshToken, error) {
	for attempt := 0; attempt < tokenRetries; attempt++ {
		next, err := newTokenValue()
		if err != nil {
			return nil, err
		}

		result := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
			Where("token = ?", value).
			Updates(map[string]any{
				"token":   next,
				"created": time.Now().UTC(),
			})
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, fmt.Errorf("refresh token: %w", apperr.ErrNotFound)
		}

		var rotated models.RefreshToken
		if err := r.DB.WithContext(ctx).Where("token = ?", next).First(&rotated).Error; err != nil {
			return nil, err
		}
		return &rotated, nil
	}
	return nil, fmt.Errorf("refresh token: could not generate a unique value")
}

// FindRefreshTokenByUserID exists for introspection and tests; the issue
// and rotate paths never read through it.
func (r *GormRepo) FindRefreshTokenByUserID(ctx context.Context, userID uint) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("refresh token: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}
