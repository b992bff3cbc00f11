package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/models"
)

func (r *GormRepo) FindActiveCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.DB.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("comment %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *GormRepo) SaveComment(ctx context.Context, comment *models.Comment) error {
	return r.DB.WithContext(ctx).Save(comment).Error
}

func (r *GormRepo) SoftDeleteComment(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *GormRepo) ListCommentsByPost(ctx context.Context, postID uint, offset, limit int) ([]models.Comment, int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ? AND deleted = ?", postID, false).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	var comments []models.Comment
	err = r.DB.WithContext(ctx).
		Where("post_id = ? AND deleted = ?", postID, false).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	return comments, total, err
}
