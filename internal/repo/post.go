package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/models"
)

func (r *GormRepo) FindActivePostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.DB.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("post %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *GormRepo) PostTitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Post{}).
		Where("title = ?", title).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreatePost(ctx context.Context, post *models.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *GormRepo) SavePost(ctx context.Context, post *models.Post) error {
	return r.DB.WithContext(ctx).Save(post).Error
}

func (r *GormRepo) SoftDeletePost(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *GormRepo) ListPosts(ctx context.Context, offset, limit int) ([]models.Post, int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Post{}).
		Where("deleted = ?", false).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	var posts []models.Post
	err = r.DB.WithContext(ctx).
		Where("deleted = ?", false).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}
