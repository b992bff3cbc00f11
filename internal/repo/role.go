package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/models"
)

func (r *GormRepo) FindRoleBySystemRole(ctx context.Context, sr models.SystemRole) (*models.Role, error) {
	var role models.Role
	err := r.DB.WithContext(ctx).
		Where("user_system_role = ?", sr).
		First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("role %s: %w", sr, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *GormRepo) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("role %s: %w", name, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// SeedRoles creates the default role rows once; re-running is a no-op.
func (r *GormRepo) SeedRoles(ctx context.Context) error {
	defaults := []models.Role{
		{Name: "Super administrator", SystemRole: models.RoleSuperAdmin, Active: true, CreatedBy: "system"},
		{Name: "Administrator", SystemRole: models.RoleAdmin, Active: true, CreatedBy: "system"},
		{Name: "User", SystemRole: models.RoleUser, Active: true, CreatedBy: "system"},
	}
	for _, role := range defaults {
		role := role
		err := r.DB.WithContext(ctx).
			Where("user_system_role = ?", role.SystemRole).
			FirstOrCreate(&role).Error
		if err != nil {
			return err
		}
	}
	return nil
}
