package service

import (
	"context"
	"fmt"

	"github.com/post-hub/iam-service/internal/access"
	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/hash"
	"github.com/post-hub/iam-service/internal/logging"
	"github.com/post-hub/iam-service/internal/models"
	"github.com/post-hub/iam-service/internal/repo"
	"github.com/post-hub/iam-service/internal/tokens"
	"github.com/post-hub/iam-service/internal/util"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.Repo.FindActiveUserByID(ctx, userID)
}

// Create is the admin-only user creation path. The route-level gate already
// requires a privileged caller; the check here keeps the rule enforced even
// if the service is wired behind a different route.
func (s *UserService) Create(ctx context.Context, caller tokens.Claims, username, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.create")

	if !access.IsPrivileged(caller.Roles) {
		return nil, apperr.ErrAccessDenied
	}

	if taken, err := s.Repo.UsernameExists(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("username %q: %w", username, apperr.ErrDataExists)
	}
	if taken, err := s.Repo.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email %q: %w", email, apperr.ErrDataExists)
	}
	if !hash.ValidPassword(password) {
		return nil, apperr.ErrInvalidPassword
	}

	userRole, err := s.Repo.FindRoleBySystemRole(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:           username,
		Email:              email,
		PasswordHash:       pwHash,
		RegistrationStatus: models.StatusActive,
		Roles:              []models.Role{*userRole},
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		l.Error("user_create_failed", "error", err)
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, caller tokens.Claims, userID uint, username, email string) (*models.User, error) {
	user, err := s.Repo.FindActiveUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !access.Authorize(caller.UserID, userID, caller.Roles) {
		return nil, apperr.ErrAccessDenied
	}

	if username != user.Username {
		if taken, err := s.Repo.UsernameExists(ctx, username); err != nil {
			return nil, err
		} else if taken {
			return nil, fmt.Errorf("username %q: %w", username, apperr.ErrDataExists)
		}
	}
	if email != user.Email {
		if taken, err := s.Repo.EmailExists(ctx, email); err != nil {
			return nil, err
		} else if taken {
			return nil, fmt.Errorf("email %q: %w", email, apperr.ErrDataExists)
		}
	}

	user.Username = username
	user.Email = email
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, caller tokens.Claims, userID uint) error {
	if _, err := s.Repo.FindActiveUserByID(ctx, userID); err != nil {
		return err
	}
	if !access.Authorize(caller.UserID, userID, caller.Roles) {
		return apperr.ErrAccessDenied
	}
	return s.Repo.SoftDeleteUser(ctx, userID)
}

func (s *UserService) List(ctx context.Context, page, size int) (util.PaginationResponse[models.User], error) {
	offset, limit := util.Window(page, size)
	users, total, err := s.Repo.ListUsers(ctx, offset, limit)
	if err != nil {
		return util.PaginationResponse[models.User]{}, err
	}
	return util.NewPaginationResponse(users, total, page, size), nil
}
