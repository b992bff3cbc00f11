package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/hash"
	"github.com/post-hub/iam-service/internal/logging"
	"github.com/post-hub/iam-service/internal/models"
	"github.com/post-hub/iam-service/internal/mykafka"
	"github.com/post-hub/iam-service/internal/repo"
	"github.com/post-hub/iam-service/internal/tokens"
)

// Profile is what login, register and refresh all return: the user's
// public fields plus a fresh access/refresh token pair.
type Profile struct {
	ID                 uint                      `json:"id"`
	Username           string                    `json:"username"`
	Email              string                    `json:"email"`
	RegistrationStatus models.RegistrationStatus `json:"registration_status"`
	LastLogin          *time.Time                `json:"last_login,omitempty"`
	Roles              []models.Role             `json:"roles"`
	Token              string                    `json:"token"`
	RefreshToken       string                    `json:"refresh_token"`
}

// AuthService orchestrates credential verification, refresh-token rotation
// and access-token minting.
type AuthService struct {
	Repo     *repo.GormRepo
	Codec    *tokens.Codec
	Producer *mykafka.Producer

	// Now is the clock source; nil means time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Login verifies the email/password pair and issues a new session. The
// failure is uniform: unknown email, deleted account and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Profile, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindActiveUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "user lookup", "error", err)
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}

	profile, err := s.issueSession(ctx, user)
	if err != nil {
		l.Error("login_failed", "reason", "session issue", "error", err)
		return nil, err
	}

	now := s.now()
	if err := s.Repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		l.Error("login_failed", "reason", "last login update", "error", err)
		return nil, err
	}
	profile.LastLogin = &now

	s.publish(ctx, "user_logged_in", user.ID, 0)
	l.Info("login_successful", "user_id", user.ID)
	return profile, nil
}

// Register creates an account with the default USER role and ACTIVE status,
// then issues a session of the same shape login returns.
func (s *AuthService) Register(ctx context.Context, username, email, password, confirmPassword string) (*Profile, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

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
	if password != confirmPassword {
		return nil, fmt.Errorf("passwords do not match: %w", apperr.ErrInvalidData)
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
		l.Error("register_failed", "reason", "password hash", "error", err)
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
		l.Error("register_failed", "reason", "user create", "error", err)
		return nil, err
	}

	profile, err := s.issueSession(ctx, &user)
	if err != nil {
		l.Error("register_failed", "reason", "session issue", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_registered", user.ID, 0)
	l.Info("register_successful", "user_id", user.ID)
	return profile, nil
}

// Refresh exchanges a refresh-token value for a rotated one plus a fresh
// access token. The presented value is dead afterwards whether or not the
// caller persists the replacement.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Profile, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	rotated, err := s.Repo.ValidateAndRotateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.FindActiveUserByID(ctx, rotated.UserID)
	if err != nil {
		l.Error("refresh_failed", "reason", "user lookup", "error", err)
		return nil, err
	}

	access, err := s.Codec.Mint(user.ID, models.SystemRoles(user.Roles), s.now())
	if err != nil {
		l.Error("refresh_failed", "reason", "token mint", "error", err)
		return nil, err
	}
	return s.profile(user, access, rotated.Token), nil
}

// issueSession rotates the stored refresh token and mints an access token.
func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*Profile, error) {
	refresh, err := s.Repo.IssueOrRotateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	access, err := s.Codec.Mint(user.ID, models.SystemRoles(user.Roles), s.now())
	if err != nil {
		return nil, err
	}
	return s.profile(user, access, refresh.Token), nil
}

func (s *AuthService) profile(user *models.User, access, refresh string) *Profile {
	return &Profile{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		RegistrationStatus: user.RegistrationStatus,
		LastLogin:          user.LastLogin,
		Roles:              user.Roles,
		Token:              access,
		RefreshToken:       refresh,
	}
}

func (s *AuthService) publish(ctx context.Context, eventType string, userID, entityID uint) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, eventType, userID, entityID); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "type", eventType, "error", err)
	}
}
