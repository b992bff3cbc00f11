package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/models"
	"github.com/post-hub/iam-service/internal/repo"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	store := repo.New(initTestDB(t))
	require.NoError(t, store.SeedRoles(context.Background()))
	return &UserService{Repo: store}
}

func TestUserService_Create_AdminOnly(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, asUser(1), "bob", "bob@x.com", "Secret1!")
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	user, err := svc.Create(ctx, asAdmin(1), "bob", "bob@x.com", "Secret1!")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, user.RegistrationStatus)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, models.RoleUser, user.Roles[0].SystemRole)
}

func TestUserService_Update_GuardAndUniqueness(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(t)
	ctx := context.Background()

	bob, err := svc.Create(ctx, asAdmin(1), "bob", "bob@x.com", "Secret1!")
	require.NoError(t, err)
	carol, err := svc.Create(ctx, asAdmin(1), "carol", "carol@x.com", "Secret1!")
	require.NoError(t, err)

	// A stranger may not edit bob's profile.
	_, err = svc.Update(ctx, asUser(carol.ID), bob.ID, "bobby", "bob@x.com")
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	// Bob may rename himself, but not onto carol's username.
	_, err = svc.Update(ctx, asUser(bob.ID), bob.ID, "carol", "bob@x.com")
	assert.ErrorIs(t, err, apperr.ErrDataExists)

	updated, err := svc.Update(ctx, asUser(bob.ID), bob.ID, "bobby", "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, "bobby", updated.Username)
}

func TestUserService_SoftDelete(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(t)
	ctx := context.Background()

	bob, err := svc.Create(ctx, asAdmin(1), "bob", "bob@x.com", "Secret1!")
	require.NoError(t, err)

	err = svc.Delete(ctx, asUser(777), bob.ID)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	require.NoError(t, svc.Delete(ctx, asUser(bob.ID), bob.ID))

	_, err = svc.GetByID(ctx, bob.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// The row is flagged, never removed.
	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.User{}).Where("id = ?", bob.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
