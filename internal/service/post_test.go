package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/models"
	"github.com/post-hub/iam-service/internal/repo"
	"github.com/post-hub/iam-service/internal/tokens"
)

func newTestPostService(t *testing.T) *PostService {
	t.Helper()
	return &PostService{Repo: repo.New(initTestDB(t))}
}

func asUser(id uint) tokens.Claims {
	return tokens.Claims{UserID: id, Roles: []models.SystemRole{models.RoleUser}}
}

func asAdmin(id uint) tokens.Claims {
	return tokens.Claims{UserID: id, Roles: []models.SystemRole{models.RoleAdmin}}
}

func TestPostService_CreateAndGet(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, asUser(1), "First post", "hello")
	require.NoError(t, err)
	require.NotZero(t, post.ID)
	assert.Equal(t, uint(1), post.UserID)

	got, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First post", got.Title)
}

func TestPostService_Create_DuplicateTitle(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, asUser(1), "Unique title", "a")
	require.NoError(t, err)

	_, err = svc.Create(ctx, asUser(2), "Unique title", "b")
	assert.ErrorIs(t, err, apperr.ErrDataExists)
}

func TestPostService_Update_Guard(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, asUser(1), "Guarded", "original")
	require.NoError(t, err)

	// A different plain user is rejected before any write happens.
	_, err = svc.Update(ctx, asUser(2), post.ID, "Guarded", "hijacked")
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	unchanged, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", unchanged.Content)

	// The owner and any admin may update.
	_, err = svc.Update(ctx, asUser(1), post.ID, "Guarded", "by owner")
	require.NoError(t, err)
	_, err = svc.Update(ctx, asAdmin(99), post.ID, "Guarded", "by admin")
	require.NoError(t, err)
}

func TestPostService_Delete_Guard(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, asUser(1), "To delete", "x")
	require.NoError(t, err)

	err = svc.Delete(ctx, asUser(2), post.ID)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	require.NoError(t, svc.Delete(ctx, asUser(1), post.ID))

	// Soft-deleted posts read as missing.
	_, err = svc.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Deleting twice reports not-found, not a second success.
	err = svc.Delete(ctx, asAdmin(99), post.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostService_List_Paginates(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(t)
	ctx := context.Background()

	titles := []string{"a", "b", "c", "d", "e"}
	for _, title := range titles {
		_, err := svc.Create(ctx, asUser(1), title, "content")
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.Pages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "c", page.Content[0].Title)
}

func TestCommentService_Guard(t *testing.T) {
	t.Parallel()

	store := repo.New(initTestDB(t))
	posts := &PostService{Repo: store}
	comments := &CommentService{Repo: store}
	ctx := context.Background()

	post, err := posts.Create(ctx, asUser(1), "Discussed", "body")
	require.NoError(t, err)

	// Any authenticated user may comment on someone else's post.
	comment, err := comments.Create(ctx, asUser(2), post.ID, "nice post")
	require.NoError(t, err)

	// Only the comment's owner (or an admin) may change it.
	_, err = comments.Update(ctx, asUser(1), comment.ID, "edited")
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	_, err = comments.Update(ctx, asUser(2), comment.ID, "edited")
	require.NoError(t, err)

	require.NoError(t, comments.Delete(ctx, asAdmin(99), comment.ID))
	_, err = comments.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCommentService_Create_MissingPost(t *testing.T) {
	t.Parallel()

	comments := &CommentService{Repo: repo.New(initTestDB(t))}
	_, err := comments.Create(context.Background(), asUser(1), 12345, "into the void")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
