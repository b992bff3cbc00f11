package service

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/post-hub/iam-service/internal/access"
	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/logging"
	"github.com/post-hub/iam-service/internal/models"
	"github.com/post-hub/iam-service/internal/mykafka"
	"github.com/post-hub/iam-service/internal/repo"
	"github.com/post-hub/iam-service/internal/search"
	"github.com/post-hub/iam-service/internal/tokens"
	"github.com/post-hub/iam-service/internal/util"
)

// PostService owns post CRUD. Every mutation receives the caller's verified
// claims explicitly and runs the owner-or-privileged guard before touching
// the row.
type PostService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer

	// ES is optional; nil disables search indexing and queries.
	ES *elasticsearch.Client
}

func (s *PostService) GetByID(ctx context.Context, postID uint) (*models.Post, error) {
	return s.Repo.FindActivePostByID(ctx, postID)
}

func (s *PostService) Create(ctx context.Context, caller tokens.Claims, title, content string) (*models.Post, error) {
	l := logging.FromContext(ctx).With("svc", "post.create")

	if taken, err := s.Repo.PostTitleExists(ctx, title); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("post title %q: %w", title, apperr.ErrDataExists)
	}

	post := models.Post{Title: title, Content: content, UserID: caller.UserID}
	if err := s.Repo.CreatePost(ctx, &post); err != nil {
		l.Error("post_create_failed", "error", err)
		return nil, err
	}

	s.index(ctx, &post)
	s.publish(ctx, "post_created", caller.UserID, post.ID)
	return &post, nil
}

func (s *PostService) Update(ctx context.Context, caller tokens.Claims, postID uint, title, content string) (*models.Post, error) {
	post, err := s.Repo.FindActivePostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !access.Authorize(caller.UserID, post.UserID, caller.Roles) {
		return nil, apperr.ErrAccessDenied
	}

	if title != post.Title {
		if taken, err := s.Repo.PostTitleExists(ctx, title); err != nil {
			return nil, err
		} else if taken {
			return nil, fmt.Errorf("post title %q: %w", title, apperr.ErrDataExists)
		}
	}

	post.Title = title
	post.Content = content
	if err := s.Repo.SavePost(ctx, post); err != nil {
		return nil, err
	}

	s.index(ctx, post)
	s.publish(ctx, "post_updated", caller.UserID, post.ID)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, caller tokens.Claims, postID uint) error {
	post, err := s.Repo.FindActivePostByID(ctx, postID)
	if err != nil {
		return err
	}
	if !access.Authorize(caller.UserID, post.UserID, caller.Roles) {
		return apperr.ErrAccessDenied
	}
	if err := s.Repo.SoftDeletePost(ctx, postID); err != nil {
		return err
	}
	s.publish(ctx, "post_deleted", caller.UserID, postID)
	return nil
}

func (s *PostService) List(ctx context.Context, page, size int) (util.PaginationResponse[models.Post], error) {
	offset, limit := util.Window(page, size)
	posts, total, err := s.Repo.ListPosts(ctx, offset, limit)
	if err != nil {
		return util.PaginationResponse[models.Post]{}, err
	}
	return util.NewPaginationResponse(posts, total, page, size), nil
}

func (s *PostService) Search(ctx context.Context, query string, page, size int) (util.PaginationResponse[models.Post], error) {
	if s.ES == nil {
		return s.List(ctx, page, size)
	}
	offset, limit := util.Window(page, size)
	total, posts, err := search.Posts(ctx, s.ES, query, offset, limit)
	if err != nil {
		return util.PaginationResponse[models.Post]{}, err
	}
	return util.NewPaginationResponse(posts, total, page, size), nil
}

func (s *PostService) index(ctx context.Context, post *models.Post) {
	if s.ES == nil {
		return
	}
	if err := search.IndexPost(ctx, s.ES, post); err != nil {
		logging.FromContext(ctx).Error("es_index_failed", "post_id", post.ID, "error", err)
	}
}

func (s *PostService) publish(ctx context.Context, eventType string, userID, entityID uint) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, eventType, userID, entityID); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "type", eventType, "error", err)
	}
}
