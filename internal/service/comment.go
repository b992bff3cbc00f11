package service

import (
	"context"
	"time"

	"github.com/post-hub/iam-service/internal/access"
	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/logging"
	"github.com/post-hub/iam-service/internal/models"
	"github.com/post-hub/iam-service/internal/mykafka"
	"github.com/post-hub/iam-service/internal/repo"
	"github.com/post-hub/iam-service/internal/tokens"
	"github.com/post-hub/iam-service/internal/util"
)

type CommentService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (s *CommentService) GetByID(ctx context.Context, commentID uint) (*models.Comment, error) {
	return s.Repo.FindActiveCommentByID(ctx, commentID)
}

// Create attaches a comment to an existing post; commenting needs no
// ownership, only authentication.
func (s *CommentService) Create(ctx context.Context, caller tokens.Claims, postID uint, content string) (*models.Comment, error) {
	if _, err := s.Repo.FindActivePostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{PostID: postID, UserID: caller.UserID, Content: content}
	if err := s.Repo.CreateComment(ctx, &comment); err != nil {
		return nil, err
	}
	s.publish(ctx, "comment_created", caller.UserID, comment.ID)
	return &comment, nil
}

func (s *CommentService) Update(ctx context.Context, caller tokens.Claims, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.Repo.FindActiveCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !access.Authorize(caller.UserID, comment.UserID, caller.Roles) {
		return nil, apperr.ErrAccessDenied
	}

	comment.Content = content
	if err := s.Repo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}
	s.publish(ctx, "comment_updated", caller.UserID, comment.ID)
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, caller tokens.Claims, commentID uint) error {
	comment, err := s.Repo.FindActiveCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !access.Authorize(caller.UserID, comment.UserID, caller.Roles) {
		return apperr.ErrAccessDenied
	}
	if err := s.Repo.SoftDeleteComment(ctx, commentID); err != nil {
		return err
	}
	s.publish(ctx, "comment_deleted", caller.UserID, commentID)
	return nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint, page, size int) (util.PaginationResponse[models.Comment], error) {
	if _, err := s.Repo.FindActivePostByID(ctx, postID); err != nil {
		return util.PaginationResponse[models.Comment]{}, err
	}
	offset, limit := util.Window(page, size)
	comments, total, err := s.Repo.ListCommentsByPost(ctx, postID, offset, limit)
	if err != nil {
		return util.PaginationResponse[models.Comment]{}, err
	}
	return util.NewPaginationResponse(comments, total, page, size), nil
}

func (s *CommentService) publish(ctx context.Context, eventType string, userID, entityID uint) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, eventType, userID, entityID); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "type", eventType, "error", err)
	}
}
