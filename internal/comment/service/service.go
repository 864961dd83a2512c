package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/sunzone-forum/internal/comment/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/comment/repository"
	"github.com/AlibekovAA/sunzone-forum/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/sunzone-forum/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
	"github.com/AlibekovAA/sunzone-forum/internal/common/validation"
	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
)

type CommentService struct {
	repo        repository.Repository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

type CommentServiceDeps struct {
	Repo        repository.Repository
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewCommentService(deps CommentServiceDeps) *CommentService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &CommentService{
		repo:        deps.Repo,
		idGenerator: deps.IDGenerator,
		clock:       clk,
		log:         deps.Log,
	}
}

type CreateInput struct {
	PostID      string `json:"postId" validate:"required"`
	ResponderID string `json:"responderId" validate:"required"`
	Text        string `json:"text" validate:"required"`
}

func (s *CommentService) ListAll(ctx context.Context) ([]domain.Comment, error) {
	return s.repo.List(ctx)
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	return s.repo.ListByPost(ctx, postID)
}

func (s *CommentService) ListByResponder(ctx context.Context, responderID string) ([]domain.Comment, error) {
	return s.repo.ListByResponder(ctx, responderID)
}

// Create stores the comment without checking that the post or responder
// exist.
func (s *CommentService) Create(ctx context.Context, input CreateInput) (domain.Comment, error) {
	if err := validation.Struct(input); err != nil {
		return domain.Comment{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Comment{}, fmt.Errorf("generate id: %w", err)
	}

	now := clock.Timestamp(s.clock)
	c := domain.Comment{
		ID:          domain.ID(id),
		PostID:      input.PostID,
		ResponderID: input.ResponderID,
		Text:        input.Text,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"post_id":      input.PostID,
			"responder_id": input.ResponderID,
			"action":       "comment_create_failed",
		}).Errorf("comment create failed: %v", err)
		return domain.Comment{}, err
	}

	metrics.CommentsCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"comment_id": id,
		"post_id":    input.PostID,
		"action":     "comment_created",
	}).Info("comment created")

	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, domain.ID(id)); err != nil {
		return mapRepoError(err)
	}
	if err := s.repo.Delete(ctx, domain.ID(id)); err != nil {
		return mapRepoError(err)
	}

	metrics.ResourcesDeletedTotal.WithLabelValues("comment").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"comment_id": id,
		"action":     "comment_deleted",
	}).Info("comment deleted")
	return nil
}

func (s *CommentService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrCommentNotFound) {
		return commonerrors.ErrCommentNotFound
	}
	return err
}
