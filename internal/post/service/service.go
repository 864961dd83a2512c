package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/sunzone-forum/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/sunzone-forum/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
	"github.com/AlibekovAA/sunzone-forum/internal/common/validation"
	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
	"github.com/AlibekovAA/sunzone-forum/internal/post/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/post/repository"
)

type PostService struct {
	repo        repository.Repository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

type PostServiceDeps struct {
	Repo        repository.Repository
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewPostService(deps PostServiceDeps) *PostService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &PostService{
		repo:        deps.Repo,
		idGenerator: deps.IDGenerator,
		clock:       clk,
		log:         deps.Log,
	}
}

type CreateInput struct {
	OwnerID string `json:"ownerId" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

func (s *PostService) ListAll(ctx context.Context) ([]domain.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostService) GetByID(ctx context.Context, id string) (domain.Post, error) {
	post, err := s.repo.FindByID(ctx, domain.ID(id))
	if err != nil {
		return domain.Post{}, mapRepoError(err)
	}
	return post, nil
}

// ListByOwner returns an empty slice, not an error, when the owner has no
// posts.
func (s *PostService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Post, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *PostService) Create(ctx context.Context, input CreateInput) (domain.Post, error) {
	if err := validation.Struct(input); err != nil {
		return domain.Post{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Post{}, fmt.Errorf("generate id: %w", err)
	}

	now := clock.Timestamp(s.clock)
	post := domain.Post{
		ID:        domain.ID(id),
		OwnerID:   input.OwnerID,
		Title:     input.Title,
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": input.OwnerID,
			"action":   "post_create_failed",
		}).Errorf("post create failed: %v", err)
		return domain.Post{}, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id":  id,
		"owner_id": input.OwnerID,
		"action":   "post_created",
	}).Info("post created")

	return post, nil
}

// Delete removes the post with id. Comments attached to it are left alone.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, domain.ID(id)); err != nil {
		return mapRepoError(err)
	}
	if err := s.repo.Delete(ctx, domain.ID(id)); err != nil {
		return mapRepoError(err)
	}

	metrics.ResourcesDeletedTotal.WithLabelValues("post").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id": id,
		"action":  "post_deleted",
	}).Info("post deleted")
	return nil
}

func (s *PostService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return commonerrors.ErrPostNotFound
	}
	return err
}
