package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/sunzone-forum/internal/post/domain"
)

type Repository interface {
	Create(ctx context.Context, post domain.Post) error
	FindByID(ctx context.Context, id domain.ID) (domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Post, error)
	Delete(ctx context.Context, id domain.ID) error
	Count(ctx context.Context) (int, error)
}

var ErrPostNotFound = errors.New("post not found")

const table = "posts"
