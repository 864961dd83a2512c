package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/sunzone-forum/internal/comment/domain"
)

type Repository interface {
	Create(ctx context.Context, comment domain.Comment) error
	FindByID(ctx context.Context, id domain.ID) (domain.Comment, error)
	List(ctx context.Context) ([]domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	ListByResponder(ctx context.Context, responderID string) ([]domain.Comment, error)
	Delete(ctx context.Context, id domain.ID) error
	Count(ctx context.Context) (int, error)
}

var ErrCommentNotFound = errors.New("comment not found")

const (
	table         = "comments"
	selectColumns = `SELECT id, post_id, responder_id, text, created_at, updated_at FROM comments`
	orderBy       = ` ORDER BY created_at ASC, id ASC`
)
