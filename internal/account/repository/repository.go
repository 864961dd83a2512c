package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/sunzone-forum/internal/account/domain"
)

// Repository stores one kind of account; the kind fixes the table.
type Repository interface {
	Create(ctx context.Context, account domain.Account) error
	FindByID(ctx context.Context, id domain.ID) (domain.Account, error)
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, id domain.ID, changes domain.Changes) error
	Delete(ctx context.Context, id domain.ID) error
	Count(ctx context.Context) (int, error)
}

var ErrAccountNotFound = errors.New("account not found")
