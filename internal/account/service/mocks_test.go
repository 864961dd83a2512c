package service

import (
	"context"

	"github.com/AlibekovAA/sunzone-forum/internal/account/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/account/repository"
)

type mockAccountRepo struct {
	createFunc      func(ctx context.Context, account domain.Account) error
	findByIDFunc    func(ctx context.Context, id domain.ID) (domain.Account, error)
	findByEmailFunc func(ctx context.Context, email string) (domain.Account, error)
	listFunc        func(ctx context.Context) ([]domain.Account, error)
	updateFunc      func(ctx context.Context, id domain.ID, changes domain.Changes) error
	deleteFunc      func(ctx context.Context, id domain.ID) error
	countFunc       func(ctx context.Context) (int, error)
}

func (m *mockAccountRepo) Create(ctx context.Context, account domain.Account) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Account{}, nil
}

func (m *mockAccountRepo) Update(ctx context.Context, id domain.ID, changes domain.Changes) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, changes)
	}
	return nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAccountRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "account-1", nil
}
