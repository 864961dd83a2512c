package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlibekovAA/sunzone-forum/internal/common/clock"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
	"github.com/AlibekovAA/sunzone-forum/internal/post/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/post/repository"
)

type mockPostRepo struct {
	createFunc      func(ctx context.Context, post domain.Post) error
	findByIDFunc    func(ctx context.Context, id domain.ID) (domain.Post, error)
	listFunc        func(ctx context.Context) ([]domain.Post, error)
	listByOwnerFunc func(ctx context.Context, ownerID string) ([]domain.Post, error)
	deleteFunc      func(ctx context.Context, id domain.ID) error
}

func (m *mockPostRepo) Create(ctx context.Context, post domain.Post) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id domain.ID) (domain.Post, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Post{}, repository.ErrPostNotFound
}

func (m *mockPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Post{}, nil
}

func (m *mockPostRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Post, error) {
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, ownerID)
	}
	return []domain.Post{}, nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) Count(context.Context) (int, error) {
	return 0, nil
}

type mockIDGenerator struct{}

func (mockIDGenerator) NewID() (string, error) { return "post-1", nil }

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func setupPostService(t *testing.T) (*PostService, *mockPostRepo) {
	t.Helper()
	repo := &mockPostRepo{}
	svc := NewPostService(PostServiceDeps{
		Repo:        repo,
		IDGenerator: mockIDGenerator{},
		Clock:       clock.NewMockClock(testNow),
		Log:         logger.NewWithWriter(&bytes.Buffer{}, "test", "info"),
	})
	return svc, repo
}

func TestPostService_Create(t *testing.T) {
	svc, repo := setupPostService(t)
	var stored domain.Post
	repo.createFunc = func(_ context.Context, post domain.Post) error {
		stored = post
		return nil
	}

	got, err := svc.Create(context.Background(), CreateInput{OwnerID: "poster-1", Title: "Hello", Body: "World"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "post-1" || stored.ID != "post-1" {
		t.Errorf("expected generated id, got %q", got.ID)
	}
	if !got.CreatedAt.Equal(testNow) || !got.UpdatedAt.Equal(testNow) {
		t.Errorf("unexpected timestamps: %+v", got)
	}
}

func TestPostService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		message string
	}{
		{"missing owner", CreateInput{Title: "t", Body: "b"}, "ownerId is required"},
		{"missing title", CreateInput{OwnerID: "o", Body: "b"}, "title is required"},
		{"missing body", CreateInput{OwnerID: "o", Title: "t"}, "body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setupPostService(t)
			repo.createFunc = func(context.Context, domain.Post) error {
				t.Error("repository must not be called")
				return nil
			}

			_, err := svc.Create(context.Background(), tt.input)
			de, ok := commonerrors.AsDomainError(err)
			if !ok || !errors.Is(err, commonerrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if de.Message() != tt.message {
				t.Errorf("expected %q, got %q", tt.message, de.Message())
			}
		})
	}
}

func TestPostService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupPostService(t)

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, commonerrors.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Delete_UsesCheckedID(t *testing.T) {
	svc, repo := setupPostService(t)
	repo.findByIDFunc = func(_ context.Context, id domain.ID) (domain.Post, error) {
		return domain.Post{ID: id}, nil
	}
	var deleted domain.ID
	repo.deleteFunc = func(_ context.Context, id domain.ID) error {
		deleted = id
		return nil
	}

	if err := svc.Delete(context.Background(), "post-7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "post-7" {
		t.Errorf("expected post-7 deleted, got %q", deleted)
	}
}

func TestPostService_Delete_Missing(t *testing.T) {
	svc, repo := setupPostService(t)
	repo.deleteFunc = func(context.Context, domain.ID) error {
		t.Error("delete must not run when the post is missing")
		return nil
	}

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, commonerrors.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_ListByOwner_Empty(t *testing.T) {
	svc, _ := setupPostService(t)

	posts, err := svc.ListByOwner(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected no posts, got %d", len(posts))
	}
}
