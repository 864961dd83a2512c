package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlibekovAA/sunzone-forum/internal/comment/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/comment/repository"
	"github.com/AlibekovAA/sunzone-forum/internal/common/clock"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
)

type mockCommentRepo struct {
	createFunc   func(ctx context.Context, c domain.Comment) error
	findByIDFunc func(ctx context.Context, id domain.ID) (domain.Comment, error)
	deleteFunc   func(ctx context.Context, id domain.ID) error
}

func (m *mockCommentRepo) Create(ctx context.Context, c domain.Comment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id domain.ID) (domain.Comment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Comment{}, repository.ErrCommentNotFound
}

func (m *mockCommentRepo) List(context.Context) ([]domain.Comment, error) {
	return []domain.Comment{}, nil
}

func (m *mockCommentRepo) ListByPost(context.Context, string) ([]domain.Comment, error) {
	return []domain.Comment{}, nil
}

func (m *mockCommentRepo) ListByResponder(context.Context, string) ([]domain.Comment, error) {
	return []domain.Comment{}, nil
}

func (m *mockCommentRepo) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockCommentRepo) Count(context.Context) (int, error) {
	return 0, nil
}

type mockIDGenerator struct{}

func (mockIDGenerator) NewID() (string, error) { return "comment-1", nil }

func setupCommentService(t *testing.T) (*CommentService, *mockCommentRepo) {
	t.Helper()
	repo := &mockCommentRepo{}
	svc := NewCommentService(CommentServiceDeps{
		Repo:        repo,
		IDGenerator: mockIDGenerator{},
		Clock:       clock.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Log:         logger.NewWithWriter(&bytes.Buffer{}, "test", "info"),
	})
	return svc, repo
}

func TestCommentService_Create(t *testing.T) {
	svc, repo := setupCommentService(t)
	var stored domain.Comment
	repo.createFunc = func(_ context.Context, c domain.Comment) error {
		stored = c
		return nil
	}

	got, err := svc.Create(context.Background(), CreateInput{PostID: "missing-post", ResponderID: "r1", Text: "nice"})
	if err != nil {
		t.Fatalf("references are not checked, expected success: %v", err)
	}
	if got.ID != "comment-1" || stored.PostID != "missing-post" || stored.Text != "nice" {
		t.Errorf("unexpected comment: %+v", stored)
	}
}

func TestCommentService_Create_Validation(t *testing.T) {
	svc, _ := setupCommentService(t)

	_, err := svc.Create(context.Background(), CreateInput{PostID: "p1", ResponderID: "r1"})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Message() != "text is required" {
		t.Fatalf("expected text is required, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{PostID: "p1", Text: "x"})
	if de, _ := commonerrors.AsDomainError(err); de == nil || de.Message() != "responderId is required" {
		t.Fatalf("expected responderId is required, got %v", err)
	}
}

func TestCommentService_Delete(t *testing.T) {
	svc, repo := setupCommentService(t)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, commonerrors.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}

	repo.findByIDFunc = func(_ context.Context, id domain.ID) (domain.Comment, error) {
		return domain.Comment{ID: id}, nil
	}
	var deleted domain.ID
	repo.deleteFunc = func(_ context.Context, id domain.ID) error {
		deleted = id
		return nil
	}
	if err := svc.Delete(context.Background(), "c1"); err != nil || deleted != "c1" {
		t.Fatalf("expected c1 deleted, got %q (%v)", deleted, err)
	}
}
