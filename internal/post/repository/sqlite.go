package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AlibekovAA/sunzone-forum/internal/common/db"
	"github.com/AlibekovAA/sunzone-forum/internal/post/domain"
)

type SQLiteRepository struct {
	db *sqlx.DB
}

func NewSQLiteRepository(conn *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: conn}
}

type postRow struct {
	ID        string `db:"id"`
	OwnerID   string `db:"owner_id"`
	Title     string `db:"title"`
	Body      string `db:"body"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func (row postRow) toDomain() domain.Post {
	return domain.Post{
		ID:        domain.ID(row.ID),
		OwnerID:   row.OwnerID,
		Title:     row.Title,
		Body:      row.Body,
		CreatedAt: time.Unix(0, row.CreatedAt).UTC(),
		UpdatedAt: time.Unix(0, row.UpdatedAt).UTC(),
	}
}

func (r *SQLiteRepository) Create(ctx context.Context, post domain.Post) error {
	start := time.Now()
	_, err := r.db.NamedExecContext(
		ctx,
		`INSERT INTO posts (id, owner_id, title, body, created_at, updated_at)
		 VALUES (:id, :owner_id, :title, :body, :created_at, :updated_at)`,
		postRow{
			ID:        string(post.ID),
			OwnerID:   post.OwnerID,
			Title:     post.Title,
			Body:      post.Body,
			CreatedAt: post.CreatedAt.UnixNano(),
			UpdatedAt: post.UpdatedAt.UnixNano(),
		},
	)
	return db.HandleExecError(err, table, "create post", start)
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id domain.ID) (domain.Post, error) {
	start := time.Now()
	var row postRow
	err := r.db.GetContext(ctx, &row, `SELECT id, owner_id, title, body, created_at, updated_at FROM posts WHERE id = ?`, string(id))
	if err := db.HandleQueryError(err, ErrPostNotFound, table, "find post by id", start); err != nil {
		return domain.Post{}, err
	}
	return row.toDomain(), nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Post, error) {
	return r.selectPosts(ctx, "list posts",
		`SELECT id, owner_id, title, body, created_at, updated_at FROM posts ORDER BY created_at ASC, id ASC`)
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Post, error) {
	return r.selectPosts(ctx, "list posts by owner",
		`SELECT id, owner_id, title, body, created_at, updated_at FROM posts WHERE owner_id = ? ORDER BY created_at ASC, id ASC`, ownerID)
}

func (r *SQLiteRepository) selectPosts(ctx context.Context, operation, query string, args ...any) ([]domain.Post, error) {
	start := time.Now()
	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err := db.HandleQueryError(err, ErrPostNotFound, table, operation, start); err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toDomain())
	}
	return posts, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, string(id))
	if err := db.HandleExecError(err, table, "delete post", start); err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM posts`)
	if err := db.HandleQueryError(err, ErrPostNotFound, table, "count posts", start); err != nil {
		return 0, err
	}
	return n, nil
}
