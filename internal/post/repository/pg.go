package repository

import (
	"context"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/sunzone-forum/internal/common/db"
	"github.com/AlibekovAA/sunzone-forum/internal/post/domain"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, post domain.Post) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO posts (id, owner_id, title, body, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(post.ID),
		post.OwnerID,
		post.Title,
		post.Body,
		post.CreatedAt,
		post.UpdatedAt,
	)
	return db.HandleExecError(err, table, "create post", start)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Post, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, owner_id, title, body, created_at, updated_at FROM posts WHERE id = $1`,
		string(id),
	)

	var post domain.Post
	err := row.Scan(&post.ID, &post.OwnerID, &post.Title, &post.Body, &post.CreatedAt, &post.UpdatedAt)
	if err := db.HandleQueryError(err, ErrPostNotFound, table, "find post by id", start); err != nil {
		return domain.Post{}, err
	}
	post.CreatedAt, post.UpdatedAt = post.CreatedAt.UTC(), post.UpdatedAt.UTC()
	return post, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Post, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, owner_id, title, body, created_at, updated_at FROM posts ORDER BY created_at ASC, id ASC`,
	)
	return r.collect(rows, err, "list posts", start)
}

func (r *PgRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Post, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, owner_id, title, body, created_at, updated_at FROM posts WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`,
		ownerID,
	)
	return r.collect(rows, err, "list posts by owner", start)
}

func (r *PgRepository) collect(rows pgx.Rows, err error, operation string, start time.Time) ([]domain.Post, error) {
	if err != nil {
		return nil, db.HandleQueryError(err, ErrPostNotFound, table, operation, start)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.ID, &post.OwnerID, &post.Title, &post.Body, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.CreatedAt, post.UpdatedAt = post.CreatedAt.UTC(), post.UpdatedAt.UTC()
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, ErrPostNotFound, table, operation, start)
	}
	db.MeasureQueryDuration(table, operation, start)

	return posts, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, string(id))
	if err := db.HandleExecError(err, table, "delete post", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PgRepository) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	if err := db.HandleQueryError(err, ErrPostNotFound, table, "count posts", start); err != nil {
		return 0, err
	}
	return n, nil
}
