package repository

import (
	"context"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/sunzone-forum/internal/comment/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/common/db"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, comment domain.Comment) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO comments (id, post_id, responder_id, text, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(comment.ID),
		comment.PostID,
		comment.ResponderID,
		comment.Text,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	return db.HandleExecError(err, table, "create comment", start)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Comment, error) {
	start := time.Now()
	row := r.pool.QueryRow(ctx, selectColumns+` WHERE id = $1`, string(id))

	var c domain.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.ResponderID, &c.Text, &c.CreatedAt, &c.UpdatedAt)
	if err := db.HandleQueryError(err, ErrCommentNotFound, table, "find comment by id", start); err != nil {
		return domain.Comment{}, err
	}
	c.CreatedAt, c.UpdatedAt = c.CreatedAt.UTC(), c.UpdatedAt.UTC()
	return c, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Comment, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, selectColumns+orderBy)
	return collect(rows, err, "list comments", start)
}

func (r *PgRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, selectColumns+` WHERE post_id = $1`+orderBy, postID)
	return collect(rows, err, "list comments by post", start)
}

func (r *PgRepository) ListByResponder(ctx context.Context, responderID string) ([]domain.Comment, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, selectColumns+` WHERE responder_id = $1`+orderBy, responderID)
	return collect(rows, err, "list comments by responder", start)
}

func collect(rows pgx.Rows, err error, operation string, start time.Time) ([]domain.Comment, error) {
	if err != nil {
		return nil, db.HandleQueryError(err, ErrCommentNotFound, table, operation, start)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.ResponderID, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.CreatedAt, c.UpdatedAt = c.CreatedAt.UTC(), c.UpdatedAt.UTC()
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, ErrCommentNotFound, table, operation, start)
	}
	db.MeasureQueryDuration(table, operation, start)

	return comments, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, string(id))
	if err := db.HandleExecError(err, table, "delete comment", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *PgRepository) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n)
	if err := db.HandleQueryError(err, ErrCommentNotFound, table, "count comments", start); err != nil {
		return 0, err
	}
	return n, nil
}
