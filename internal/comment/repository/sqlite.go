package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AlibekovAA/sunzone-forum/internal/comment/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/common/db"
)

type SQLiteRepository struct {
	db *sqlx.DB
}

func NewSQLiteRepository(conn *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: conn}
}

type commentRow struct {
	ID          string `db:"id"`
	PostID      string `db:"post_id"`
	ResponderID string `db:"responder_id"`
	Text        string `db:"text"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
}

func (row commentRow) toDomain() domain.Comment {
	return domain.Comment{
		ID:          domain.ID(row.ID),
		PostID:      row.PostID,
		ResponderID: row.ResponderID,
		Text:        row.Text,
		CreatedAt:   time.Unix(0, row.CreatedAt).UTC(),
		UpdatedAt:   time.Unix(0, row.UpdatedAt).UTC(),
	}
}

func (r *SQLiteRepository) Create(ctx context.Context, comment domain.Comment) error {
	start := time.Now()
	_, err := r.db.NamedExecContext(
		ctx,
		`INSERT INTO comments (id, post_id, responder_id, text, created_at, updated_at)
		 VALUES (:id, :post_id, :responder_id, :text, :created_at, :updated_at)`,
		commentRow{
			ID:          string(comment.ID),
			PostID:      comment.PostID,
			ResponderID: comment.ResponderID,
			Text:        comment.Text,
			CreatedAt:   comment.CreatedAt.UnixNano(),
			UpdatedAt:   comment.UpdatedAt.UnixNano(),
		},
	)
	return db.HandleExecError(err, table, "create comment", start)
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id domain.ID) (domain.Comment, error) {
	start := time.Now()
	var row commentRow
	err := r.db.GetContext(ctx, &row, selectColumns+` WHERE id = ?`, string(id))
	if err := db.HandleQueryError(err, ErrCommentNotFound, table, "find comment by id", start); err != nil {
		return domain.Comment{}, err
	}
	return row.toDomain(), nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Comment, error) {
	return r.selectComments(ctx, "list comments", selectColumns+orderBy)
}

func (r *SQLiteRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	return r.selectComments(ctx, "list comments by post", selectColumns+` WHERE post_id = ?`+orderBy, postID)
}

func (r *SQLiteRepository) ListByResponder(ctx context.Context, responderID string) ([]domain.Comment, error) {
	return r.selectComments(ctx, "list comments by responder", selectColumns+` WHERE responder_id = ?`+orderBy, responderID)
}

func (r *SQLiteRepository) selectComments(ctx context.Context, operation, query string, args ...any) ([]domain.Comment, error) {
	start := time.Now()
	var rows []commentRow
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err := db.HandleQueryError(err, ErrCommentNotFound, table, operation, start); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toDomain())
	}
	return comments, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, string(id))
	if err := db.HandleExecError(err, table, "delete comment", start); err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM comments`)
	if err := db.HandleQueryError(err, ErrCommentNotFound, table, "count comments", start); err != nil {
		return 0, err
	}
	return n, nil
}
