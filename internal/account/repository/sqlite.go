package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AlibekovAA/sunzone-forum/internal/account/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/common/db"
)

type SQLiteRepository struct {
	db    *sqlx.DB
	kind  domain.Kind
	table string
}

func NewSQLiteRepository(conn *sqlx.DB, kind domain.Kind) *SQLiteRepository {
	return &SQLiteRepository{db: conn, kind: kind, table: kind.Table()}
}

type accountRow struct {
	ID         string `db:"id"`
	Username   string `db:"username"`
	Email      string `db:"email"`
	SecretHash string `db:"secret_hash"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
}

func (row accountRow) toDomain(kind domain.Kind) domain.Account {
	return domain.Account{
		ID:         domain.ID(row.ID),
		Kind:       kind,
		Username:   row.Username,
		Email:      row.Email,
		SecretHash: row.SecretHash,
		CreatedAt:  time.Unix(0, row.CreatedAt).UTC(),
		UpdatedAt:  time.Unix(0, row.UpdatedAt).UTC(),
	}
}

func (r *SQLiteRepository) Create(ctx context.Context, account domain.Account) error {
	start := time.Now()
	_, err := r.db.NamedExecContext(
		ctx,
		fmt.Sprintf(`INSERT INTO %s (id, username, email, secret_hash, created_at, updated_at)
		 VALUES (:id, :username, :email, :secret_hash, :created_at, :updated_at)`, r.table),
		accountRow{
			ID:         string(account.ID),
			Username:   account.Username,
			Email:      account.Email,
			SecretHash: account.SecretHash,
			CreatedAt:  account.CreatedAt.UnixNano(),
			UpdatedAt:  account.UpdatedAt.UnixNano(),
		},
	)
	return db.HandleExecError(err, r.table, "create account", start)
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	return r.findOne(ctx, "find account by id", "id", string(id))
}

func (r *SQLiteRepository) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, "find account by email", "email", email)
}

func (r *SQLiteRepository) findOne(ctx context.Context, operation, column, value string) (domain.Account, error) {
	start := time.Now()
	var row accountRow
	err := r.db.GetContext(
		ctx,
		&row,
		fmt.Sprintf(`SELECT id, username, email, secret_hash, created_at, updated_at FROM %s WHERE %s = ?`, r.table, column),
		value,
	)
	if err := db.HandleQueryError(err, ErrAccountNotFound, r.table, operation, start); err != nil {
		return domain.Account{}, err
	}
	return row.toDomain(r.kind), nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Account, error) {
	start := time.Now()
	var rows []accountRow
	err := r.db.SelectContext(
		ctx,
		&rows,
		fmt.Sprintf(`SELECT id, username, email, secret_hash, created_at, updated_at FROM %s ORDER BY created_at ASC, id ASC`, r.table),
	)
	if err := db.HandleQueryError(err, ErrAccountNotFound, r.table, "list accounts", start); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, row.toDomain(r.kind))
	}
	return accounts, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id domain.ID, changes domain.Changes) error {
	start := time.Now()
	res, err := r.db.ExecContext(
		ctx,
		fmt.Sprintf(`UPDATE %s
		 SET username = COALESCE(?, username),
		     email = COALESCE(?, email),
		     secret_hash = COALESCE(?, secret_hash),
		     updated_at = ?
		 WHERE id = ?`, r.table),
		changes.Username,
		changes.Email,
		changes.SecretHash,
		changes.UpdatedAt.UnixNano(),
		string(id),
	)
	if err := db.HandleExecError(err, r.table, "update account", start); err != nil {
		return err
	}
	return requireAffected(res.RowsAffected())
}

func (r *SQLiteRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table), string(id))
	if err := db.HandleExecError(err, r.table, "delete account", start); err != nil {
		return err
	}
	return requireAffected(res.RowsAffected())
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var n int
	err := r.db.GetContext(ctx, &n, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table))
	if err := db.HandleQueryError(err, ErrAccountNotFound, r.table, "count accounts", start); err != nil {
		return 0, err
	}
	return n, nil
}

func requireAffected(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}
