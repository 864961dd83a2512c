package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/sunzone-forum/internal/account/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/common/db"
)

type PgRepository struct {
	pool  *pgxpool.Pool
	kind  domain.Kind
	table string
}

func NewPgRepository(pool *pgxpool.Pool, kind domain.Kind) *PgRepository {
	return &PgRepository{pool: pool, kind: kind, table: kind.Table()}
}

func (r *PgRepository) Create(ctx context.Context, account domain.Account) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		fmt.Sprintf(`INSERT INTO %s (id, username, email, secret_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`, r.table),
		string(account.ID),
		account.Username,
		account.Email,
		account.SecretHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	return db.HandleExecError(err, r.table, "create account", start)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	return r.findOne(ctx, "find account by id", "id", string(id))
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, "find account by email", "email", email)
}

func (r *PgRepository) findOne(ctx context.Context, operation, column, value string) (domain.Account, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		fmt.Sprintf(`SELECT id, username, email, secret_hash, created_at, updated_at FROM %s WHERE %s = $1`, r.table, column),
		value,
	)

	account := domain.Account{Kind: r.kind}
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.SecretHash, &account.CreatedAt, &account.UpdatedAt)
	if err := db.HandleQueryError(err, ErrAccountNotFound, r.table, operation, start); err != nil {
		return domain.Account{}, err
	}
	account.CreatedAt, account.UpdatedAt = account.CreatedAt.UTC(), account.UpdatedAt.UTC()
	return account, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Account, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		fmt.Sprintf(`SELECT id, username, email, secret_hash, created_at, updated_at FROM %s ORDER BY created_at ASC, id ASC`, r.table),
	)
	if err != nil {
		return nil, db.HandleQueryError(err, ErrAccountNotFound, r.table, "list accounts", start)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account := domain.Account{Kind: r.kind}
		if err := rows.Scan(&account.ID, &account.Username, &account.Email, &account.SecretHash, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		account.CreatedAt, account.UpdatedAt = account.CreatedAt.UTC(), account.UpdatedAt.UTC()
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, ErrAccountNotFound, r.table, "list accounts", start)
	}
	db.MeasureQueryDuration(r.table, "list accounts", start)

	return accounts, nil
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, changes domain.Changes) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		fmt.Sprintf(`UPDATE %s
		 SET username = COALESCE($2, username),
		     email = COALESCE($3, email),
		     secret_hash = COALESCE($4, secret_hash),
		     updated_at = $5
		 WHERE id = $1`, r.table),
		string(id),
		changes.Username,
		changes.Email,
		changes.SecretHash,
		changes.UpdatedAt,
	)
	if err := db.HandleExecError(err, r.table, "update account", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), string(id))
	if err := db.HandleExecError(err, r.table, "delete account", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *PgRepository) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var n int
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table)).Scan(&n)
	if err := db.HandleQueryError(err, ErrAccountNotFound, r.table, "count accounts", start); err != nil {
		return 0, err
	}
	return n, nil
}
