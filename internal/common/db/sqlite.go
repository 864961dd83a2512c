package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
)

// sqliteMigrations run in order exactly once, tracked in schema_version.
// Times are stored as unix nanoseconds.
var sqliteMigrations = []string{
	`
CREATE TABLE IF NOT EXISTS posters (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	secret_hash TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS posters_email_key ON posters(email);
CREATE UNIQUE INDEX IF NOT EXISTS posters_username_key ON posters(username);

CREATE TABLE IF NOT EXISTS responders (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	secret_hash TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS responders_email_key ON responders(email);
CREATE UNIQUE INDEX IF NOT EXISTS responders_username_key ON responders(username);

CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_owner_id ON posts(owner_id);

CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	post_id TEXT NOT NULL,
	responder_id TEXT NOT NULL,
	text TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
CREATE INDEX IF NOT EXISTS idx_comments_responder_id ON comments(responder_id);
`,
}

// OpenSQLite opens dsn with the pure-Go driver and brings the schema up to
// date. The handle is limited to one connection so in-memory databases are
// shared by every query and writers never contend.
func OpenSQLite(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1)

	pragmas := fmt.Sprintf("PRAGMA busy_timeout = %d;", constants.SQLiteBusyTimeout.Milliseconds())
	if _, err := conn.ExecContext(ctx, pragmas); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}

	if err := applySQLiteSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func applySQLiteSchema(ctx context.Context, conn *sqlx.DB) error {
	if _, err := conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var current int
	if err := conn.GetContext(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_version`); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := current; i < len(sqliteMigrations); i++ {
		if _, err := conn.ExecContext(ctx, sqliteMigrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := conn.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}
	return nil
}
