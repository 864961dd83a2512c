package db

import (
	"fmt"
	"strings"
)

type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// ParseDatabaseURL picks the storage backend from DATABASE_URL and returns
// the DSN its driver expects.
//
//	postgres://... | postgresql://...  -> pgx
//	sqlite::memory:                    -> in-memory sqlite
//	sqlite:<path> | sqlite://<path>    -> sqlite file
//	file:...                           -> sqlite DSN as given
func ParseDatabaseURL(raw string) (Backend, string, error) {
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return BackendPostgres, raw, nil
	case raw == "sqlite::memory:":
		return BackendSQLite, ":memory:", nil
	case strings.HasPrefix(raw, "sqlite://"):
		return sqlitePath(strings.TrimPrefix(raw, "sqlite://"), raw)
	case strings.HasPrefix(raw, "sqlite:"):
		return sqlitePath(strings.TrimPrefix(raw, "sqlite:"), raw)
	case strings.HasPrefix(raw, "file:"):
		return BackendSQLite, raw, nil
	default:
		return "", "", fmt.Errorf("unsupported database url %q", redact(raw))
	}
}

func sqlitePath(path, raw string) (Backend, string, error) {
	if path == "" {
		return "", "", fmt.Errorf("missing sqlite path in %q", raw)
	}
	return BackendSQLite, path, nil
}

func redact(raw string) string {
	if idx := strings.Index(raw, "@"); idx != -1 {
		if scheme := strings.Index(raw, "://"); scheme != -1 && scheme < idx {
			return raw[:scheme+3] + "***" + raw[idx:]
		}
	}
	return raw
}
