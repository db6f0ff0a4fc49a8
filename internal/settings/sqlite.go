package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/dbx"
	"github.com/dmitrijs2005/rdplaunch/internal/settings/migrations"
)

// DBFileName is the database file of the portable store.
const DBFileName = "settings.db"

// SQLiteStore keeps settings in a local SQLite database.
type SQLiteStore struct {
	db    dbx.DBTX
	close func() error
}

// NewSQLiteStore wraps an already-migrated database handle.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db, close: func() error { return nil }}
}

// OpenSQLite opens (creating if needed) the settings database in dir and
// applies pending migrations.
func OpenSQLite(ctx context.Context, dir string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", filepath.Join(dir, DBFileName))
	if err != nil {
		return nil, apperr.Settings("open", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, apperr.Settings("migrate", err)
	}
	return &SQLiteStore{db: db, close: db.Close}, nil
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) ReadString(ctx context.Context, path, name string) (string, bool, error) {
	var v sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT value_string FROM settings WHERE path = ? AND name = ?`, path, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperr.Settings("read_string", err)
	}
	return v.String, v.Valid, nil
}

func (s *SQLiteStore) WriteString(ctx context.Context, path, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (path, name, value_string, value_integer) VALUES (?, ?, ?, NULL)
		ON CONFLICT(path, name) DO UPDATE SET value_string = excluded.value_string, value_integer = NULL
	`, path, name, value)
	if err != nil {
		return apperr.Settings("write_string", err)
	}
	return nil
}

func (s *SQLiteStore) ReadInteger(ctx context.Context, path, name string) (uint64, bool, error) {
	var v sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT value_integer FROM settings WHERE path = ? AND name = ?`, path, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperr.Settings("read_integer", err)
	}
	return uint64(v.Int64), v.Valid, nil
}

func (s *SQLiteStore) WriteInteger(ctx context.Context, path, name string, value uint32) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (path, name, value_string, value_integer) VALUES (?, ?, NULL, ?)
		ON CONFLICT(path, name) DO UPDATE SET value_integer = excluded.value_integer, value_string = NULL
	`, path, name, int64(value))
	if err != nil {
		return apperr.Settings("write_integer", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, path, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE path = ? AND name = ?`, path, name)
	if err != nil {
		return apperr.Settings("delete", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.close()
}
