package sqlite

import (
	"context"
	"database/sql"
	"time"

	"task-manager/internal/errors"
	"task-manager/internal/repository"
	"task-manager/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Options bounds how long individual statements may run.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// DefaultOptions returns the timeouts used when none are configured.
func DefaultOptions() Options {
	return Options{
		QueryTimeout: 10 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// SQLiteRepository implements repository.KeyValueStore on a single kv table
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

var _ repository.KeyValueStore = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions creates a new SQLite repository instance
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// One connection: the store has a single writer, and ":memory:" databases
	// are per-connection.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get retrieves the value stored under key
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv WHERE key = ?`
	entry, found, err := QuerySingle(ctx, r.db, query, ScanEntry, "kv entry", key)
	if err != nil || !found {
		return nil, false, err
	}
	return entry.Value, true, nil
}

// Set inserts or replaces the value stored under key
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `
	INSERT INTO kv (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return Execute(ctx, r.db, "write "+key, query, key, value, FormatTimeForDB(time.Now()))
}

// Delete removes key if present
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	return Execute(ctx, r.db, "delete "+key, `DELETE FROM kv WHERE key = ?`, key)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
