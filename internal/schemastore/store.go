// Package schemastore is a development stand-in for the remote form
// endpoint. It keeps every pushed schema as a revision in SQLite and serves
// the latest one back.
package schemastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-formbuilder/pkg/wire"
)

var (
	// ErrLocked is returned by Open when another process holds the database.
	ErrLocked = errors.New("schemastore: database is in use by another process")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("schemastore: store is closed")
)

// Revision is one stored schema.
type Revision struct {
	ID        int64        `json:"id"`
	Size      int          `json:"size"`
	Fieldsets int          `json:"fieldsets"`
	CreatedAt time.Time    `json:"createdAt"`
	Groups    []wire.Group `json:"-"`
	Payload   []byte       `json:"-"`
}

// Option customises a Store.
type Option func(*Store)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for revision timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store persists schema revisions.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
	now    func() time.Time
}

// Open creates or opens the database at path. A sibling "<path>.lock" file
// keeps a second process from serving the same database.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("schemastore: database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("schemastore: create directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("schemastore: acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("schemastore: open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{
		db:     db,
		path:   path,
		lock:   lock,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	if err := store.initSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
		`CREATE TABLE IF NOT EXISTS schema_revisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			payload BLOB NOT NULL,
			size INTEGER NOT NULL,
			fieldsets INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schemastore: init schema: %w", err)
		}
	}
	return nil
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if unlockErr := s.lock.Unlock(); err == nil {
		err = unlockErr
	}
	return err
}

// Put decodes payload, accepting the bare or wrapped shapes, and stores it
// normalised to a bare array.
func (s *Store) Put(ctx context.Context, payload []byte) (Revision, error) {
	groups, err := wire.DecodePayload(payload)
	if err != nil {
		return Revision{}, fmt.Errorf("schemastore: %w", err)
	}
	return s.PutGroups(ctx, groups)
}

// PutGroups stores groups as a new revision.
func (s *Store) PutGroups(ctx context.Context, groups []wire.Group) (Revision, error) {
	if s.db == nil {
		return Revision{}, ErrClosed
	}
	data, err := wire.EncodePayload(groups)
	if err != nil {
		return Revision{}, fmt.Errorf("schemastore: encode: %w", err)
	}
	created := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO schema_revisions (payload, size, fieldsets, created_at) VALUES (?, ?, ?, ?)",
		data, len(data), len(groups), created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Revision{}, fmt.Errorf("schemastore: insert revision: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Revision{}, fmt.Errorf("schemastore: revision id: %w", err)
	}
	s.logger.Info("schema stored", "revision", id, "fieldsets", len(groups), "bytes", len(data))
	return Revision{
		ID:        id,
		Size:      len(data),
		Fieldsets: len(groups),
		CreatedAt: created,
		Groups:    groups,
		Payload:   data,
	}, nil
}

// Latest returns the newest revision. The boolean is false when nothing has
// been stored yet.
func (s *Store) Latest(ctx context.Context) (Revision, bool, error) {
	if s.db == nil {
		return Revision{}, false, ErrClosed
	}
	row := s.db.QueryRowContext(ctx,
		"SELECT id, payload, size, fieldsets, created_at FROM schema_revisions ORDER BY id DESC LIMIT 1")
	return scanRevision(row)
}

// Revision returns the revision with id.
func (s *Store) Revision(ctx context.Context, id int64) (Revision, bool, error) {
	if s.db == nil {
		return Revision{}, false, ErrClosed
	}
	row := s.db.QueryRowContext(ctx,
		"SELECT id, payload, size, fieldsets, created_at FROM schema_revisions WHERE id = ?", id)
	return scanRevision(row)
}

// History lists revisions newest first without their payloads. A limit of
// zero or less lists everything.
func (s *Store) History(ctx context.Context, limit int) ([]Revision, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	query := "SELECT id, size, fieldsets, created_at FROM schema_revisions ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("schemastore: list revisions: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var (
			rev     Revision
			created string
		)
		if err := rows.Scan(&rev.ID, &rev.Size, &rev.Fieldsets, &created); err != nil {
			return nil, fmt.Errorf("schemastore: scan revision: %w", err)
		}
		rev.CreatedAt = parseTime(created)
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schemastore: list revisions: %w", err)
	}
	return out, nil
}

// Prune deletes all but the newest keep revisions and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	if keep < 1 {
		keep = 1
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM schema_revisions WHERE id NOT IN (SELECT id FROM schema_revisions ORDER BY id DESC LIMIT ?)", keep)
	if err != nil {
		return 0, fmt.Errorf("schemastore: prune: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("schemastore: prune: %w", err)
	}
	return removed, nil
}

// Fetch returns the latest schema, or an empty one. Together with Push it
// lets the store back a session directly.
func (s *Store) Fetch(ctx context.Context) ([]wire.Group, error) {
	rev, ok, err := s.Latest(ctx)
	if err != nil || !ok {
		return []wire.Group{}, err
	}
	return rev.Groups, nil
}

// Push stores groups as a new revision.
func (s *Store) Push(ctx context.Context, groups []wire.Group) error {
	_, err := s.PutGroups(ctx, groups)
	return err
}

func scanRevision(row *sql.Row) (Revision, bool, error) {
	var (
		rev     Revision
		created string
	)
	err := row.Scan(&rev.ID, &rev.Payload, &rev.Size, &rev.Fieldsets, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, false, nil
	}
	if err != nil {
		return Revision{}, false, fmt.Errorf("schemastore: read revision: %w", err)
	}
	rev.CreatedAt = parseTime(created)
	groups, err := wire.DecodePayload(rev.Payload)
	if err != nil {
		return Revision{}, false, fmt.Errorf("schemastore: revision %d: %w", rev.ID, err)
	}
	rev.Groups = groups
	return rev, true, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
