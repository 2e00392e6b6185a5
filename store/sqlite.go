package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	fprint "github.com/ChocolateLoverRaj/libfprint-cros"
)

// SQLiteStore persists prints in a local SQLite database. The print
// itself is kept as its serialized container; username, finger and
// device identity are mirrored into columns for lookups.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

const schema = `CREATE TABLE IF NOT EXISTS prints (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL DEFAULT '',
	finger INTEGER NOT NULL DEFAULT 0,
	driver TEXT NOT NULL,
	device_id TEXT NOT NULL,
	data BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_prints_username ON prints(username);`

// Open opens or creates the database at path.
func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "fprint.db"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	// journal_mode may not be supported in some contexts. Ignore errors.
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, p *fprint.Print) (string, error) {
	data, err := p.Serialize()
	if err != nil {
		return "", err
	}
	id := uuid.NewString()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO prints (id, username, finger, driver, device_id, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.Username(), int(p.Finger()), p.Driver(), p.DeviceID(), data, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert print: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*fprint.Print, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM prints WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fprint.Deserialize(data)
}

func (s *SQLiteStore) List(ctx context.Context, username string) ([]Entry, error) {
	query := `SELECT id, username, finger, driver, device_id, created_at
		FROM prints ORDER BY created_at, id`
	args := []any{}
	if username != "" {
		query = `SELECT id, username, finger, driver, device_id, created_at
			FROM prints WHERE username = ? ORDER BY created_at, id`
		args = append(args, username)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var finger int
		if err := rows.Scan(&e.ID, &e.Username, &finger, &e.Driver, &e.DeviceID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Finger = fprint.Finger(finger)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prints WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
