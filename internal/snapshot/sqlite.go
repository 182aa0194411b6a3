package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/meridianpay/sitescan/internal/logging"
	"github.com/meridianpay/sitescan/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id           TEXT PRIMARY KEY,
	url          TEXT NOT NULL,
	scan_id      TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	fingerprints TEXT NOT NULL,
	signals      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_url_created
	ON snapshots (url, created_at DESC);
`

// SQLiteStore persists snapshots in a single SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

// NewSQLiteStore opens (creating if needed) the snapshot database at path.
func NewSQLiteStore(path string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.Nop{}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply snapshot schema: %w", err)
	}

	logger.Info("snapshot store opened", logging.Field{Key: "path", Value: path})
	return &SQLiteStore{
		db:     db,
		logger: logger.With(logging.Field{Key: "component", Value: "snapshot"}),
	}, nil
}

var _ Store = (*SQLiteStore)(nil)

// Put appends a snapshot row. Fingerprints and signals are stored as JSON.
func (s *SQLiteStore) Put(ctx context.Context, snap *model.SiteSnapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	fingerprints, err := json.Marshal(snap.Fingerprints)
	if err != nil {
		return fmt.Errorf("marshal fingerprints: %w", err)
	}
	signals, err := json.Marshal(snap.Signals)
	if err != nil {
		return fmt.Errorf("marshal signals: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, url, scan_id, created_at, fingerprints, signals)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.URL, snap.ScanID, snap.CreatedAt.UnixNano(), string(fingerprints), string(signals))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	s.logger.Debug("snapshot stored",
		logging.Field{Key: "id", Value: snap.ID},
		logging.Field{Key: "url", Value: snap.URL})
	return nil
}

// GetLatest reads the newest snapshot of the URL.
func (s *SQLiteStore) GetLatest(ctx context.Context, url string) (*model.SiteSnapshot, error) {
	var (
		snap         model.SiteSnapshot
		createdAt    int64
		fingerprints string
		signals      string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, scan_id, created_at, fingerprints, signals
		FROM snapshots
		WHERE url = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, url).Scan(&snap.ID, &snap.URL, &snap.ScanID, &createdAt, &fingerprints, &signals)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	snap.CreatedAt = time.Unix(0, createdAt).UTC()
	if err := json.Unmarshal([]byte(fingerprints), &snap.Fingerprints); err != nil {
		return nil, fmt.Errorf("unmarshal fingerprints: %w", err)
	}
	if err := json.Unmarshal([]byte(signals), &snap.Signals); err != nil {
		return nil, fmt.Errorf("unmarshal signals: %w", err)
	}
	return &snap, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
