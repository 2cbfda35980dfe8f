// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "options-tracker/internal/errors"
	"options-tracker/internal/models"
	"options-tracker/pkg/id"
)

// SQLiteStore implements SnapshotStore using SQLite.
type SQLiteStore struct {
	db         *sql.DB
	mu         sync.RWMutex
	lastImport time.Time
}

// NewSQLiteStore creates a new SQLite-based snapshot store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.loadLastImport(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read import metadata: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- One row per captured activity payload
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		captured_at DATETIME NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		order_count INTEGER NOT NULL,
		history_count INTEGER NOT NULL,
		orders TEXT NOT NULL,
		histories TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Import bookkeeping
	CREATE TABLE IF NOT EXISTS import_metadata (
		key TEXT PRIMARY KEY,
		value DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_captured ON snapshots(captured_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) loadLastImport() error {
	var t time.Time
	err := s.db.QueryRow(`SELECT value FROM import_metadata WHERE key = 'last_import'`).Scan(&t)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	s.mu.Lock()
	s.lastImport = t
	s.mu.Unlock()
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot stores a snapshot and records the import time in one
// transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = time.Now()
	}
	snap.CapturedAt = snap.CapturedAt.UTC()
	if snap.ID == "" {
		snapshotID, err := id.NewAt(snap.CapturedAt)
		if err != nil {
			return apperrors.NewStoreError("save", "", err)
		}
		snap.ID = snapshotID
	}

	orders, err := json.Marshal(nonNilOrders(snap.Orders))
	if err != nil {
		return apperrors.NewStoreError("save", snap.ID, err)
	}
	histories, err := json.Marshal(nonNilHistories(snap.Histories))
	if err != nil {
		return apperrors.NewStoreError("save", snap.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots (id, captured_at, source, order_count, history_count, orders, histories)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.CapturedAt, snap.Source, len(snap.Orders), len(snap.Histories), string(orders), string(histories))
	if err != nil {
		return apperrors.NewStoreError("save", snap.ID, err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO import_metadata (key, value) VALUES ('last_import', ?)
	`, now)
	if err != nil {
		return apperrors.NewStoreError("save", snap.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.mu.Lock()
	s.lastImport = now
	s.mu.Unlock()

	return nil
}

// LatestSnapshot returns the most recently captured snapshot.
func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (*models.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, captured_at, source, orders, histories
		FROM snapshots ORDER BY captured_at DESC, id DESC LIMIT 1
	`)
	return scanSnapshot(row, "latest", "")
}

// GetSnapshot returns the snapshot with the given ID.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, snapshotID string) (*models.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, captured_at, source, orders, histories
		FROM snapshots WHERE id = ?
	`, snapshotID)
	return scanSnapshot(row, "get", snapshotID)
}

func scanSnapshot(row *sql.Row, op, snapshotID string) (*models.Snapshot, error) {
	var snap models.Snapshot
	var ordersJSON, historiesJSON string

	err := row.Scan(&snap.ID, &snap.CapturedAt, &snap.Source, &ordersJSON, &historiesJSON)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewStoreError(op, snapshotID, apperrors.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, apperrors.NewStoreError(op, snapshotID, err)
	}

	if err := json.Unmarshal([]byte(ordersJSON), &snap.Orders); err != nil {
		return nil, apperrors.NewStoreError(op, snap.ID, fmt.Errorf("failed to decode orders: %w", err))
	}
	if err := json.Unmarshal([]byte(historiesJSON), &snap.Histories); err != nil {
		return nil, apperrors.NewStoreError(op, snap.ID, fmt.Errorf("failed to decode histories: %w", err))
	}

	return &snap, nil
}

// ListSnapshots returns snapshot summaries, newest first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]models.SnapshotInfo, error) {
	query := `SELECT id, captured_at, source, order_count, history_count FROM snapshots WHERE 1=1`
	var args []interface{}

	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, filter.Source)
	}
	if !filter.StartDate.IsZero() {
		query += ` AND captured_at >= ?`
		args = append(args, filter.StartDate.UTC())
	}
	if !filter.EndDate.IsZero() {
		query += ` AND captured_at <= ?`
		args = append(args, filter.EndDate.UTC())
	}

	query += ` ORDER BY captured_at DESC, id DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("list", "", err)
	}
	defer rows.Close()

	infos := make([]models.SnapshotInfo, 0)
	for rows.Next() {
		var info models.SnapshotInfo
		if err := rows.Scan(&info.ID, &info.CapturedAt, &info.Source, &info.Orders, &info.Histories); err != nil {
			return nil, apperrors.NewStoreError("list", "", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list", "", err)
	}

	return infos, nil
}

// DeleteSnapshot removes a snapshot.
func (s *SQLiteStore) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, strings.TrimSpace(snapshotID))
	if err != nil {
		return apperrors.NewStoreError("delete", snapshotID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError("delete", snapshotID, err)
	}
	if n == 0 {
		return apperrors.NewStoreError("delete", snapshotID, apperrors.ErrSnapshotNotFound)
	}
	return nil
}

// GetLastImport returns when a snapshot was last saved, or the zero time.
func (s *SQLiteStore) GetLastImport() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastImport
}

func nonNilOrders(o []models.RawOrder) []models.RawOrder {
	if o == nil {
		return []models.RawOrder{}
	}
	return o
}

func nonNilHistories(h []models.RawHistoryRecord) []models.RawHistoryRecord {
	if h == nil {
		return []models.RawHistoryRecord{}
	}
	return h
}
