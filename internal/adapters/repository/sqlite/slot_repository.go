package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS roster_slots (
    key        TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    revision   TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

// SlotRepository はローカルの SQLite ファイルにスロットを保存します。
type SlotRepository struct {
	db  *sql.DB
	key string
	now func() time.Time
}

// Open は SQLite ファイルを開き、必要ならテーブルを作成します。
func Open(ctx context.Context, path, key string) (*SlotRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// 単一ファイルへの書き込みを直列化します。
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}

	return &SlotRepository{
		db:  db,
		key: key,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close はデータベースを閉じます。
func (r *SlotRepository) Close() error {
	return r.db.Close()
}

// Load はスロットの内容を読み込みます。
func (r *SlotRepository) Load(ctx context.Context) (employee.Snapshot, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM roster_slots WHERE key = ?`, r.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return employee.Snapshot{}, employee.ErrSlotNotFound
	}
	if err != nil {
		return employee.Snapshot{}, fmt.Errorf("sqlite: load slot %s: %w", r.key, err)
	}

	return employee.UnmarshalSnapshot([]byte(payload))
}

// Save はスロットの内容を丸ごと置き換えます。
func (r *SlotRepository) Save(ctx context.Context, snapshot employee.Snapshot) error {
	payload, err := employee.MarshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO roster_slots (key, payload, revision, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (key) DO UPDATE
           SET payload = excluded.payload,
               revision = excluded.revision,
               updated_at = excluded.updated_at
    `, r.key, string(payload), uuid.NewString(), r.now())
	if err != nil {
		return fmt.Errorf("sqlite: save slot %s: %w", r.key, err)
	}
	return nil
}

// Revision は直近に保存されたリビジョンを返します。
func (r *SlotRepository) Revision(ctx context.Context) (string, error) {
	var revision string
	err := r.db.QueryRowContext(ctx, `SELECT revision FROM roster_slots WHERE key = ?`, r.key).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return "", employee.ErrSlotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: load revision %s: %w", r.key, err)
	}
	return revision, nil
}
