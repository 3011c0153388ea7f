package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
)

const undefinedTableCode = "42P01"

// SlotRepository は roster_slots テーブルの 1 行をローカル名簿のスロットとして扱います。
type SlotRepository struct {
	pool pgdb.Queryer
	key  string
	now  func() time.Time
}

// NewSlotRepository は SlotRepository を生成します。
func NewSlotRepository(pool pgdb.Queryer, key string) *SlotRepository {
	return &SlotRepository{
		pool: pool,
		key:  key,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Load はスロットの内容を読み込みます。
func (r *SlotRepository) Load(ctx context.Context) (employee.Snapshot, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var payload []byte
	err := exec.QueryRow(ctx, `
        SELECT payload
          FROM roster_slots
         WHERE key = $1
    `, r.key).Scan(&payload)
	if err != nil {
		return employee.Snapshot{}, translateSlotPgError(err)
	}

	return employee.UnmarshalSnapshot(payload)
}

// Save はスロットの内容を丸ごと置き換え、新しいリビジョンを付与します。
func (r *SlotRepository) Save(ctx context.Context, snapshot employee.Snapshot) error {
	payload, err := employee.MarshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err = exec.Exec(ctx, `
        INSERT INTO roster_slots (key, payload, revision, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (key) DO UPDATE
           SET payload = EXCLUDED.payload,
               revision = EXCLUDED.revision,
               updated_at = EXCLUDED.updated_at
    `,
		r.key,
		string(payload),
		uuid.NewString(),
		r.now(),
	)
	if err != nil {
		return fmt.Errorf("postgres: save slot %s: %w", r.key, translateSlotPgError(err))
	}
	return nil
}

func translateSlotPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrSlotNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode {
		return fmt.Errorf("postgres: roster_slots missing, run migrations: %w", err)
	}

	return err
}
