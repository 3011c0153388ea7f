package memory

import (
	"context"
	"sync"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

// SlotRepository はプロセス内にスロットを保持します。内容は JSON として保存されます。
type SlotRepository struct {
	mu      sync.RWMutex
	payload []byte
}

// NewSlotRepository は空の SlotRepository を生成します。
func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

// NewSlotRepositoryWithPayload は既存の内容を持つ SlotRepository を生成します。
func NewSlotRepositoryWithPayload(payload []byte) *SlotRepository {
	clone := append([]byte(nil), payload...)
	return &SlotRepository{payload: clone}
}

// Load はスロットの内容を読み込みます。
func (r *SlotRepository) Load(_ context.Context) (employee.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.payload == nil {
		return employee.Snapshot{}, employee.ErrSlotNotFound
	}
	return employee.UnmarshalSnapshot(r.payload)
}

// Save はスロットの内容を置き換えます。
func (r *SlotRepository) Save(ctx context.Context, snapshot employee.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := employee.MarshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.payload = payload
	r.mu.Unlock()
	return nil
}

// Payload は保存済みの JSON のコピーを返します。
func (r *SlotRepository) Payload() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]byte(nil), r.payload...)
}
