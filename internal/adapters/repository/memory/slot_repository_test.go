package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

func TestSlotRepository_LoadEmpty(t *testing.T) {
	t.Parallel()

	if _, err := NewSlotRepository().Load(context.Background()); !errors.Is(err, employee.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestSlotRepository_SaveWritesJSON(t *testing.T) {
	t.Parallel()

	repo := NewSlotRepository()
	snapshot := employee.Snapshot{NextID: 11}
	if err := repo.Save(context.Background(), snapshot); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(repo.Payload(), &raw); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if employees, ok := raw["employees"].([]any); !ok || len(employees) != 0 {
		t.Fatalf("expected empty employees array, got %v", raw["employees"])
	}
}

func TestSlotRepository_SaveCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewSlotRepository()
	if err := repo.Save(ctx, employee.Snapshot{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if repo.Payload() != nil && len(repo.Payload()) != 0 {
		t.Fatalf("cancelled save must not write")
	}
}

func TestSlotRepository_CorruptPayload(t *testing.T) {
	t.Parallel()

	repo := NewSlotRepositoryWithPayload([]byte("null"))
	if _, err := repo.Load(context.Background()); err != nil {
		t.Fatalf("null decodes to an empty snapshot, got %v", err)
	}

	repo = NewSlotRepositoryWithPayload([]byte("{"))
	if _, err := repo.Load(context.Background()); !errors.Is(err, employee.ErrCorruptSnapshot) {
		t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
	}
}
