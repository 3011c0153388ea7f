package employee

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeStorage は JSON 形式でスロットを保持するテスト用の Storage です。
type fakeStorage struct {
	mu      sync.Mutex
	payload []byte
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeStorage) Load(_ context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return Snapshot{}, f.loadErr
	}
	if f.payload == nil {
		return Snapshot{}, ErrSlotNotFound
	}
	return UnmarshalSnapshot(f.payload)
}

func (f *fakeStorage) Save(_ context.Context, s Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	b, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	f.payload = b
	f.saves++
	return nil
}

type recordingTx struct {
	readOnly  int
	readWrite int
}

func (r *recordingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	r.readOnly++
	return fn(ctx)
}

func (r *recordingTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	r.readWrite++
	return fn(ctx)
}

func newHydratedStore(t *testing.T, storage Storage) *LocalStore {
	t.Helper()
	store := NewLocalStore(storage, nil, nil)
	if _, err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate returned error: %v", err)
	}
	return store
}

func TestLocalStore_AddScenario(t *testing.T) {
	t.Parallel()

	store := newHydratedStore(t, &fakeStorage{})

	got := store.Add(context.Background(), Input{Name: "Jane Doe", Designation: "Engineer", Location: "NYC", Salary: "1000"})
	want := LocalEmployee{
		ID:          11,
		Name:        "Jane Doe",
		Email:       "jane.doe@company.com",
		Designation: "Engineer",
		Location:    "NYC",
		Salary:      "1000",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected employee (-want +got):\n%s", diff)
	}
}

func TestLocalStore_AddThenHydrate(t *testing.T) {
	t.Parallel()

	storage := &fakeStorage{}
	store := newHydratedStore(t, storage)

	in := Input{Name: " Mary  Ann Lee ", Designation: "Designer", Location: "Berlin ", Salary: " 4200"}
	created := store.Add(context.Background(), in)

	reloaded, err := NewLocalStore(storage, nil, nil).Hydrate(context.Background())
	if err != nil {
		t.Fatalf("Hydrate returned error: %v", err)
	}
	if len(reloaded) != 1 {
		t.Fatalf("expected 1 employee after reload, got %d", len(reloaded))
	}

	got := reloaded[0]
	if got.Name != in.Name || got.Designation != in.Designation || got.Location != in.Location || got.Salary != in.Salary {
		t.Fatalf("stored fields changed: %+v", got)
	}
	if got.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, got.ID)
	}
	if got.Email != ".mary.ann.lee.@company.com" {
		t.Fatalf("unexpected derived email: %s", got.Email)
	}
}

func TestLocalStore_RemoveThenHydrate(t *testing.T) {
	t.Parallel()

	storage := &fakeStorage{}
	store := newHydratedStore(t, storage)
	ctx := context.Background()

	a := store.Add(ctx, Input{Name: "A One", Designation: "d", Location: "l", Salary: "1"})
	b := store.Add(ctx, Input{Name: "B Two", Designation: "d", Location: "l", Salary: "2"})
	c := store.Add(ctx, Input{Name: "C Three", Designation: "d", Location: "l", Salary: "3"})

	store.Remove(ctx, b.ID)

	reloaded, err := NewLocalStore(storage, nil, nil).Hydrate(ctx)
	if err != nil {
		t.Fatalf("Hydrate returned error: %v", err)
	}
	if diff := cmp.Diff([]LocalEmployee{a, c}, reloaded); diff != "" {
		t.Fatalf("unexpected roster after remove (-want +got):\n%s", diff)
	}
}

func TestLocalStore_RemoveUnknownIsNoop(t *testing.T) {
	t.Parallel()

	storage := &fakeStorage{}
	store := newHydratedStore(t, storage)
	store.Add(context.Background(), validInput())

	before := storage.saves
	store.Remove(context.Background(), 999)

	if storage.saves != before {
		t.Fatalf("expected no write for unknown id, saves went %d -> %d", before, storage.saves)
	}
	if len(store.List()) != 1 {
		t.Fatalf("expected roster to be untouched")
	}
}

func TestLocalStore_IDsAreNotReused(t *testing.T) {
	t.Parallel()

	storage := &fakeStorage{}
	store := newHydratedStore(t, storage)
	ctx := context.Background()

	first := store.Add(ctx, validInput())
	second := store.Add(ctx, validInput())
	store.Remove(ctx, first.ID)
	third := store.Add(ctx, validInput())

	if third.ID == second.ID || third.ID == first.ID {
		t.Fatalf("id reused: first=%d second=%d third=%d", first.ID, second.ID, third.ID)
	}

	reopened := newHydratedStore(t, storage)
	fourth := reopened.Add(ctx, validInput())
	if fourth.ID != third.ID+1 {
		t.Fatalf("expected counter to survive reload, got %d after %d", fourth.ID, third.ID)
	}
}

func TestLocalStore_HydrateLegacyArray(t *testing.T) {
	t.Parallel()

	storage := &fakeStorage{payload: []byte(`[
		{"id":11,"name":"Old One","email":"old.one@company.com","designation":"d","location":"l","salary":"10"},
		{"id":14,"name":"Old Two","email":"old.two@company.com","designation":"d","location":"l","salary":"20"}
	]`)}
	store := newHydratedStore(t, storage)

	if got := len(store.List()); got != 2 {
		t.Fatalf("expected 2 legacy employees, got %d", got)
	}

	created := store.Add(context.Background(), validInput())
	if created.ID != 15 {
		t.Fatalf("expected id after legacy max to be 15, got %d", created.ID)
	}
}

func TestLocalStore_HydrateRenumbersDuplicateIDs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	storage := &fakeStorage{payload: []byte(`[
		{"id":11,"name":"First","email":"first@company.com","designation":"d","location":"l","salary":"10"},
		{"id":11,"name":"Second","email":"second@company.com","designation":"d","location":"l","salary":"20"},
		{"id":12,"name":"Third","email":"third@company.com","designation":"d","location":"l","salary":"30"}
	]`)}
	store := NewLocalStore(storage, nil, zap.New(core))

	got, err := store.Hydrate(context.Background())
	if err != nil {
		t.Fatalf("Hydrate returned error: %v", err)
	}

	ids := []int{got[0].ID, got[1].ID, got[2].ID}
	if diff := cmp.Diff([]int{11, 14, 12}, ids); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
	if logs.FilterMessage("renumbered duplicate roster ids").Len() != 1 {
		t.Fatalf("expected a warning for the renumbered rows")
	}
	if storage.saves != 1 {
		t.Fatalf("expected renumbered roster to be saved once, got %d", storage.saves)
	}

	store.Remove(context.Background(), 11)
	remaining := store.List()
	if len(remaining) != 2 || remaining[0].Name != "Second" {
		t.Fatalf("expected only the first record to be removed, got %+v", remaining)
	}

	if created := store.Add(context.Background(), validInput()); created.ID != 15 {
		t.Fatalf("expected next id 15, got %d", created.ID)
	}
}

func TestLocalStore_HydrateCorruptIsEmpty(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	storage := &fakeStorage{payload: []byte(`{not json`)}
	store := NewLocalStore(storage, nil, zap.New(core))

	got, err := store.Hydrate(context.Background())
	if err != nil {
		t.Fatalf("expected corrupt slot to hydrate as empty, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty roster, got %d", len(got))
	}
	if logs.FilterMessage("discarding unreadable roster snapshot").Len() != 1 {
		t.Fatalf("expected a warning for the corrupt slot")
	}
}

func TestLocalStore_HydrateStorageError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	store := NewLocalStore(&fakeStorage{loadErr: boom}, nil, nil)

	if _, err := store.Hydrate(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestLocalStore_SaveFailureKeepsMemoryAndWarns(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	storage := &fakeStorage{saveErr: fmt.Errorf("quota exceeded")}
	store := NewLocalStore(storage, nil, zap.New(core))
	if _, err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate returned error: %v", err)
	}

	created := store.Add(context.Background(), validInput())

	if list := store.List(); len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected in-memory roster to keep the record, got %+v", list)
	}

	entries := logs.FilterMessage("roster change kept in memory only").All()
	if len(entries) != 1 {
		t.Fatalf("expected one persistence warning, got %d", len(entries))
	}
	loggedErr, ok := entries[0].ContextMap()["error"].(string)
	if !ok || loggedErr == "" {
		t.Fatalf("expected error field on warning, got %+v", entries[0].ContextMap())
	}
}

func TestLocalStore_UsesTransactions(t *testing.T) {
	t.Parallel()

	tx := &recordingTx{}
	store := NewLocalStore(&fakeStorage{}, tx, nil)
	ctx := context.Background()

	if _, err := store.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate returned error: %v", err)
	}
	created := store.Add(ctx, validInput())
	store.Remove(ctx, created.ID)

	if tx.readOnly != 1 || tx.readWrite != 2 {
		t.Fatalf("unexpected transaction usage: ro=%d rw=%d", tx.readOnly, tx.readWrite)
	}
}

func TestSnapshot_RoundTripPreservesOrder(t *testing.T) {
	t.Parallel()

	in := Snapshot{
		NextID: 14,
		Employees: []LocalEmployee{
			{ID: 13, Name: "Zed", Email: "zed@company.com", Designation: "d", Location: "l", Salary: "3"},
			{ID: 11, Name: "Amy", Email: "amy@company.com", Designation: "d", Location: "l", Salary: "1"},
		},
	}

	b, err := MarshalSnapshot(in)
	if err != nil {
		t.Fatalf("MarshalSnapshot returned error: %v", err)
	}
	out, err := UnmarshalSnapshot(b)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot returned error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Jane Doe":         "jane.doe@company.com",
		"JOHN   Q\tPublic": "john.q.public@company.com",
		"solo":             "solo@company.com",
		"Jane\u00a0Doe":    "jane.doe@company.com",
		"山田\u3000太郎":       "山田.太郎@company.com",
		"Ann\ufeff\vLee":   "ann.lee@company.com",
	}
	for name, want := range tests {
		if got := DeriveEmail(name); got != want {
			t.Fatalf("DeriveEmail(%q) = %q, want %q", name, got, want)
		}
	}
}
