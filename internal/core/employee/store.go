package employee

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// whitespaceRun は ASCII 以外の空白 (U+00A0, U+3000 など) と U+FEFF も区切りとして扱います。
var whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{0B}\x{FEFF}]+`)

// LocalStore は利用者が追加した社員をメモリ上に保持し、変更のたびに名簿全体を永続化します。
type LocalStore struct {
	mu        sync.Mutex
	storage   Storage
	tx        TransactionManager
	logger    *zap.Logger
	employees []LocalEmployee
	nextID    int
}

// NewLocalStore は空の LocalStore を生成します。Hydrate を呼ぶまで永続化内容は読み込まれません。
func NewLocalStore(storage Storage, tx TransactionManager, logger *zap.Logger) *LocalStore {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStore{
		storage: storage,
		tx:      tx,
		logger:  logger,
		nextID:  LocalIDOffset,
	}
}

// Hydrate はスロットから名簿を読み込みます。
// スロットが無い場合と内容が壊れている場合は空の名簿として扱います。
func (s *LocalStore) Hydrate(ctx context.Context) ([]LocalEmployee, error) {
	var snapshot Snapshot
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		loaded, err := s.storage.Load(txCtx)
		if err != nil {
			return err
		}
		snapshot = loaded
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrSlotNotFound):
		snapshot = Snapshot{}
	case errors.Is(err, ErrCorruptSnapshot):
		s.logger.Warn("discarding unreadable roster snapshot", zap.Error(err))
		snapshot = Snapshot{}
	default:
		return nil, fmt.Errorf("hydrate: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = cloneLocal(snapshot.Employees)
	s.nextID = reconcileNextID(snapshot)

	if n := s.renumberDuplicatesLocked(); n > 0 {
		s.logger.Warn("renumbered duplicate roster ids", zap.Int("count", n))
		s.persistLocked(ctx, "renumber", 0)
	}

	s.logger.Debug("roster hydrated",
		zap.Int("count", len(s.employees)),
		zap.Int("next_id", s.nextID))

	return cloneLocal(s.employees), nil
}

// Add は新しい社員を採番して追加し、名簿全体を保存します。入力の検証は行いません。
func (s *LocalStore) Add(ctx context.Context, in Input) LocalEmployee {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := LocalEmployee{
		ID:          s.nextID,
		Name:        in.Name,
		Email:       DeriveEmail(in.Name),
		Designation: in.Designation,
		Location:    in.Location,
		Salary:      in.Salary,
	}
	s.nextID++
	s.employees = append(s.employees, created)

	s.persistLocked(ctx, "add", created.ID)
	return created
}

// Remove は指定 ID の社員を取り除いて保存します。存在しない ID は何もしません。
func (s *LocalStore) Remove(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]LocalEmployee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(s.employees) {
		return
	}
	s.employees = kept

	s.persistLocked(ctx, "remove", id)
}

// List はメモリ上の名簿のコピーを追加順で返します。
func (s *LocalStore) List() []LocalEmployee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLocal(s.employees)
}

// renumberDuplicatesLocked は重複した ID の 2 件目以降に新しい ID を振り直し、その件数を返します。
func (s *LocalStore) renumberDuplicatesLocked() int {
	seen := make(map[int]struct{}, len(s.employees))
	renumbered := 0
	for i := range s.employees {
		if _, dup := seen[s.employees[i].ID]; dup {
			s.employees[i].ID = s.nextID
			s.nextID++
			renumbered++
		}
		seen[s.employees[i].ID] = struct{}{}
	}
	return renumbered
}

func (s *LocalStore) persistLocked(ctx context.Context, op string, id int) {
	snapshot := Snapshot{NextID: s.nextID, Employees: cloneLocal(s.employees)}
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.storage.Save(txCtx, snapshot)
	})
	if err != nil {
		s.logger.Warn("roster change kept in memory only",
			zap.String("op", op),
			zap.Int("id", id),
			zap.Error(fmt.Errorf("%w: %w", ErrPersistence, err)))
	}
}

// DeriveEmail は名前を小文字化し空白の連続を "." に置き換えて会社ドメインを付与します。
func DeriveEmail(name string) string {
	local := whitespaceRun.ReplaceAllString(strings.ToLower(name), ".")
	return local + "@" + EmailDomain
}

func reconcileNextID(snapshot Snapshot) int {
	next := snapshot.NextID
	if floor := len(snapshot.Employees) + LocalIDOffset; next < floor {
		next = floor
	}
	for _, e := range snapshot.Employees {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	return next
}

func cloneLocal(in []LocalEmployee) []LocalEmployee {
	out := make([]LocalEmployee, len(in))
	copy(out, in)
	return out
}
