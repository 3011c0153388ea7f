package employee

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service は社員名簿に関するユースケースをまとめます。
type Service struct {
	loader *RemoteLoader
	store  *LocalStore
	logger *zap.Logger
}

// UseCase は社員名簿ユースケースの公開インターフェースです。
type UseCase interface {
	ListEmployees(ctx context.Context) (*ListEmployeesResult, error)
	CreateEmployee(ctx context.Context, in Input) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
	ValidateEmployee(ctx context.Context, in Input) ValidationErrors
}

// ListEmployeesResult は統合済み名簿とリモート読み込み状態です。
type ListEmployeesResult struct {
	Employees []*Employee
	Remote    RemoteState
}

// NewService は Service を生成します。
func NewService(loader *RemoteLoader, store *LocalStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{loader: loader, store: store, logger: logger}
}

// Init は起動時に一度だけローカル名簿を読み込みます。
func (s *Service) Init(ctx context.Context) error {
	if _, err := s.store.Hydrate(ctx); err != nil {
		return fmt.Errorf("employee: init local roster: %w", err)
	}
	return nil
}

// ListEmployees はリモート名簿とローカル名簿を並行に取得し、リモート、ローカルの順に連結します。
// リモート取得の失敗は結果の Remote に載せ、呼び出し自体は失敗させません。
func (s *Service) ListEmployees(ctx context.Context) (*ListEmployeesResult, error) {
	var (
		remote RemoteState
		local  []LocalEmployee
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		remote = s.loader.Load(gctx)
		return nil
	})
	g.Go(func() error {
		local = s.store.List()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &ListEmployeesResult{
		Employees: s.merge(remote.Employees, local),
		Remote:    remote,
	}, nil
}

// CreateEmployee は入力を検証してからローカル名簿へ追加します。
func (s *Service) CreateEmployee(ctx context.Context, in Input) (*Employee, error) {
	if errs := Validate(in); len(errs) > 0 {
		return nil, errs
	}

	created := s.store.Add(ctx, in)
	s.logger.Info("employee added",
		zap.Int("id", created.ID),
		zap.String("email", created.Email))

	return fromLocal(created), nil
}

// DeleteEmployee はローカル名簿から社員を削除します。存在しない ID はエラーになりません。
func (s *Service) DeleteEmployee(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("id %d: %w", id, ErrInvalidID)
	}
	s.store.Remove(ctx, id)
	return nil
}

// ValidateEmployee はフォーム入力を検証します。
func (s *Service) ValidateEmployee(_ context.Context, in Input) ValidationErrors {
	return Validate(in)
}

func (s *Service) merge(remote []RemoteEmployee, local []LocalEmployee) []*Employee {
	merged := make([]*Employee, 0, len(remote)+len(local))
	seen := make(map[int]struct{}, len(remote))

	for _, r := range remote {
		merged = append(merged, fromRemote(r))
		seen[r.ID] = struct{}{}
	}
	for _, l := range local {
		if _, dup := seen[l.ID]; dup {
			s.logger.Warn("local employee id overlaps remote roster", zap.Int("id", l.ID))
		}
		merged = append(merged, fromLocal(l))
	}

	return merged
}
