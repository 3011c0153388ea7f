// Package app は設定から社員名簿サービスを組み立てます。
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ogurasousui/employee-directory/internal/adapters/remote/jsonplaceholder"
	"github.com/ogurasousui/employee-directory/internal/adapters/repository/memory"
	pgrepo "github.com/ogurasousui/employee-directory/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-directory/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	pgdb "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
	"go.uber.org/zap"
)

// App は組み立て済みのサービスと後片付け処理を保持します。
type App struct {
	Service *employee.Service
	closers []func()
}

// Close は確保した接続を解放します。
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Build は storage.driver に応じて保存先を選び、ローカル名簿を読み込んだ状態の App を返します。
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	return BuildWithSource(ctx, cfg, jsonplaceholder.New(cfg.Remote.URL, cfg.Remote.Timeout), logger)
}

// BuildWithSource はリモート名簿の取得元を差し替えて App を組み立てます。
func BuildWithSource(ctx context.Context, cfg *config.Config, source employee.RemoteSource, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{}
	storage, tx, err := a.openStorage(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	store := employee.NewLocalStore(storage, tx, logger)
	loader := employee.NewRemoteLoader(source, logger)
	a.Service = employee.NewService(loader, store, logger)

	if err := a.Service.Init(ctx); err != nil {
		a.Close()
		return nil, err
	}

	fields := []zap.Field{
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("storage_key", cfg.Storage.Key),
		zap.Int("local_employees", len(store.List())),
	}
	if rev, ok := storageRevision(ctx, storage, logger); ok {
		fields = append(fields, zap.String("storage_revision", rev))
	}
	logger.Info("employee directory ready", fields...)
	return a, nil
}

// revisioned はスロットのリビジョンを参照できる保存先です。
type revisioned interface {
	Revision(ctx context.Context) (string, error)
}

func storageRevision(ctx context.Context, storage employee.Storage, logger *zap.Logger) (string, bool) {
	r, ok := storage.(revisioned)
	if !ok {
		return "", false
	}
	rev, err := r.Revision(ctx)
	if err != nil {
		if !errors.Is(err, employee.ErrSlotNotFound) {
			logger.Warn("failed to read storage revision", zap.Error(err))
		}
		return "", false
	}
	return rev, true
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (employee.Storage, employee.TransactionManager, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pgdb.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("app: initialize database pool: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		return pgrepo.NewSlotRepository(pool, cfg.Storage.Key), pgdb.NewTransactionManager(pool), nil
	case config.DriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.Storage.SQLitePath, cfg.Storage.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("app: open sqlite storage: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := repo.Close(); err != nil {
				logger.Warn("failed to close sqlite storage", zap.Error(err))
			}
		})
		return repo, nil, nil
	case config.DriverMemory:
		return memory.NewSlotRepository(), nil, nil
	default:
		return nil, nil, fmt.Errorf("app: unsupported storage driver %q", cfg.Storage.Driver)
	}
}
