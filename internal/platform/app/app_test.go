package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticSource struct {
	employees []employee.RemoteEmployee
}

func (s staticSource) FetchEmployees(context.Context) ([]employee.RemoteEmployee, error) {
	return s.employees, nil
}

func newConfig(driver string, sqlitePath string) *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Driver: driver, Key: "customEmployees", SQLitePath: sqlitePath},
	}
}

func janeDoe() employee.Input {
	return employee.Input{Name: "Jane Doe", Designation: "Engineer", Location: "NYC", Salary: "1000"}
}

func TestBuild_Memory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a, err := BuildWithSource(ctx, newConfig(config.DriverMemory, ""), staticSource{
		employees: []employee.RemoteEmployee{{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildWithSource returned error: %v", err)
	}
	defer a.Close()

	if _, err := a.Service.CreateEmployee(ctx, janeDoe()); err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	result, err := a.Service.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(result.Employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(result.Employees))
	}
}

func TestBuild_SQLiteSurvivesRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := newConfig(config.DriverSQLite, filepath.Join(t.TempDir(), "directory.db"))

	first, err := BuildWithSource(ctx, cfg, staticSource{}, nil)
	if err != nil {
		t.Fatalf("BuildWithSource returned error: %v", err)
	}
	created, err := first.Service.CreateEmployee(ctx, janeDoe())
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}
	first.Close()

	core, logs := observer.New(zap.InfoLevel)
	second, err := BuildWithSource(ctx, cfg, staticSource{}, zap.New(core))
	if err != nil {
		t.Fatalf("BuildWithSource returned error: %v", err)
	}
	defer second.Close()

	result, err := second.Service.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(result.Employees) != 1 || result.Employees[0].ID != created.ID {
		t.Fatalf("expected restored employee %d, got %+v", created.ID, result.Employees)
	}

	ready := logs.FilterMessage("employee directory ready").All()
	if len(ready) != 1 {
		t.Fatalf("expected one ready log, got %d", len(ready))
	}
	rev, ok := ready[0].ContextMap()["storage_revision"].(string)
	if !ok {
		t.Fatalf("expected storage_revision in ready log, got %v", ready[0].ContextMap())
	}
	if _, err := uuid.Parse(rev); err != nil {
		t.Fatalf("expected uuid revision, got %q", rev)
	}
}

func TestBuild_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := BuildWithSource(context.Background(), newConfig("redis", ""), staticSource{}, nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported storage driver") {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
}
