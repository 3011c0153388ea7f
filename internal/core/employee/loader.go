package employee

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// RemoteStatus はリモート名簿の読み込み状態です。
type RemoteStatus string

const (
	RemoteLoading RemoteStatus = "loading"
	RemoteError   RemoteStatus = "error"
	RemoteReady   RemoteStatus = "ready"
)

// RemoteState は読み込み状態と、Ready のときのデータまたは Error のときの原因を保持します。
type RemoteState struct {
	Status    RemoteStatus
	Employees []RemoteEmployee
	Err       error
}

// RemoteLoader はリモート名簿を一度だけ取得します。再試行もキャッシュへのフォールバックも行いません。
// 読み込みは世代番号で区別し、完了した最新の世代の結果だけを確定状態として保持します。
type RemoteLoader struct {
	source RemoteSource
	logger *zap.Logger

	mu         sync.RWMutex
	state      RemoteState
	settled    RemoteState
	settledGen uint64
	gen        uint64
	inflight   map[uint64]struct{}
}

// NewRemoteLoader は Loading 状態の RemoteLoader を生成します。
func NewRemoteLoader(source RemoteSource, logger *zap.Logger) *RemoteLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	initial := RemoteState{Status: RemoteLoading}
	return &RemoteLoader{
		source:   source,
		logger:   logger,
		state:    initial,
		settled:  initial,
		inflight: make(map[uint64]struct{}),
	}
}

// State は直近の読み込み状態を返します。
func (l *RemoteLoader) State() RemoteState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyState(l.state)
}

// Load はリモート名簿を取得し状態を更新します。
// ctx が取得中にキャンセルされた場合、結果は破棄され確定済みの状態が返ります。
func (l *RemoteLoader) Load(ctx context.Context) RemoteState {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.inflight[gen] = struct{}{}
	l.state = RemoteState{Status: RemoteLoading}
	l.mu.Unlock()

	employees, err := l.source.FetchEmployees(ctx)
	if ctx.Err() != nil {
		l.logger.Debug("remote roster result discarded", zap.Error(ctx.Err()))
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.inflight, gen)
		l.refreshLocked()
		return copyState(l.settled)
	}

	next := RemoteState{Status: RemoteReady, Employees: employees}
	if err != nil {
		l.logger.Error("error fetching employees", zap.Error(err))
		next = RemoteState{Status: RemoteError, Err: fmt.Errorf("%w: %w", ErrFetch, err)}
	}

	l.mu.Lock()
	delete(l.inflight, gen)
	if gen > l.settledGen {
		l.settled = next
		l.settledGen = gen
	}
	l.refreshLocked()
	l.mu.Unlock()

	return copyState(next)
}

// refreshLocked は確定済みの世代より新しい読み込みが進行中なら Loading、そうでなければ確定状態を公開します。
func (l *RemoteLoader) refreshLocked() {
	for g := range l.inflight {
		if g > l.settledGen {
			l.state = RemoteState{Status: RemoteLoading}
			return
		}
	}
	l.state = l.settled
}

func copyState(s RemoteState) RemoteState {
	if s.Employees != nil {
		employees := make([]RemoteEmployee, len(s.Employees))
		copy(employees, s.Employees)
		s.Employees = employees
	}
	return s
}
