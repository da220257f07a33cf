package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ostraca/conclave/internal/governance"
)

// stubHooks lets tests script every lifecycle hook.
type stubHooks struct {
	setupErr    error
	configErr   error
	evaluate    func(ctx context.Context, task *Task) (governance.Report, error)
	healthErrs  []error
	healthCalls int
	teardowns   int
}

func (s *stubHooks) Setup(ctx context.Context) error { return s.setupErr }

func (s *stubHooks) LoadConfig(ctx context.Context) (map[string]any, error) {
	if s.configErr != nil {
		return nil, s.configErr
	}
	return map[string]any{"stub": true}, nil
}

func (s *stubHooks) HealthCheck(ctx context.Context) error {
	s.healthCalls++
	if len(s.healthErrs) == 0 {
		return nil
	}
	err := s.healthErrs[0]
	s.healthErrs = s.healthErrs[1:]
	return err
}

func (s *stubHooks) Evaluate(ctx context.Context, task *Task) (governance.Report, error) {
	if s.evaluate != nil {
		return s.evaluate(ctx, task)
	}
	return governance.Report{Status: governance.ReportCompleted, AgentID: task.AgentID}, nil
}

func (s *stubHooks) Teardown(ctx context.Context) error {
	s.teardowns++
	return nil
}

func newTestCore(t *testing.T, hooks *stubHooks) *Core {
	t.Helper()
	return New("Stub Evaluator", governance.DomainGeneric, hooks)
}

func TestInitializeMovesToIdle(t *testing.T) {
	core := newTestCore(t, &stubHooks{})
	if err := core.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if got := core.Status().State; got != StateIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if cfg := core.Config(); cfg["stub"] != true {
		t.Fatalf("expected loaded config, got %v", cfg)
	}
	// Re-initializing an idle evaluator is a no-op.
	if err := core.Initialize(context.Background()); err != nil {
		t.Fatalf("re-initialize: %v", err)
	}
}

func TestInitializeFailureEntersErrorState(t *testing.T) {
	core := newTestCore(t, &stubHooks{setupErr: errors.New("no backend")})
	if err := core.Initialize(context.Background()); err == nil {
		t.Fatal("expected initialize error")
	}
	snap := core.Status()
	if snap.State != StateError {
		t.Fatalf("expected error state, got %s", snap.State)
	}
	if snap.LastError == "" {
		t.Fatal("expected last error recorded")
	}
	if snap.ErrorCount != 1 {
		t.Fatalf("expected error count 1, got %d", snap.ErrorCount)
	}
}

func TestInitializeHealthCheckFailure(t *testing.T) {
	core := newTestCore(t, &stubHooks{healthErrs: []error{errors.New("probe failed")}})
	if err := core.Initialize(context.Background()); err == nil {
		t.Fatal("expected initialize error")
	}
	if got := core.Status().State; got != StateError {
		t.Fatalf("expected error state, got %s", got)
	}
}

func TestProcessTaskSuccess(t *testing.T) {
	hooks := &stubHooks{}
	core := newTestCore(t, hooks)
	if err := core.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	task := NewTask(core.ID(), "governance_validation", "medium", nil, 30)
	report, err := core.ProcessTask(context.Background(), task)
	if err != nil {
		t.Fatalf("process task: %v", err)
	}
	if report.Status != governance.ReportCompleted {
		t.Fatalf("expected completed report, got %s", report.Status)
	}
	if task.Status != TaskCompleted {
		t.Fatalf("expected completed task, got %s", task.Status)
	}
	if task.StartedAt.IsZero() || task.CompletedAt.IsZero() {
		t.Fatal("expected start and completion timestamps")
	}
	snap := core.Status()
	if snap.State != StateIdle {
		t.Fatalf("expected idle after success, got %s", snap.State)
	}
	if snap.TotalRequests != 1 || snap.SuccessfulRequests != 1 {
		t.Fatalf("unexpected counters: %+v", snap)
	}
	if snap.HealthScore != 100 {
		t.Fatalf("expected health 100, got %f", snap.HealthScore)
	}
	if snap.CurrentTaskID != "" {
		t.Fatalf("expected no in-flight task, got %s", snap.CurrentTaskID)
	}
}

func TestProcessTaskFailureRecovers(t *testing.T) {
	boom := errors.New("backend exploded")
	hooks := &stubHooks{
		evaluate: func(context.Context, *Task) (governance.Report, error) {
			return governance.Report{}, boom
		},
	}
	core := newTestCore(t, hooks)
	if err := core.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	healthCallsBefore := hooks.healthCalls

	task := NewTask(core.ID(), "governance_validation", "medium", nil, 30)
	if _, err := core.ProcessTask(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}
	if task.Status != TaskFailed {
		t.Fatalf("expected failed task, got %s", task.Status)
	}
	if task.ErrorMsg == "" || task.CompletedAt.IsZero() {
		t.Fatalf("expected error text and completion timestamp: %+v", task)
	}
	if hooks.healthCalls != healthCallsBefore+1 {
		t.Fatalf("expected exactly one recovery health check, got %d", hooks.healthCalls-healthCallsBefore)
	}
	snap := core.Status()
	if snap.State != StateIdle {
		t.Fatalf("expected recovery back to idle, got %s", snap.State)
	}
	if snap.FailedRequests != 1 || snap.ErrorCount != 1 {
		t.Fatalf("unexpected failure counters: %+v", snap)
	}
}

func TestProcessTaskFailureRecoveryFails(t *testing.T) {
	hooks := &stubHooks{
		evaluate: func(context.Context, *Task) (governance.Report, error) {
			return governance.Report{}, errors.New("backend exploded")
		},
		healthErrs: []error{nil, errors.New("still down")},
	}
	core := newTestCore(t, hooks)
	if err := core.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	task := NewTask(core.ID(), "governance_validation", "medium", nil, 30)
	if _, err := core.ProcessTask(context.Background(), task); err == nil {
		t.Fatal("expected process error")
	}
	if got := core.Status().State; got != StateError {
		t.Fatalf("expected evaluator stuck in error, got %s", got)
	}
	// A subsequent task is refused while the evaluator is in error.
	next := NewTask(core.ID(), "governance_validation", "medium", nil, 30)
	if _, err := core.ProcessTask(context.Background(), next); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestProcessTaskRefusedBeforeInitialize(t *testing.T) {
	core := newTestCore(t, &stubHooks{})
	task := NewTask(core.ID(), "governance_validation", "medium", nil, 30)
	if _, err := core.ProcessTask(context.Background(), task); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestProcessTaskHonorsExpiredContext(t *testing.T) {
	hooks := &stubHooks{
		evaluate: func(ctx context.Context, task *Task) (governance.Report, error) {
			return governance.Report{Status: governance.ReportCompleted}, ctx.Err()
		},
	}
	core := newTestCore(t, hooks)
	if err := core.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	task := NewTask(core.ID(), "governance_validation", "medium", nil, 1)
	if _, err := core.ProcessTask(ctx, task); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if task.Status != TaskFailed {
		t.Fatalf("expected failed task, got %s", task.Status)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	hooks := &stubHooks{}
	core := newTestCore(t, hooks)
	if err := core.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	core.Shutdown(context.Background())
	core.Shutdown(context.Background())
	if got := core.Status().State; got != StateOffline {
		t.Fatalf("expected offline, got %s", got)
	}
	if hooks.teardowns != 1 {
		t.Fatalf("expected one teardown, got %d", hooks.teardowns)
	}
	if err := core.Initialize(context.Background()); err == nil {
		t.Fatal("expected initialize to fail after shutdown")
	}
}
