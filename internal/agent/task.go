package agent

import (
	"time"

	"github.com/google/uuid"
	"github.com/ostraca/conclave/internal/governance"
)

// TaskStatus tracks a task through its lifecycle:
// pending → in_progress → completed | failed.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Task is the unit of work dispatched to an evaluator. The executor creates
// one per dispatch; only the assigned evaluator mutates it; nothing persists
// it after synthesis.
type Task struct {
	ID             string
	AgentID        string
	Kind           string
	Priority       string
	Status         TaskStatus
	Input          map[string]any
	TimeoutSeconds int

	CreatedAt   time.Time
	StartedAt   time.Time
	CompletedAt time.Time

	Result   *governance.Report
	ErrorMsg string
	Progress float64
}

// NewTask builds a pending task for the given evaluator.
func NewTask(agentID, kind, priority string, input map[string]any, timeoutSeconds int) *Task {
	if input == nil {
		input = map[string]any{}
	}
	return &Task{
		ID:             uuid.NewString(),
		AgentID:        agentID,
		Kind:           kind,
		Priority:       priority,
		Status:         TaskPending,
		Input:          input,
		TimeoutSeconds: timeoutSeconds,
		CreatedAt:      time.Now().UTC(),
	}
}

// Timeout returns the declared task deadline as a duration.
func (t *Task) Timeout() time.Duration {
	if t.TimeoutSeconds <= 0 {
		return governance.DefaultTimeout
	}
	return time.Duration(t.TimeoutSeconds) * time.Second
}

func (t *Task) start(now time.Time) {
	t.Status = TaskInProgress
	t.StartedAt = now
}

func (t *Task) complete(now time.Time, report governance.Report) {
	t.Status = TaskCompleted
	t.CompletedAt = now
	t.Result = &report
	t.Progress = 100
}

func (t *Task) fail(now time.Time, err error) {
	t.Status = TaskFailed
	t.CompletedAt = now
	if err != nil {
		t.ErrorMsg = err.Error()
	}
}

// Terminal reports whether the task reached completed or failed.
func (t *Task) Terminal() bool {
	return t.Status == TaskCompleted || t.Status == TaskFailed
}
