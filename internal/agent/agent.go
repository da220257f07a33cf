package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ostraca/conclave/internal/governance"
	"github.com/ostraca/conclave/internal/logbook"
)

// recoveryWait bounds the post-failure health check so a wedged hook cannot
// hold the evaluator forever.
const recoveryWait = 10 * time.Second

// ErrUnavailable is returned when a task reaches an evaluator that is not
// idle. The executor's admission rule makes this unreachable in normal
// operation; it guards direct callers.
var ErrUnavailable = errors.New("agent: evaluator is not idle")

// Agent is the lifecycle contract every evaluator exposes, orchestrator
// included.
type Agent interface {
	Initialize(ctx context.Context) error
	ProcessTask(ctx context.Context, task *Task) (governance.Report, error)
	Status() StatusSnapshot
	Shutdown(ctx context.Context)
}

// Hooks supplies the domain-specific behavior a Core cannot provide itself.
// Implementations must be safe to call from the Core's task-processing path
// only; the Core never invokes two hooks concurrently.
type Hooks interface {
	// Setup prepares domain resources before the first task.
	Setup(ctx context.Context) error
	// LoadConfig returns evaluator settings applied during initialization.
	LoadConfig(ctx context.Context) (map[string]any, error)
	// HealthCheck probes whether the evaluator can accept work. It doubles as
	// the single recovery attempt after a task failure.
	HealthCheck(ctx context.Context) error
	// Evaluate runs the domain validation logic for one task. It must honor
	// ctx cancellation; the executor derives a deadline from the task timeout.
	Evaluate(ctx context.Context, task *Task) (governance.Report, error)
	// Teardown releases domain resources during shutdown.
	Teardown(ctx context.Context) error
}

// StatusSnapshot is a pure read of one evaluator's current condition.
type StatusSnapshot struct {
	AgentID             string             `json:"agent_id" yaml:"agent_id"`
	Name                string             `json:"name" yaml:"name"`
	Domain              governance.Domain  `json:"domain" yaml:"domain"`
	State               State              `json:"state" yaml:"state"`
	HealthScore         float64            `json:"health_score" yaml:"health_score"`
	TotalRequests       int                `json:"total_requests" yaml:"total_requests"`
	SuccessfulRequests  int                `json:"successful_requests" yaml:"successful_requests"`
	FailedRequests      int                `json:"failed_requests" yaml:"failed_requests"`
	ErrorCount          int                `json:"error_count" yaml:"error_count"`
	AverageResponseTime time.Duration      `json:"average_response_time" yaml:"average_response_time"`
	LastError           string             `json:"last_error,omitempty" yaml:"last_error,omitempty"`
	LastActivity        time.Time          `json:"last_activity" yaml:"last_activity"`
	CurrentTaskID       string             `json:"current_task,omitempty" yaml:"current_task,omitempty"`
	QueueLength         int                `json:"queue_length" yaml:"queue_length"`
}

// Core implements the Agent lifecycle on behalf of a Hooks implementation:
// state machine, metrics, recovery, and task bookkeeping. One Core exists per
// domain evaluator plus one for the orchestrator.
type Core struct {
	id     string
	name   string
	domain governance.Domain
	hooks  Hooks
	log    *logbook.Logbook
	now    func() time.Time

	mu           sync.Mutex
	state        State
	metrics      metrics
	config       map[string]any
	lastError    string
	lastActivity time.Time
	current      *Task
	queue        []*Task
}

// Option customizes Core construction.
type Option func(*Core)

// WithLogbook routes lifecycle events to a shared journal.
func WithLogbook(lb *logbook.Logbook) Option {
	return func(c *Core) { c.log = lb }
}

// WithClock overrides the timestamp source (tests).
func WithClock(clock func() time.Time) Option {
	return func(c *Core) {
		if clock != nil {
			c.now = clock
		}
	}
}

// New constructs an evaluator core around the given domain hooks.
func New(name string, domain governance.Domain, hooks Hooks, opts ...Option) *Core {
	c := &Core{
		id:      uuid.NewString(),
		name:    name,
		domain:  domain,
		hooks:   hooks,
		now:     time.Now,
		state:   StateInitializing,
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// ID returns the evaluator's opaque identity.
func (c *Core) ID() string { return c.id }

// Name returns the evaluator's display name.
func (c *Core) Name() string { return c.name }

// Domain returns the review category this evaluator serves.
func (c *Core) Domain() governance.Domain { return c.domain }

// Config returns the settings captured during initialization.
func (c *Core) Config() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Initialize runs setup, configuration loading, and a health check. Any
// failure leaves the evaluator in the error state with the cause recorded.
// Re-initializing an idle evaluator is a no-op.
func (c *Core) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		return nil
	}
	if c.state == StateOffline {
		c.mu.Unlock()
		return fmt.Errorf("agent: %s is offline", c.name)
	}
	c.state = StateInitializing
	c.mu.Unlock()

	c.log.Info("%s: initializing", c.name)
	if err := c.hooks.Setup(ctx); err != nil {
		return c.failInitialize(fmt.Errorf("agent: %s setup: %w", c.name, err))
	}
	cfg, err := c.hooks.LoadConfig(ctx)
	if err != nil {
		return c.failInitialize(fmt.Errorf("agent: %s load config: %w", c.name, err))
	}
	if err := c.hooks.HealthCheck(ctx); err != nil {
		return c.failInitialize(fmt.Errorf("agent: %s health check: %w", c.name, err))
	}

	c.mu.Lock()
	c.config = cfg
	c.state = StateIdle
	c.mu.Unlock()
	c.log.Info("%s: initialized", c.name)
	return nil
}

func (c *Core) failInitialize(err error) error {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err.Error()
	c.metrics.errorCount++
	c.mu.Unlock()
	c.log.Error("%s: initialization failed: %v", c.name, err)
	return err
}

// ProcessTask runs one task through the evaluator. On success the evaluator
// returns to idle with the report recorded on the task. On failure the task
// is marked failed with the error text, metrics are updated, the evaluator
// enters the error state, one recovery health check runs, and the original
// error is returned to the caller.
func (c *Core) ProcessTask(ctx context.Context, task *Task) (governance.Report, error) {
	start := c.now()

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return governance.Report{}, fmt.Errorf("%w: %s is %s", ErrUnavailable, c.name, c.state)
	}
	c.state = StateBusy
	c.current = task
	c.metrics.totalRequests++
	c.lastActivity = start
	c.mu.Unlock()

	c.log.Info("%s: processing task %s", c.name, task.ID)
	task.start(start)

	report, err := c.hooks.Evaluate(ctx, task)
	if err == nil {
		// A deadline that expired mid-evaluation is a failure even when the
		// hook returned a report.
		err = ctx.Err()
	}
	elapsed := c.now().Sub(start)

	if err != nil {
		task.fail(c.now(), err)
		c.mu.Lock()
		c.metrics.errorCount++
		c.metrics.record(elapsed, false)
		c.lastError = err.Error()
		c.state = StateError
		c.current = nil
		c.mu.Unlock()
		c.log.Error("%s: task %s failed: %v", c.name, task.ID, err)
		c.recover()
		return governance.Report{}, fmt.Errorf("agent: %s task %s: %w", c.name, task.ID, err)
	}

	task.complete(c.now(), report)
	c.mu.Lock()
	c.metrics.record(elapsed, true)
	c.state = StateIdle
	c.current = nil
	c.mu.Unlock()
	c.log.Info("%s: task %s completed in %s", c.name, task.ID, elapsed.Round(time.Millisecond))
	return report, nil
}

// recover makes the single automatic recovery attempt after a task failure:
// re-run the health check and return to idle when it passes. A fresh context
// is used so an expired task deadline cannot doom an otherwise healthy
// evaluator.
func (c *Core) recover() {
	ctx, cancel := context.WithTimeout(context.Background(), recoveryWait)
	defer cancel()
	if err := c.hooks.HealthCheck(ctx); err != nil {
		c.log.Warn("%s: recovery failed: %v", c.name, err)
		return
	}
	c.mu.Lock()
	if c.state == StateError {
		c.state = StateIdle
	}
	c.mu.Unlock()
	c.log.Info("%s: recovered", c.name)
}

// Status returns a point-in-time snapshot. It has no side effects.
func (c *Core) Status() StatusSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := StatusSnapshot{
		AgentID:             c.id,
		Name:                c.name,
		Domain:              c.domain,
		State:               c.state,
		HealthScore:         c.metrics.healthScore,
		TotalRequests:       c.metrics.totalRequests,
		SuccessfulRequests:  c.metrics.successfulRequests,
		FailedRequests:      c.metrics.failedRequests,
		ErrorCount:          c.metrics.errorCount,
		AverageResponseTime: c.metrics.averageResponse,
		LastError:           c.lastError,
		LastActivity:        c.lastActivity,
		QueueLength:         len(c.queue),
	}
	if c.current != nil {
		snap.CurrentTaskID = c.current.ID
	}
	return snap
}

// Shutdown transitions the evaluator offline and tears down domain
// resources. It is idempotent and best-effort: an in-flight task is only
// logged, never force-completed.
func (c *Core) Shutdown(ctx context.Context) {
	c.mu.Lock()
	if c.state == StateOffline {
		c.mu.Unlock()
		return
	}
	inflight := c.current
	c.state = StateOffline
	c.mu.Unlock()

	if inflight != nil {
		c.log.Warn("%s: shutting down with task %s in flight", c.name, inflight.ID)
	}
	if err := c.hooks.Teardown(ctx); err != nil {
		c.log.Error("%s: teardown: %v", c.name, err)
		return
	}
	c.log.Info("%s: shutdown complete", c.name)
}
