// Package orchestrator contains the swarm coordination runtime: the evaluator
// registry, the scope router, the parallel executor, the result synthesizer,
// and the Brain that ties them together. The Brain is itself an evaluator —
// it implements the same lifecycle contract it demands from the domain
// evaluators it coordinates.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
	"github.com/ostraca/conclave/internal/logbook"
)

const taskKindReview = "governance_validation"

// defaultHealthThreshold flags evaluators as unhealthy for swarm reporting.
const defaultHealthThreshold = 50

// Brain orchestrates the evaluator swarm. Evaluators are registered before
// Initialize; afterwards the registry is read-only and reviews can run.
type Brain struct {
	registry        *Registry
	router          *Router
	executor        *Executor
	log             *logbook.Logbook
	healthThreshold float64
	required        []governance.Domain

	core *agent.Core
}

// BrainOption customizes Brain construction.
type BrainOption func(*Brain)

// WithHealthThreshold overrides the score below which an evaluator counts as
// unhealthy.
func WithHealthThreshold(threshold float64) BrainOption {
	return func(b *Brain) { b.healthThreshold = threshold }
}

// WithRequiredDomains narrows the set of domains the Brain's health check
// demands. Defaults to every specialized domain.
func WithRequiredDomains(domains ...governance.Domain) BrainOption {
	return func(b *Brain) { b.required = append([]governance.Domain(nil), domains...) }
}

// WithMaxParallel caps concurrent evaluator dispatch.
func WithMaxParallel(n int) BrainOption {
	return func(b *Brain) { b.executor.maxParallel = n }
}

// NewBrain constructs the orchestrating evaluator. Core options (logbook,
// clock) are shared with the embedded lifecycle core.
func NewBrain(log *logbook.Logbook, opts ...BrainOption) *Brain {
	b := &Brain{
		registry:        NewRegistry(),
		router:          NewRouter(),
		log:             log,
		healthThreshold: defaultHealthThreshold,
		required:        governance.Domains(),
	}
	b.executor = NewExecutor(b.registry, log, 0)
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	b.core = agent.New("Core Brain", governance.DomainOrchestrator, b, agent.WithLogbook(log))
	return b
}

// Register installs an evaluator for a domain. Registration is pre-startup
// only: once the Brain has initialized, the registry is frozen.
func (b *Brain) Register(domain governance.Domain, ag agent.Agent) error {
	if b.core.Status().State != agent.StateInitializing {
		return fmt.Errorf("orchestrator: register %s after startup", domain)
	}
	return b.registry.Register(domain, ag)
}

// Initialize brings up every registered evaluator, then the Brain itself. A
// domain evaluator that fails to initialize is left in its error state and
// logged; it simply won't receive work until it recovers.
func (b *Brain) Initialize(ctx context.Context) error {
	for _, domain := range b.registry.Domains() {
		ag, _ := b.registry.Resolve(domain)
		if err := ag.Initialize(ctx); err != nil {
			b.log.Error("orchestrator: %s failed to initialize: %v", domain, err)
		}
	}
	return b.core.Initialize(ctx)
}

// Review runs the end-to-end operation: route the request, execute the
// surviving targets in parallel, and synthesize one response. A response is
// always produced when routing succeeds — if every evaluator is unavailable
// or failing, it reports unknown status with zero scores rather than an
// error.
func (b *Brain) Review(ctx context.Context, req governance.Request) (governance.Response, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return governance.Response{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, req.Timeout())
	defer cancel()

	start := time.Now()
	task := agent.NewTask(b.core.ID(), taskKindReview, req.Priority,
		map[string]any{"governance_request": req}, req.TimeoutSeconds)
	report, err := b.core.ProcessTask(ctx, task)
	if err != nil {
		return governance.Response{}, err
	}
	if report.Response == nil {
		return governance.Response{}, fmt.Errorf("orchestrator: review %s produced no response", req.ID)
	}
	resp := *report.Response
	resp.ProcessingTime = time.Since(start)
	b.log.Verdict("request %s %s risk=%.1f compliance=%.1f evaluators=%d in %s",
		resp.RequestID, resp.Status, resp.RiskScore, resp.ComplianceScore,
		len(resp.AgentsUsed), resp.ProcessingTime.Round(time.Millisecond))
	return resp, nil
}

// Status reports the Brain's own lifecycle snapshot.
func (b *Brain) Status() agent.StatusSnapshot {
	return b.core.Status()
}

// Shutdown stops every evaluator, then the Brain. Best-effort and idempotent.
func (b *Brain) Shutdown(ctx context.Context) {
	for _, domain := range b.registry.Domains() {
		ag, _ := b.registry.Resolve(domain)
		ag.Shutdown(ctx)
	}
	b.core.Shutdown(ctx)
}

// Setup implements agent.Hooks. The Brain has no domain resources of its own.
func (b *Brain) Setup(ctx context.Context) error { return ctx.Err() }

// LoadConfig implements agent.Hooks.
func (b *Brain) LoadConfig(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return map[string]any{
		"max_parallel":               b.executor.maxParallel,
		"health_threshold":           b.healthThreshold,
		"enable_parallel_processing": true,
		"enable_automatic_recovery":  true,
	}, nil
}

// HealthCheck implements agent.Hooks: every required domain must be staffed.
// Evaluator health is advisory — degraded or unreadable evaluators are logged
// and surfaced through SwarmStatus, but the dispatcher already skips them, so
// they never take the orchestrator itself down.
func (b *Brain) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var missing []string
	for _, domain := range b.required {
		if _, ok := b.registry.Resolve(domain); !ok {
			missing = append(missing, string(domain))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing evaluators: %s", strings.Join(missing, ", "))
	}
	var unhealthy []string
	for _, domain := range b.registry.Domains() {
		ag, _ := b.registry.Resolve(domain)
		snap, err := readStatus(ag)
		if err != nil {
			unhealthy = append(unhealthy, string(domain))
			continue
		}
		if snap.HealthScore < b.healthThreshold {
			unhealthy = append(unhealthy, string(domain))
		}
	}
	if len(unhealthy) > 0 {
		b.log.Warn("orchestrator: degraded evaluators: %s", strings.Join(unhealthy, ", "))
	}
	return nil
}

// Evaluate implements agent.Hooks: the Brain's own task is the full
// route-execute-synthesize pipeline.
func (b *Brain) Evaluate(ctx context.Context, task *agent.Task) (governance.Report, error) {
	req, ok := task.Input["governance_request"].(governance.Request)
	if !ok {
		return governance.Report{}, fmt.Errorf("task %s carries no governance request", task.ID)
	}
	targets := b.router.Targets(req.Scope)
	b.log.Info("orchestrator: request %s scope %s routed to %d domains", req.ID, req.Scope, len(targets))
	reports := b.executor.dispatch(ctx, req, targets)
	resp := synthesize(req, reports)
	return governance.Report{
		Status:            governance.ReportCompleted,
		AgentID:           task.AgentID,
		Domain:            governance.DomainOrchestrator,
		ValidationResults: resp.ValidationResults,
		RiskScore:         resp.RiskScore,
		ComplianceScore:   resp.ComplianceScore,
		Recommendations:   resp.Recommendations,
		Response:          &resp,
	}, nil
}

// Teardown implements agent.Hooks.
func (b *Brain) Teardown(ctx context.Context) error { return nil }
