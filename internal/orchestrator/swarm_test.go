package orchestrator

import (
	"context"
	"testing"

	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
)

func TestSwarmStatusAggregation(t *testing.T) {
	brain := newTestBrain(t)
	snap := brain.SwarmStatus()

	if snap.TotalAgents != len(governance.Domains())+1 {
		t.Fatalf("expected %d agents, got %d", len(governance.Domains())+1, snap.TotalAgents)
	}
	if len(snap.Evaluators) != len(governance.Domains()) {
		t.Fatalf("expected %d evaluator entries, got %d", len(governance.Domains()), len(snap.Evaluators))
	}
	// Freshly initialized swarm: everyone healthy at 100.
	if snap.OverallHealth != 100 {
		t.Fatalf("expected overall health 100, got %f", snap.OverallHealth)
	}
	if len(snap.Unhealthy) != 0 {
		t.Fatalf("expected no unhealthy evaluators, got %v", snap.Unhealthy)
	}
	if snap.ActiveTasks != 0 {
		t.Fatalf("expected no active tasks, got %d", snap.ActiveTasks)
	}
	if snap.Orchestrator.Domain != governance.DomainOrchestrator {
		t.Fatalf("unexpected orchestrator entry: %+v", snap.Orchestrator)
	}
}

func TestSwarmStatusSurvivesPanickingEvaluator(t *testing.T) {
	brain := NewBrain(nil, WithRequiredDomains())
	healthy := &stubAgent{snap: agent.StatusSnapshot{
		AgentID: "sec-1", State: agent.StateIdle, HealthScore: 80, CurrentTaskID: "task-1",
	}}
	broken := &stubAgent{panicStatus: true}
	if err := brain.Register(governance.DomainSecurity, healthy); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := brain.Register(governance.DomainData, broken); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := brain.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	defer brain.Shutdown(context.Background())

	snap := brain.SwarmStatus()
	if len(snap.Evaluators) != 2 {
		t.Fatalf("expected both evaluators listed, got %d", len(snap.Evaluators))
	}
	var brokenEntry *EvaluatorStatus
	for i := range snap.Evaluators {
		if snap.Evaluators[i].Domain == governance.DomainData {
			brokenEntry = &snap.Evaluators[i]
		}
	}
	if brokenEntry == nil || brokenEntry.Err == "" {
		t.Fatalf("expected inline error entry for the broken evaluator: %+v", snap.Evaluators)
	}
	found := false
	for _, d := range snap.Unhealthy {
		if d == governance.DomainData {
			found = true
		}
	}
	if !found {
		t.Fatalf("broken evaluator should be flagged unhealthy: %v", snap.Unhealthy)
	}
	// Orchestrator 100 + healthy 80 + broken contributing 0, over 3 agents.
	if snap.OverallHealth != 60 {
		t.Fatalf("expected overall health 60, got %f", snap.OverallHealth)
	}
	if snap.ActiveTasks != 1 {
		t.Fatalf("expected one active task, got %d", snap.ActiveTasks)
	}
}

func TestSwarmStatusReflectsDegradedHealth(t *testing.T) {
	// A sub-threshold evaluator is flagged, not fatal: the orchestrator comes
	// up anyway and reports the degradation through its status snapshot.
	brain := NewBrain(nil, WithRequiredDomains(), WithHealthThreshold(75))
	degraded := &stubAgent{snap: agent.StatusSnapshot{
		AgentID: "int-1", State: agent.StateIdle, HealthScore: 40,
	}}
	if err := brain.Register(governance.DomainIntegration, degraded); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := brain.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	defer brain.Shutdown(context.Background())

	if got := brain.Status().State; got != agent.StateIdle {
		t.Fatalf("expected idle orchestrator despite degraded evaluator, got %s", got)
	}
	snap := brain.SwarmStatus()
	if len(snap.Unhealthy) != 1 || snap.Unhealthy[0] != governance.DomainIntegration {
		t.Fatalf("expected integration flagged unhealthy, got %v", snap.Unhealthy)
	}
}

func TestSwarmStatusExercisedThroughBuiltins(t *testing.T) {
	brain := newTestBrain(t)
	if _, err := brain.Review(context.Background(), governance.NewRequest(governance.ScopeComprehensive)); err != nil {
		t.Fatalf("review: %v", err)
	}
	snap := brain.SwarmStatus()
	for _, e := range snap.Evaluators {
		if e.Status.TotalRequests != 1 {
			t.Fatalf("evaluator %s should have processed one task: %+v", e.Domain, e.Status)
		}
	}
}
