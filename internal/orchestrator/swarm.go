package orchestrator

import (
	"fmt"

	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
)

// EvaluatorStatus is one evaluator's entry in the swarm snapshot. Err is set
// when the status read itself failed; the entry then carries a zero snapshot.
type EvaluatorStatus struct {
	Domain governance.Domain     `json:"domain" yaml:"domain"`
	Status agent.StatusSnapshot  `json:"status" yaml:"status"`
	Err    string                `json:"error,omitempty" yaml:"error,omitempty"`
}

// SwarmStatus aggregates the condition of every registered evaluator plus the
// orchestrator.
type SwarmStatus struct {
	Orchestrator  agent.StatusSnapshot `json:"orchestrator" yaml:"orchestrator"`
	Evaluators    []EvaluatorStatus    `json:"evaluators" yaml:"evaluators"`
	OverallHealth float64              `json:"overall_health" yaml:"overall_health"`
	ActiveTasks   int                  `json:"active_tasks" yaml:"active_tasks"`
	TotalAgents   int                  `json:"total_agents" yaml:"total_agents"`
	Unhealthy     []governance.Domain  `json:"unhealthy,omitempty" yaml:"unhealthy,omitempty"`
}

// SwarmStatus polls every evaluator. A failing status read becomes an inline
// error entry for that evaluator; it never aborts the aggregation.
func (b *Brain) SwarmStatus() SwarmStatus {
	domains := b.registry.Domains()
	snap := SwarmStatus{
		Orchestrator: b.core.Status(),
		TotalAgents:  len(domains) + 1,
	}
	totalHealth := snap.Orchestrator.HealthScore
	for _, domain := range domains {
		ag, _ := b.registry.Resolve(domain)
		status, err := readStatus(ag)
		if err != nil {
			b.log.Error("orchestrator: status read for %s: %v", domain, err)
			snap.Evaluators = append(snap.Evaluators, EvaluatorStatus{Domain: domain, Err: err.Error()})
			snap.Unhealthy = append(snap.Unhealthy, domain)
			continue
		}
		snap.Evaluators = append(snap.Evaluators, EvaluatorStatus{Domain: domain, Status: status})
		totalHealth += status.HealthScore
		if status.CurrentTaskID != "" {
			snap.ActiveTasks++
		}
		if status.HealthScore < b.healthThreshold {
			snap.Unhealthy = append(snap.Unhealthy, domain)
		}
	}
	snap.OverallHealth = totalHealth / float64(len(domains)+1)
	return snap
}

// readStatus shields the aggregation from a misbehaving Agent implementation:
// a panicking Status() becomes an error instead of taking the poll down.
func readStatus(ag agent.Agent) (snap agent.StatusSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("status read panicked: %v", r)
		}
	}()
	return ag.Status(), nil
}
