package orchestrator

import (
	"context"
	"sync"

	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
	"github.com/ostraca/conclave/internal/logbook"
)

// Executor fans a review request out to the target evaluators and collects
// one outcome per dispatched task. Failures are isolated: a task that errors
// becomes a synthetic failed report and never cancels its siblings.
type Executor struct {
	registry    *Registry
	log         *logbook.Logbook
	maxParallel int
}

// NewExecutor wires an executor to the evaluator registry. maxParallel <= 0
// disables the dispatch cap.
func NewExecutor(registry *Registry, log *logbook.Logbook, maxParallel int) *Executor {
	return &Executor{registry: registry, log: log, maxParallel: maxParallel}
}

// dispatch builds and runs one task per target evaluator that is currently
// idle. Evaluators that are missing, busy, errored, or offline are skipped
// silently; they simply do not contribute an outcome.
func (e *Executor) dispatch(ctx context.Context, req governance.Request, targets []governance.Domain) []governance.Report {
	type assignment struct {
		domain governance.Domain
		ag     agent.Agent
		task   *agent.Task
	}

	var assignments []assignment
	for _, domain := range targets {
		ag, ok := e.registry.Resolve(domain)
		if !ok {
			e.log.Warn("executor: no evaluator registered for %s", domain)
			continue
		}
		snap := ag.Status()
		if snap.State != agent.StateIdle {
			e.log.Info("executor: skipping %s (%s)", domain, snap.State)
			continue
		}
		task := agent.NewTask(snap.AgentID, "governance_validation", req.Priority, taskInput(req, domain), req.TimeoutSeconds)
		assignments = append(assignments, assignment{domain: domain, ag: ag, task: task})
	}
	if len(assignments) == 0 {
		return nil
	}

	reports := make([]governance.Report, len(assignments))
	var wg sync.WaitGroup
	sem := make(chan struct{}, parallelism(e.maxParallel, len(assignments)))
	for i, a := range assignments {
		wg.Add(1)
		go func(i int, a assignment) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			tctx, cancel := context.WithTimeout(ctx, a.task.Timeout())
			defer cancel()
			report, err := a.ag.ProcessTask(tctx, a.task)
			if err != nil {
				e.log.Error("executor: task %s for %s failed: %v", a.task.ID, a.domain, err)
				reports[i] = governance.FailedReport(a.task.AgentID, a.domain, err)
				return
			}
			reports[i] = report
		}(i, a)
	}
	wg.Wait()
	return reports
}

// taskInput augments the shared request context with domain-specific fields.
func taskInput(req governance.Request, domain governance.Domain) map[string]any {
	input := map[string]any{
		"governance_request":      req,
		"business_context":        req.BusinessContext,
		"technical_context":       req.TechnicalContext,
		"compliance_requirements": req.ComplianceRequirements,
		"target_components":       req.TargetComponents,
	}
	switch domain {
	case governance.DomainSecurity:
		input["security_frameworks"] = []string{"NIST", "ISO_27001", "OWASP"}
		input["threat_modeling_required"] = true
	case governance.DomainCosting:
		input["cost_analysis_period"] = "monthly"
		input["include_operational_costs"] = true
	}
	return input
}

func parallelism(maxParallel, pending int) int {
	if maxParallel <= 0 || maxParallel > pending {
		return pending
	}
	return maxParallel
}
