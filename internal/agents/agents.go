// Package agents provides the built-in domain evaluators. Each evaluator is
// an agent.Core wrapped around a profile of placeholder validation content;
// the interesting behavior (lifecycle, metrics, recovery) lives in the agent
// package, and rule content is expected to be replaced by real analysis
// backends over time.
package agents

import (
	"context"

	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
)

// profile describes one built-in evaluator's validation content.
type profile struct {
	name            string
	domain          governance.Domain
	validationRules []string
	frameworks      []string
	findings        []governance.ValidationResult
	riskScore       float64
	complianceScore float64
	recommendations []string
	// enrich lets a domain react to task-specific context (e.g. the threat
	// modeling flag the executor sets for security tasks).
	enrich func(task *agent.Task, report *governance.Report)
}

// hooks adapts a profile to the agent.Hooks contract.
type hooks struct {
	p profile
}

func (h hooks) Setup(ctx context.Context) error { return ctx.Err() }

func (h hooks) LoadConfig(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return map[string]any{
		"validation_rules":      append([]string(nil), h.p.validationRules...),
		"compliance_frameworks": append([]string(nil), h.p.frameworks...),
	}, nil
}

func (h hooks) HealthCheck(ctx context.Context) error { return ctx.Err() }

func (h hooks) Evaluate(ctx context.Context, task *agent.Task) (governance.Report, error) {
	if err := ctx.Err(); err != nil {
		return governance.Report{}, err
	}
	results := make([]governance.ValidationResult, len(h.p.findings))
	for i, finding := range h.p.findings {
		finding.Domain = h.p.domain
		if len(finding.ComplianceFrameworks) == 0 {
			finding.ComplianceFrameworks = append([]string(nil), h.p.frameworks...)
		}
		results[i] = finding
	}
	report := governance.Report{
		Status:            governance.ReportCompleted,
		AgentID:           task.AgentID,
		Domain:            h.p.domain,
		ValidationResults: results,
		RiskScore:         h.p.riskScore,
		ComplianceScore:   h.p.complianceScore,
		Recommendations:   append([]string(nil), h.p.recommendations...),
	}
	if h.p.enrich != nil {
		h.p.enrich(task, &report)
	}
	return report, nil
}

func (h hooks) Teardown(ctx context.Context) error { return nil }

func build(p profile, opts ...agent.Option) *agent.Core {
	return agent.New(p.name, p.domain, hooks{p: p}, opts...)
}

// Builtins constructs one evaluator per specialized domain, in routing order.
func Builtins(opts ...agent.Option) []*agent.Core {
	return []*agent.Core{
		NewSolution(opts...),
		NewTechnical(opts...),
		NewSecurity(opts...),
		NewData(opts...),
		NewIntegration(opts...),
		NewInfrastructure(opts...),
		NewCosting(opts...),
		NewPortfolio(opts...),
	}
}
