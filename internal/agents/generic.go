package agents

import (
	"context"
	"fmt"

	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
	"github.com/ostraca/conclave/plugins"
)

// genericHooks backs the catch-all evaluator. When the project ships custom
// rule packs (YAML or yaegi-interpreted Go under .conclave/rules), the
// evaluator emits one finding per rule and averages their score
// contributions; otherwise it falls back to a single baseline check.
type genericHooks struct {
	rulesDir string
	rules    []plugins.DefinitionFile
}

// NewGeneric returns the generic evaluator bound to the given rule pack
// directory.
func NewGeneric(rulesDir string, opts ...agent.Option) *agent.Core {
	return agent.New("Generic Evaluator", governance.DomainGeneric, &genericHooks{rulesDir: rulesDir}, opts...)
}

// Setup loads the custom rule packs. A malformed pack fails initialization so
// the swarm surfaces broken rules instead of silently reviewing without them.
func (h *genericHooks) Setup(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rules, err := plugins.LoadRuleDir(h.rulesDir)
	if err != nil {
		return fmt.Errorf("load rule packs: %w", err)
	}
	h.rules = rules
	return nil
}

func (h *genericHooks) LoadConfig(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return map[string]any{
		"validation_rules":      []string{"general_validation", "query_processing"},
		"compliance_frameworks": []string{"General"},
		"rule_packs":            len(h.rules),
	}, nil
}

func (h *genericHooks) HealthCheck(ctx context.Context) error { return ctx.Err() }

func (h *genericHooks) Evaluate(ctx context.Context, task *agent.Task) (governance.Report, error) {
	if err := ctx.Err(); err != nil {
		return governance.Report{}, err
	}
	if len(h.rules) == 0 {
		return governance.Report{
			Status:  governance.ReportCompleted,
			AgentID: task.AgentID,
			Domain:  governance.DomainGeneric,
			ValidationResults: []governance.ValidationResult{{
				RuleID:          "GEN_001",
				RuleName:        "General Validation",
				RuleDescription: "Baseline validation for requests outside the specialized domains",
				Severity:        governance.SeverityInfo,
				Status:          governance.ValidationPassed,
				Message:         "General validation completed successfully",
				Recommendations: []string{"Continue monitoring"},
				Domain:          governance.DomainGeneric,
			}},
			RiskScore:       10.0,
			ComplianceScore: 95.0,
			Recommendations: []string{"Continue general monitoring"},
		}, nil
	}

	results := make([]governance.ValidationResult, 0, len(h.rules))
	var risk, compliance float64
	var recommendations []string
	for _, file := range h.rules {
		def := file.Definition
		results = append(results, def.Result())
		risk += def.RiskScore
		compliance += def.ComplianceScore
		recommendations = append(recommendations, def.Recommendations...)
	}
	n := float64(len(h.rules))
	return governance.Report{
		Status:            governance.ReportCompleted,
		AgentID:           task.AgentID,
		Domain:            governance.DomainGeneric,
		ValidationResults: results,
		RiskScore:         risk / n,
		ComplianceScore:   compliance / n,
		Recommendations:   recommendations,
	}, nil
}

func (h *genericHooks) Teardown(ctx context.Context) error { return nil }
