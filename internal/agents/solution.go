package agents

import (
	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
)

// NewSolution returns the solution architecture evaluator, covering business
// alignment and solution pattern fit.
func NewSolution(opts ...agent.Option) *agent.Core {
	return build(profile{
		name:            "Solution Architecture Evaluator",
		domain:          governance.DomainSolution,
		validationRules: []string{"business_alignment", "pattern_appropriateness", "scalability"},
		frameworks:      []string{"TOGAF", "ISO_42010"},
		findings: []governance.ValidationResult{
			{
				RuleID:          "SOL_001",
				RuleName:        "Business Alignment Check",
				RuleDescription: "Validates the solution against stated business goals",
				Severity:        governance.SeverityInfo,
				Status:          governance.ValidationPassed,
				Message:         "Solution shows good business alignment",
				Recommendations: []string{"Continue monitoring business value delivery"},
			},
			{
				RuleID:          "SOL_002",
				RuleName:        "Solution Pattern Validation",
				RuleDescription: "Checks the chosen solution pattern against the problem shape",
				Severity:        governance.SeverityInfo,
				Status:          governance.ValidationPassed,
				Message:         "Solution pattern is appropriate",
				Recommendations: []string{"Follow pattern best practices"},
			},
		},
		riskScore:       15.0,
		complianceScore: 85.0,
		recommendations: []string{"Monitor business alignment", "Follow pattern best practices"},
	}, opts...)
}
