package agents

import (
	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
)

// NewPortfolio returns the application portfolio evaluator, covering
// portfolio health and rationalization.
func NewPortfolio(opts ...agent.Option) *agent.Core {
	return build(profile{
		name:            "Application Portfolio Evaluator",
		domain:          governance.DomainPortfolio,
		validationRules: []string{"portfolio_management", "lifecycle", "rationalization"},
		frameworks:      []string{"TOGAF", "ITIL"},
		findings: []governance.ValidationResult{
			{
				RuleID:          "PORT_001",
				RuleName:        "Portfolio Management",
				RuleDescription: "Reviews portfolio management and lifecycle practices",
				Severity:        governance.SeverityInfo,
				Status:          governance.ValidationPassed,
				Message:         "Portfolio management is effective",
				Recommendations: []string{"Continue portfolio monitoring"},
			},
		},
		riskScore:       18.0,
		complianceScore: 86.0,
		recommendations: []string{"Monitor application lifecycle", "Optimize portfolio"},
	}, opts...)
}
