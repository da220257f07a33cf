package agents

import (
	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
)

// NewIntegration returns the integration architecture evaluator, covering API
// design and interoperability.
func NewIntegration(opts ...agent.Option) *agent.Core {
	return build(profile{
		name:            "Integration Architecture Evaluator",
		domain:          governance.DomainIntegration,
		validationRules: []string{"api_design", "interoperability", "standards"},
		frameworks:      []string{"REST", "GraphQL", "OpenAPI"},
		findings: []governance.ValidationResult{
			{
				RuleID:          "INT_001",
				RuleName:        "API Design Validation",
				RuleDescription: "Validates API design against interoperability standards",
				Severity:        governance.SeverityInfo,
				Status:          governance.ValidationPassed,
				Message:         "API design meets standards",
				Recommendations: []string{"Continue API monitoring"},
			},
		},
		riskScore:       22.0,
		complianceScore: 88.0,
		recommendations: []string{"Monitor API performance", "Maintain API documentation"},
	}, opts...)
}
