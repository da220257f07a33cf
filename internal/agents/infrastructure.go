package agents

import (
	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
)

// NewInfrastructure returns the infrastructure architecture evaluator,
// covering platform design and resource optimization.
func NewInfrastructure(opts ...agent.Option) *agent.Core {
	return build(profile{
		name:            "Infrastructure Architecture Evaluator",
		domain:          governance.DomainInfrastructure,
		validationRules: []string{"infrastructure_design", "optimization", "monitoring"},
		frameworks:      []string{"AWS_WELL_ARCHITECTED", "AZURE_ARCHITECTURE", "GCP_ARCHITECTURE"},
		findings: []governance.ValidationResult{
			{
				RuleID:          "INFRA_001",
				RuleName:        "Infrastructure Design Validation",
				RuleDescription: "Validates infrastructure design against cloud architecture frameworks",
				Severity:        governance.SeverityInfo,
				Status:          governance.ValidationPassed,
				Message:         "Infrastructure design meets standards",
				Recommendations: []string{"Continue infrastructure monitoring"},
			},
		},
		riskScore:       20.0,
		complianceScore: 87.0,
		recommendations: []string{"Monitor infrastructure performance", "Optimize resource usage"},
	}, opts...)
}
