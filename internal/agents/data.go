package agents

import (
	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
)

// NewData returns the data architecture evaluator, covering data quality and
// governance obligations.
func NewData(opts ...agent.Option) *agent.Core {
	return build(profile{
		name:            "Data Architecture Evaluator",
		domain:          governance.DomainData,
		validationRules: []string{"data_quality", "data_governance", "compliance"},
		frameworks:      []string{"GDPR", "SOX", "HIPAA"},
		findings: []governance.ValidationResult{
			{
				RuleID:          "DATA_001",
				RuleName:        "Data Quality Assessment",
				RuleDescription: "Assesses data quality against governance standards",
				Severity:        governance.SeverityInfo,
				Status:          governance.ValidationPassed,
				Message:         "Data quality meets standards",
				Recommendations: []string{"Continue data quality monitoring"},
			},
		},
		riskScore:       18.0,
		complianceScore: 85.0,
		recommendations: []string{"Monitor data quality", "Maintain data governance"},
	}, opts...)
}
