package plugins

import (
	"fmt"
	"strings"

	"github.com/ostraca/conclave/internal/governance"
)

// RuleDefinition describes one custom validation rule loaded into the generic
// evaluator.
//
// The struct mirrors the on-disk schema under .conclave/rules/*.yaml and is
// intentionally narrow so the swarm can validate rule metadata before an
// evaluator starts emitting findings from it.
type RuleDefinition struct {
	RuleID               string                      `json:"rule_id" yaml:"rule_id"`
	RuleName             string                      `json:"rule_name,omitempty" yaml:"rule_name,omitempty"`
	RuleDescription      string                      `json:"rule_description,omitempty" yaml:"rule_description,omitempty"`
	Severity             governance.Severity         `json:"severity" yaml:"severity"`
	Status               governance.ValidationStatus `json:"status" yaml:"status"`
	Message              string                      `json:"message,omitempty" yaml:"message,omitempty"`
	Recommendations      []string                    `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	ComplianceFrameworks []string                    `json:"compliance_frameworks,omitempty" yaml:"compliance_frameworks,omitempty"`
	RiskScore            float64                     `json:"risk_score" yaml:"risk_score"`
	ComplianceScore      float64                     `json:"compliance_score" yaml:"compliance_score"`
}

// Normalized returns a trimmed copy of the definition with defaults applied.
func (def RuleDefinition) Normalized() RuleDefinition {
	clone := def
	clone.RuleID = strings.TrimSpace(def.RuleID)
	clone.RuleName = strings.TrimSpace(def.RuleName)
	clone.RuleDescription = strings.TrimSpace(def.RuleDescription)
	clone.Message = strings.TrimSpace(def.Message)
	if clone.RuleName == "" {
		clone.RuleName = clone.RuleID
	}
	if clone.Severity == "" {
		clone.Severity = governance.SeverityInfo
	}
	if clone.Status == "" {
		clone.Status = governance.ValidationPassed
	}
	clone.Recommendations = trimAll(def.Recommendations)
	clone.ComplianceFrameworks = trimAll(def.ComplianceFrameworks)
	return clone
}

// Validate rejects definitions the generic evaluator cannot emit findings
// from.
func (def RuleDefinition) Validate() error {
	if strings.TrimSpace(def.RuleID) == "" {
		return fmt.Errorf("plugin: rule_id is required")
	}
	switch def.Severity {
	case "", governance.SeverityCritical, governance.SeverityHigh, governance.SeverityMedium, governance.SeverityLow, governance.SeverityInfo:
	default:
		return fmt.Errorf("plugin: rule %s has unknown severity %q", def.RuleID, def.Severity)
	}
	switch def.Status {
	case "", governance.ValidationPassed, governance.ValidationFailed, governance.ValidationWarning, governance.ValidationPending, governance.ValidationError:
	default:
		return fmt.Errorf("plugin: rule %s has unknown status %q", def.RuleID, def.Status)
	}
	if def.RiskScore < 0 || def.RiskScore > 100 {
		return fmt.Errorf("plugin: rule %s risk_score must be within [0, 100]", def.RuleID)
	}
	if def.ComplianceScore < 0 || def.ComplianceScore > 100 {
		return fmt.Errorf("plugin: rule %s compliance_score must be within [0, 100]", def.RuleID)
	}
	return nil
}

// Result converts the definition into the finding the generic evaluator
// reports.
func (def RuleDefinition) Result() governance.ValidationResult {
	return governance.ValidationResult{
		RuleID:               def.RuleID,
		RuleName:             def.RuleName,
		RuleDescription:      def.RuleDescription,
		Severity:             def.Severity,
		Status:               def.Status,
		Message:              def.Message,
		Recommendations:      append([]string(nil), def.Recommendations...),
		ComplianceFrameworks: append([]string(nil), def.ComplianceFrameworks...),
		Domain:               governance.DomainGeneric,
	}
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
