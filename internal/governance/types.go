package governance

import "fmt"

// Scope is the requested breadth of a governance review. Every scope maps to
// one or more architecture domains; "comprehensive" covers all of them.
type Scope string

const (
	ScopeSolution       Scope = "solution"
	ScopeTechnical      Scope = "technical"
	ScopeSecurity       Scope = "security"
	ScopeData           Scope = "data"
	ScopeIntegration    Scope = "integration"
	ScopeInfrastructure Scope = "infrastructure"
	ScopeCosting        Scope = "costing"
	ScopePortfolio      Scope = "application_portfolio"
	ScopeComprehensive  Scope = "comprehensive"
)

// Scopes lists every valid scope value in a stable order.
func Scopes() []Scope {
	return []Scope{
		ScopeSolution,
		ScopeTechnical,
		ScopeSecurity,
		ScopeData,
		ScopeIntegration,
		ScopeInfrastructure,
		ScopeCosting,
		ScopePortfolio,
		ScopeComprehensive,
	}
}

// ParseScope validates a raw scope string.
func ParseScope(raw string) (Scope, error) {
	for _, s := range Scopes() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("governance: unknown scope %q", raw)
}

// Domain identifies one review category. Domains form a closed set plus a
// generic catch-all for rule packs loaded at runtime.
type Domain string

const (
	DomainSolution       Domain = "solution_architecture"
	DomainTechnical      Domain = "technical_architecture"
	DomainSecurity       Domain = "security_architecture"
	DomainData           Domain = "data_architecture"
	DomainIntegration    Domain = "integration_architecture"
	DomainInfrastructure Domain = "infrastructure_architecture"
	DomainCosting        Domain = "costing"
	DomainPortfolio      Domain = "application_portfolio"
	DomainGeneric        Domain = "generic"
	DomainOrchestrator   Domain = "core_brain"
)

// Domains lists the specialized review domains in routing order. The generic
// and orchestrator domains are excluded: neither is a routing target by
// default.
func Domains() []Domain {
	return []Domain{
		DomainSolution,
		DomainTechnical,
		DomainSecurity,
		DomainData,
		DomainIntegration,
		DomainInfrastructure,
		DomainCosting,
		DomainPortfolio,
	}
}

// Severity grades how serious a validation finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// ValidationStatus is the outcome of a single validation rule.
type ValidationStatus string

const (
	ValidationPassed  ValidationStatus = "passed"
	ValidationFailed  ValidationStatus = "failed"
	ValidationWarning ValidationStatus = "warning"
	ValidationPending ValidationStatus = "pending"
	ValidationError   ValidationStatus = "error"
)

// ValidationResult is one rule's finding. Results are read-only once an
// evaluator produces them; the synthesizer aggregates, never mutates.
type ValidationResult struct {
	RuleID               string           `json:"rule_id" yaml:"rule_id"`
	RuleName             string           `json:"rule_name" yaml:"rule_name"`
	RuleDescription      string           `json:"rule_description" yaml:"rule_description"`
	Severity             Severity         `json:"severity" yaml:"severity"`
	Status               ValidationStatus `json:"status" yaml:"status"`
	Message              string           `json:"message" yaml:"message"`
	Recommendations      []string         `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	ComplianceFrameworks []string         `json:"compliance_frameworks,omitempty" yaml:"compliance_frameworks,omitempty"`
	Domain               Domain           `json:"domain" yaml:"domain"`
}

// Validate ensures a result names its rule and carries a legal status.
func (r ValidationResult) Validate() error {
	if r.RuleID == "" {
		return fmt.Errorf("governance: validation result requires a rule id")
	}
	switch r.Status {
	case ValidationPassed, ValidationFailed, ValidationWarning, ValidationPending, ValidationError:
	default:
		return fmt.Errorf("governance: validation result %s has unknown status %q", r.RuleID, r.Status)
	}
	return nil
}
