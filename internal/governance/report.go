package governance

import "time"

// ReportStatus is the top-level outcome of one evaluator's run.
type ReportStatus string

const (
	ReportCompleted ReportStatus = "completed"
	ReportFailed    ReportStatus = "failed"
)

// Report is the per-evaluator outcome the executor collects and the
// synthesizer reduces. Evaluators that fail contribute a synthetic failed
// report carrying only the agent identity and the error text.
type Report struct {
	Status            ReportStatus       `json:"status" yaml:"status"`
	AgentID           string             `json:"agent_id" yaml:"agent_id"`
	Domain            Domain             `json:"domain" yaml:"domain"`
	ValidationResults []ValidationResult `json:"validation_results,omitempty" yaml:"validation_results,omitempty"`
	RiskScore         float64            `json:"risk_score" yaml:"risk_score"`
	ComplianceScore   float64            `json:"compliance_score" yaml:"compliance_score"`
	Recommendations   []string           `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Err               string             `json:"error,omitempty" yaml:"error,omitempty"`

	// Response carries the synthesized verdict when the reporting evaluator
	// is the orchestrator itself.
	Response *Response `json:"response,omitempty" yaml:"response,omitempty"`
}

// FailedReport builds the synthetic outcome for an evaluator whose task
// errored. It never carries scores or findings.
func FailedReport(agentID string, domain Domain, err error) Report {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Report{Status: ReportFailed, AgentID: agentID, Domain: domain, Err: msg}
}

// Response is the synthesized verdict returned to the review caller.
type Response struct {
	RequestID         string             `json:"request_id" yaml:"request_id"`
	Status            string             `json:"status" yaml:"status"`
	Summary           string             `json:"summary" yaml:"summary"`
	ValidationResults []ValidationResult `json:"validation_results,omitempty" yaml:"validation_results,omitempty"`
	RiskScore         float64            `json:"risk_score" yaml:"risk_score"`
	ComplianceScore   float64            `json:"compliance_score" yaml:"compliance_score"`
	Recommendations   []string           `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	NextSteps         []string           `json:"next_steps,omitempty" yaml:"next_steps,omitempty"`
	GeneratedAt       time.Time          `json:"generated_at" yaml:"generated_at"`
	ProcessingTime    time.Duration      `json:"processing_time" yaml:"processing_time"`
	AgentsUsed        []string           `json:"agents_used,omitempty" yaml:"agents_used,omitempty"`
}
