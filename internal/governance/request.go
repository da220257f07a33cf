package governance

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds a review when the request does not declare one.
const DefaultTimeout = 300 * time.Second

// Request describes one governance review submission.
type Request struct {
	ID                     string         `json:"request_id" yaml:"request_id"`
	Scope                  Scope          `json:"scope" yaml:"scope"`
	TargetComponents       []string       `json:"target_components,omitempty" yaml:"target_components,omitempty"`
	BusinessContext        map[string]any `json:"business_context,omitempty" yaml:"business_context,omitempty"`
	TechnicalContext       map[string]any `json:"technical_context,omitempty" yaml:"technical_context,omitempty"`
	ComplianceRequirements []string       `json:"compliance_requirements,omitempty" yaml:"compliance_requirements,omitempty"`
	Priority               string         `json:"priority" yaml:"priority"`
	TimeoutSeconds         int            `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// NewRequest builds a request with generated identity and defaults applied.
func NewRequest(scope Scope) Request {
	req := Request{ID: uuid.NewString(), Scope: scope}
	req.ApplyDefaults()
	return req
}

// ApplyDefaults fills identity, priority, and timeout when absent.
func (r *Request) ApplyDefaults() {
	if strings.TrimSpace(r.ID) == "" {
		r.ID = uuid.NewString()
	}
	if strings.TrimSpace(r.Priority) == "" {
		r.Priority = "medium"
	}
	if r.TimeoutSeconds <= 0 {
		r.TimeoutSeconds = int(DefaultTimeout / time.Second)
	}
}

// Validate checks the request is routable.
func (r Request) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("governance: request id is required")
	}
	if _, err := ParseScope(string(r.Scope)); err != nil {
		return err
	}
	return nil
}

// Timeout returns the declared review deadline as a duration.
func (r Request) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// LoadRequest reads a review request from a YAML file.
func LoadRequest(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("governance: read request %s: %w", path, err)
	}
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("governance: parse request %s: %w", path, err)
	}
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}
