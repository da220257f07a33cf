package orchestrator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ostraca/conclave/internal/agent"
	"github.com/ostraca/conclave/internal/governance"
)

// Registry maps review domains to evaluator instances. It is populated before
// the swarm starts and treated as read-only afterward; the lock only covers
// the registration window.
type Registry struct {
	mu     sync.RWMutex
	agents map[governance.Domain]agent.Agent
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{agents: map[governance.Domain]agent.Agent{}}
}

// Register installs an evaluator for a domain. Returns an error if the domain
// already has one.
func (r *Registry) Register(domain governance.Domain, ag agent.Agent) error {
	if domain == "" {
		return fmt.Errorf("orchestrator: domain is required")
	}
	if ag == nil {
		return fmt.Errorf("orchestrator: evaluator is required for %s", domain)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.agents[domain]; exists {
		return fmt.Errorf("orchestrator: %s already registered", domain)
	}
	r.agents[domain] = ag
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(domain governance.Domain, ag agent.Agent) {
	if err := r.Register(domain, ag); err != nil {
		panic(err)
	}
}

// Resolve returns the evaluator serving a domain.
func (r *Registry) Resolve(domain governance.Domain) (agent.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ag, ok := r.agents[domain]
	return ag, ok
}

// Domains returns the registered domains, sorted.
func (r *Registry) Domains() []governance.Domain {
	r.mu.RLock()
	defer r.mu.RUnlock()
	domains := make([]governance.Domain, 0, len(r.agents))
	for domain := range r.agents {
		domains = append(domains, domain)
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i] < domains[j] })
	return domains
}

// Len reports how many evaluators are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}
