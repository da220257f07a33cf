package orchestrator

import "github.com/ostraca/conclave/internal/governance"

// Router maps a review scope to the domains that must participate. Routing is
// a pure lookup: an unknown scope yields an empty target set, which callers
// treat as "nothing to evaluate", never as an error.
type Router struct {
	routes map[governance.Scope][]governance.Domain
}

// NewRouter builds the fixed scope routing table. The comprehensive scope is
// the union of every specialized domain.
func NewRouter() *Router {
	return &Router{routes: map[governance.Scope][]governance.Domain{
		governance.ScopeSolution:       {governance.DomainSolution},
		governance.ScopeTechnical:      {governance.DomainTechnical},
		governance.ScopeSecurity:       {governance.DomainSecurity},
		governance.ScopeData:           {governance.DomainData},
		governance.ScopeIntegration:    {governance.DomainIntegration},
		governance.ScopeInfrastructure: {governance.DomainInfrastructure},
		governance.ScopeCosting:        {governance.DomainCosting},
		governance.ScopePortfolio:      {governance.DomainPortfolio},
		governance.ScopeComprehensive:  governance.Domains(),
	}}
}

// Targets returns the domains serving a scope, in routing order.
func (r *Router) Targets(scope governance.Scope) []governance.Domain {
	return append([]governance.Domain(nil), r.routes[scope]...)
}
