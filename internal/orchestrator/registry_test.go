package orchestrator

import (
	"strings"
	"testing"

	"github.com/ostraca/conclave/internal/governance"
)

func TestRegistryRegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	ag := &stubAgent{}
	if err := reg.Register(governance.DomainSecurity, ag); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, ok := reg.Resolve(governance.DomainSecurity)
	if !ok || got != ag {
		t.Fatal("expected registered evaluator back")
	}
	if _, ok := reg.Resolve(governance.DomainData); ok {
		t.Fatal("expected unknown domain to miss")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 evaluator, got %d", reg.Len())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(governance.DomainSecurity, &stubAgent{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := reg.Register(governance.DomainSecurity, &stubAgent{})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
}

func TestRegistryRejectsInvalidArguments(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("", &stubAgent{}); err == nil {
		t.Fatal("expected empty domain rejection")
	}
	if err := reg.Register(governance.DomainData, nil); err == nil {
		t.Fatal("expected nil evaluator rejection")
	}
}

func TestRegistryDomainsSorted(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(governance.DomainTechnical, &stubAgent{})
	reg.MustRegister(governance.DomainCosting, &stubAgent{})
	reg.MustRegister(governance.DomainData, &stubAgent{})
	domains := reg.Domains()
	for i := 1; i < len(domains); i++ {
		if domains[i-1] >= domains[i] {
			t.Fatalf("domains not sorted: %v", domains)
		}
	}
}
