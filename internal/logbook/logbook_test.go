package logbook

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndTail(t *testing.T) {
	lb, err := New(filepath.Join(t.TempDir(), "logs", "conclave.log"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := 0; i < 5; i++ {
		lb.Info("entry %d", i)
	}
	lines := lb.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if !strings.Contains(line, fmt.Sprintf("entry %d", i+2)) {
			t.Fatalf("unexpected tail line %d: %s", i, line)
		}
		if !strings.Contains(line, "INFO") {
			t.Fatalf("missing level in line: %s", line)
		}
	}
}

func TestTailLimits(t *testing.T) {
	lb, err := New(filepath.Join(t.TempDir(), "conclave.log"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if lines := lb.Tail(10); lines != nil {
		t.Fatalf("expected nil for missing file, got %v", lines)
	}
	lb.Warn("only entry")
	if lines := lb.Tail(0); lines != nil {
		t.Fatalf("expected nil for zero limit, got %v", lines)
	}
	if lines := lb.Tail(10); len(lines) != 1 {
		t.Fatalf("expected the single entry, got %v", lines)
	}
}

func TestVerdictEntries(t *testing.T) {
	lb, err := New(filepath.Join(t.TempDir(), "conclave.log"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	lb.Info("request routed")
	lb.Verdict("request req-1 passed risk=19.1 compliance=88.4")
	lines := lb.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "VERDICT") || !strings.Contains(lines[1], "req-1 passed") {
		t.Fatalf("verdict entry malformed: %s", lines[1])
	}
}

func TestNilLogbookIsSilent(t *testing.T) {
	var lb *Logbook
	lb.Info("ignored %d", 1)
	lb.Warn("ignored")
	lb.Error("ignored")
	lb.Verdict("ignored")
	if lb.Path() != "" {
		t.Fatal("nil logbook has no path")
	}
	if lines := lb.Tail(5); lines != nil {
		t.Fatalf("expected nil tail, got %v", lines)
	}
}
