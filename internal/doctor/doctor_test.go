package doctor

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

type stubCheck struct {
	name   string
	status Severity
	runs   int
}

func (s *stubCheck) Name() string     { return s.name }
func (s *stubCheck) Category() string { return "test" }
func (s *stubCheck) Run(context.Context) *CheckResult {
	s.runs++
	return &CheckResult{Name: s.name, Category: "test", Status: s.status, Message: s.name}
}

func TestRunner_Summary(t *testing.T) {
	r := NewRunner(
		&stubCheck{name: "a", status: SeverityPass},
		&stubCheck{name: "b", status: SeverityWarning},
	)
	r.AddCheck(&stubCheck{name: "c", status: SeverityError})
	r.AddCheck(&stubCheck{name: "d", status: SeverityInfo})
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	report := r.Run(context.Background())

	want := Summary{Passed: 1, Info: 1, Warnings: 1, Errors: 1}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
	if !report.HasErrors() || !report.HasWarnings() {
		t.Error("HasErrors()/HasWarnings() = false, want true")
	}
	if !report.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v", report.Timestamp, fixed)
	}
	var names []string
	for _, res := range report.Results {
		names = append(names, res.Name)
	}
	if got := strings.Join(names, ","); got != "a,b,c,d" {
		t.Errorf("result order = %s, want a,b,c,d", got)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	check := &stubCheck{name: "a", status: SeverityPass}
	r := NewRunner(check)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report := r.Run(ctx)

	if check.runs != 0 {
		t.Errorf("check ran %d times after cancel", check.runs)
	}
	if report.Summary.Errors != 1 {
		t.Errorf("Summary.Errors = %d, want 1", report.Summary.Errors)
	}
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(&CheckResult{Name: "x", Status: SeverityWarning})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"status":"warning"`) {
		t.Errorf("Marshal() = %s, want status by name", data)
	}
}

func TestDefaultChecks_UniqueNames(t *testing.T) {
	reg, _ := newTestRegistry(t)
	seen := make(map[string]bool)
	for _, c := range DefaultChecks(reg) {
		if seen[c.Name()] {
			t.Errorf("duplicate check name %q", c.Name())
		}
		seen[c.Name()] = true
	}
}

func TestDefaultChecks_EmptyMachine(t *testing.T) {
	reg, _ := newTestRegistry(t)
	report := NewRunner(DefaultChecks(reg)...).Run(context.Background())
	if report.HasErrors() {
		for _, res := range report.Results {
			if res.Status == SeverityError {
				t.Errorf("%s: %s", res.Name, res.Message)
			}
		}
	}
}
