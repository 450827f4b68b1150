package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mdcheck/internal/checks"
)

func TestNewFileSink_InferFormat_FromExtension(t *testing.T) {
	for _, name := range []string{"out.json", "out.ndjson", "out.jsonl", "out.sarif"} {
		t.Run(name, func(t *testing.T) {
			s, err := NewFileSink(filepath.Join(t.TempDir(), name), "", nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			_ = s.Close()
		})
	}
}

func TestNewFileSink_UnknownExtension_Errors_WhenFormatOmitted(t *testing.T) {
	_, err := NewFileSink(filepath.Join(t.TempDir(), "out.unknown"), "", nil)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "cannot infer output format") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewFileSink_UnsupportedFormat_Errors(t *testing.T) {
	_, err := NewFileSink(filepath.Join(t.TempDir(), "out.json"), "xml", nil)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "unsupported output format") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewFileSink_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	s, err := NewFileSink(path, "", nil)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestFileSink_JSON_AggregatesResults_AndIgnoresEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	s, err := NewFileSink(path, "json", nil)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	if err := s.Write(Event{Type: EventRunStarted}); err != nil {
		t.Fatalf("Write event failed: %v", err)
	}
	if err := s.Write(passResult("Catalog.A", "c1")); err != nil {
		t.Fatalf("Write result failed: %v", err)
	}
	if err := s.Write(failResult("Catalog.A", "c2", checks.SeverityMinor, "nope")); err != nil {
		t.Fatalf("Write result failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var got []checks.Result
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v\nbody=%s", err, string(b))
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].CheckID != "c1" || got[1].CheckID != "c2" {
		t.Fatalf("unexpected results order/content: %#v", got)
	}
}

func TestFileSink_NDJSON_StreamsEventsAndResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")

	s, err := NewFileSink(path, "", nil)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	if err := s.Write(Event{Type: EventRunStarted, RunID: "run-1"}); err != nil {
		t.Fatalf("Write event failed: %v", err)
	}
	if err := s.Write(passResult("Catalog.A", "c1")); err != nil {
		t.Fatalf("Write result failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 ndjson lines, got %d\nbody=%s", len(lines), string(b))
	}

	var e1 Event
	if err := json.Unmarshal([]byte(lines[0]), &e1); err != nil {
		t.Fatalf("Unmarshal line 1 failed: %v", err)
	}
	if e1.Type != EventRunStarted || e1.RunID != "run-1" {
		t.Fatalf("unexpected event: %#v", e1)
	}

	var e2 Event
	if err := json.Unmarshal([]byte(lines[1]), &e2); err != nil {
		t.Fatalf("Unmarshal line 2 failed: %v", err)
	}
	if e2.Type != EventCheckResult || e2.Result == nil {
		t.Fatalf("unexpected check.result event: %#v", e2)
	}
	if e2.Result.CheckID != "c1" {
		t.Fatalf("unexpected result payload: %#v", e2.Result)
	}
}

func TestFileSink_SARIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sarif")

	described := []CheckInfo{
		{ID: "md-object-name-length", Title: "Name length", Severity: checks.SeverityMinor},
		{ID: "common-module-type", Title: "Module type", Severity: checks.SeverityCritical},
	}
	s, err := NewFileSink(path, "", described)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	writes := []any{
		Event{Type: EventRunStarted, RunID: "5f0c"},
		Event{Type: EventObjectStarted, Object: "Catalog.A", Source: "catalogs/A.yaml"},
		failResult("Catalog.A", "md-object-name-length", checks.SeverityMinor, "too long"),
		checks.Result{Object: "Catalog.A", CheckID: "common-module-type", Status: checks.StatusError, Message: "panic: boom"},
		Event{Type: EventRunFinished, ExitCode: 2},
	}
	for _, w := range writes {
		if err := s.Write(w); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(b, &log); err != nil {
		t.Fatalf("Unmarshal failed: %v\nbody=%s", err, string(b))
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected SARIF envelope: %s", string(b))
	}
	run := log.Runs[0]
	if len(run.Tool.Driver.Rules) != 2 || run.Tool.Driver.Rules[0].ID != "common-module-type" {
		t.Fatalf("expected sorted rules, got %#v", run.Tool.Driver.Rules)
	}
	if run.Tool.Driver.Rules[0].DefaultConfig.Level != "error" {
		t.Fatalf("critical checks must default to error level")
	}
	if len(run.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(run.Results))
	}
	res := run.Results[0]
	if res.Level != "warning" || res.Message.Text != "too long" {
		t.Fatalf("unexpected result: %#v", res)
	}
	loc := res.Locations[0]
	if loc.PhysicalLocation == nil || loc.PhysicalLocation.ArtifactLocation.URI != "catalogs/A.yaml" {
		t.Fatalf("expected source file location, got %#v", loc)
	}
	if loc.LogicalLocations[0].FullyQualifiedName != "Catalog.A" {
		t.Fatalf("unexpected logical location: %#v", loc.LogicalLocations)
	}
	if run.AutomationDetails == nil || run.AutomationDetails.GUID != "5f0c" {
		t.Fatalf("expected run ID in automation details")
	}
	inv := run.Invocations[0]
	if inv.ExecutionSuccessful || len(inv.ToolExecutionNotifications) != 1 {
		t.Fatalf("expected a failed invocation with one notification, got %#v", inv)
	}
}

func TestSarifLevel(t *testing.T) {
	tests := map[checks.Severity]string{
		checks.SeverityTrivial:  "note",
		checks.SeverityMinor:    "warning",
		checks.SeverityMajor:    "warning",
		checks.SeverityCritical: "error",
		checks.SeverityBlocker:  "error",
	}
	for sev, want := range tests {
		if got := sarifLevel(sev); got != want {
			t.Errorf("sarifLevel(%s) = %q, want %q", sev, got, want)
		}
	}
}
