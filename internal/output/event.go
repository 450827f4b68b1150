package output

import (
	"io"

	"mdcheck/internal/checks"
)

// Lifecycle event types.
const (
	EventRunStarted     = "run.started"
	EventObjectStarted  = "object.started"
	EventCheckResult    = "check.result"
	EventObjectFinished = "object.finished"
	EventRunFinished    = "run.finished"
)

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - object.started
// - check.result
// - object.finished
// - run.finished
//
// JSON mode remains an aggregate of checks.Result values. Source (the project
// file an object came from) is set on object.started, Command (a shell command
// reproducing the run) on run.started.
type Event struct {
	Type    string `json:"type"`
	RunID   string `json:"run_id,omitempty"`
	Object  string `json:"object,omitempty"`
	Source  string `json:"source,omitempty"`
	Command string `json:"command,omitempty"`
	*checks.Result
	Objects    int `json:"objects,omitempty"`
	Checks     int `json:"checks,omitempty"`
	IssueCount int `json:"issue_count,omitempty"`
	Defects    int `json:"defects,omitempty"`
	ExitCode   int `json:"exit_code,omitempty"`
}

func eventFromResult(r checks.Result) Event {
	return Event{Type: EventCheckResult, Object: r.Object, Result: &r}
}

// CheckInfo describes a check to sinks that list the rules they report on.
type CheckInfo struct {
	ID          string
	Title       string
	Description string
	Severity    checks.Severity
}

type flusher interface {
	Flush() error
}

func flushIfPossible(w io.Writer) error {
	f, ok := w.(flusher)
	if !ok {
		return nil
	}
	return f.Flush()
}
