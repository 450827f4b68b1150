package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"mdcheck/internal/checks"
)

var statusColors = map[checks.Status]*color.Color{
	checks.StatusPass:    color.New(color.FgGreen),
	checks.StatusFail:    color.New(color.FgRed, color.Bold),
	checks.StatusSkipped: color.New(color.FgYellow),
	checks.StatusError:   color.New(color.FgMagenta, color.Bold),
}

var severityColors = map[checks.Severity]*color.Color{
	checks.SeverityTrivial:  color.New(color.Faint),
	checks.SeverityMinor:    color.New(color.FgCyan),
	checks.SeverityMajor:    color.New(color.FgYellow),
	checks.SeverityCritical: color.New(color.FgRed),
	checks.SeverityBlocker:  color.New(color.FgRed, color.Bold),
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	results         []checks.Result // For JSON array output
	allowedStatuses map[string]bool
}

func NewConsoleSink(w io.Writer, format string, filterStatuses []string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer:  w,
		format:  format,
		results: []checks.Result{},
	}

	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[string]bool)
		for _, st := range filterStatuses {
			s.allowedStatuses[strings.ToUpper(st)] = true
		}
	}

	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	if len(s.allowedStatuses) > 0 {
		if r, ok := v.(checks.Result); ok {
			if !s.allowedStatuses[string(r.Status)] {
				return nil
			}
		}
	}

	switch s.format {
	case "json":
		r, ok := v.(checks.Result)
		if !ok {
			// Ignore non-result events in JSON console mode.
			return nil
		}
		s.results = append(s.results, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case checks.Result:
			if err := encoder.Encode(eventFromResult(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		switch t := v.(type) {
		case checks.Result:
			if err := s.writeTextResult(t); err != nil {
				return err
			}
		case Event:
			if t.Type != EventRunFinished {
				return nil
			}
			if _, err := fmt.Fprintf(s.writer, "%d objects, %d checks, %d issues, %d defects\n", t.Objects, t.Checks, t.IssueCount, t.Defects); err != nil {
				return err
			}
		default:
			return nil
		}
		return flushIfPossible(s.writer)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeTextResult(r checks.Result) error {
	line := fmt.Sprintf("%s %s: %s", paint(statusColors[r.Status], "["+string(r.Status)+"]"), r.Object, r.CheckID)
	if r.Message != "" {
		line += " - " + r.Message
	}
	if _, err := fmt.Fprintln(s.writer, line); err != nil {
		return err
	}
	for _, is := range r.Issues {
		target := is.Object
		if is.Feature != "" {
			target += " (" + string(is.Feature) + ")"
		}
		if _, err := fmt.Fprintf(s.writer, "    %s %s: %s\n", paint(severityColors[is.Severity], string(is.Severity)), target, is.Message); err != nil {
			return err
		}
	}
	if len(r.Accessed) > 0 {
		names := make([]string, len(r.Accessed))
		for i, f := range r.Accessed {
			names[i] = string(f)
		}
		if _, err := fmt.Fprintf(s.writer, "    read: %s\n", strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.results); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
