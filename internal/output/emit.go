package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"mdcheck/internal/checks"
)

// EmitSink writes additional structured outputs.
//
// Formats:
//   - json: aggregates check results and writes a single JSON array on Close
//   - ndjson: streams Event values (one JSON object per line)
type EmitSink struct {
	writer  io.Writer
	format  string // "json" | "ndjson"
	mu      sync.Mutex
	results []checks.Result
}

func NewEmitSink(w io.Writer, format string) (*EmitSink, error) {
	if w == nil {
		return nil, fmt.Errorf("emit sink writer must not be nil")
	}
	if format != "json" && format != "ndjson" {
		return nil, fmt.Errorf("unsupported emit format: %s", format)
	}
	return &EmitSink{writer: w, format: format, results: []checks.Result{}}, nil
}

func (s *EmitSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		if r, ok := v.(checks.Result); ok {
			s.results = append(s.results, r)
		}
		return nil
	default:
		var e Event
		switch t := v.(type) {
		case Event:
			e = t
		case checks.Result:
			e = eventFromResult(t)
		default:
			return nil
		}
		if err := json.NewEncoder(s.writer).Encode(e); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
}

func (s *EmitSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format != "json" {
		return nil
	}
	encoder := json.NewEncoder(s.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.results); err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}
