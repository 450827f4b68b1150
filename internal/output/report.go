package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"mdcheck/internal/checks"
)

type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	results      []checks.Result
	objects      map[string]struct{}
	sources      map[string]string
	runID        string
	command      string
	exitCode     int
	haveExitCode bool
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path:    path,
		file:    f,
		objects: make(map[string]struct{}),
		sources: make(map[string]string),
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case checks.Result:
		s.results = append(s.results, t)
		if t.Object != "" {
			s.objects[t.Object] = struct{}{}
		}
	case Event:
		switch t.Type {
		case EventRunStarted:
			s.runID = t.RunID
			s.command = t.Command
		case EventObjectStarted:
			if t.Object != "" {
				s.objects[t.Object] = struct{}{}
			}
			if t.Source != "" {
				s.sources[t.Object] = t.Source
			}
		case EventRunFinished:
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeErr := func(err error) error {
		_ = s.file.Close()
		return err
	}

	// Deterministic object list (collected from both lifecycle events and results via Write()).
	objects := make([]string, 0, len(s.objects))
	for o := range s.objects {
		objects = append(objects, o)
	}
	sort.Strings(objects)

	perObject := make(map[string]*objectStats, len(objects))
	for _, o := range objects {
		perObject[o] = &objectStats{Object: o}
	}

	uniqueChecks := make(map[string]struct{})
	var total objectStats
	var skips, errs []checks.Result
	for _, r := range s.results {
		if r.CheckID != "" {
			uniqueChecks[r.CheckID] = struct{}{}
		}
		if st, ok := perObject[r.Object]; ok {
			st.add(r)
		}
		total.add(r)
		switch r.Status {
		case checks.StatusSkipped:
			skips = append(skips, r)
		case checks.StatusError:
			errs = append(errs, r)
		}
	}

	var b strings.Builder
	b.WriteString("# mdcheck Validation Report\n\n")
	if s.runID != "" {
		fmt.Fprintf(&b, "Run `%s`", s.runID)
		if s.haveExitCode {
			fmt.Fprintf(&b, ", exit code %d", s.exitCode)
		}
		b.WriteString(".\n\n")
	}

	// --- Summary ---
	b.WriteString("## Summary\n\n")
	b.WriteString("| Objects | Checks | PASS | FAIL | SKIPPED | ERROR | Issues |\n")
	b.WriteString("| ---: | ---: | ---: | ---: | ---: | ---: | ---: |\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d | %d |\n\n",
		len(objects), len(uniqueChecks), total.Pass, total.Fail, total.Skipped, total.Error, len(total.Issues))

	counts := severityCounts(s.results)
	if len(total.Issues) > 0 {
		b.WriteString("| Severity | Issues |\n")
		b.WriteString("| --- | ---: |\n")
		for _, sev := range severityOrder {
			if counts[sev] > 0 {
				fmt.Fprintf(&b, "| %s | %d |\n", sev, counts[sev])
			}
		}
		b.WriteString("\n")
	}

	// --- Issues by check ---
	b.WriteString("## Issues by check\n\n")
	byCheck := computeCheckStats(s.results)
	if len(byCheck) == 0 {
		b.WriteString("No issues.\n\n")
	} else {
		b.WriteString("| Check | Issues | Objects |\n")
		b.WriteString("| --- | ---: | --- |\n")
		for _, cs := range byCheck {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", cs.ID, cs.Issues, escapeCell(formatList(cs.Objects, 3)))
		}
		b.WriteString("\n")
	}

	// --- Most affected objects ---
	b.WriteString("## Most affected objects\n\n")
	worst := mostAffected(perObject, 10)
	if len(worst) == 0 {
		b.WriteString("No affected objects.\n\n")
	} else {
		b.WriteString("| Object | Issues | Worst severity | ERROR | Source |\n")
		b.WriteString("| --- | ---: | --- | ---: | --- |\n")
		for _, o := range worst {
			worstSev := string(o.Worst)
			if worstSev == "" {
				worstSev = "-"
			}
			src := s.sources[o.Object]
			if src == "" {
				src = "-"
			}
			fmt.Fprintf(&b, "| %s | %d | %s | %d | %s |\n", o.Object, len(o.Issues), worstSev, o.Error, escapeCell(src))
		}
		b.WriteString("\n")
	}

	// --- Issues ---
	b.WriteString("## Issues\n\n")
	if len(total.Issues) == 0 {
		b.WriteString("- None\n\n")
	} else {
		for _, o := range objects {
			st := perObject[o]
			if len(st.Issues) == 0 {
				continue
			}
			issues := append([]checks.Issue(nil), st.Issues...)
			sort.SliceStable(issues, func(i, j int) bool {
				si, sj := issues[i].Severity, issues[j].Severity
				if si.AtLeast(sj) != sj.AtLeast(si) {
					return si.AtLeast(sj)
				}
				if issues[i].CheckID != issues[j].CheckID {
					return issues[i].CheckID < issues[j].CheckID
				}
				return issues[i].Object < issues[j].Object
			})

			fmt.Fprintf(&b, "### %s\n", o)
			if src := s.sources[o]; src != "" {
				fmt.Fprintf(&b, "_%s_\n", src)
			}
			for _, is := range issues {
				fmt.Fprintf(&b, "- **%s** `%s`", is.Severity, is.CheckID)
				if is.Object != o {
					fmt.Fprintf(&b, " on %s", strings.TrimPrefix(is.Object, o+"."))
				}
				if is.Feature != "" {
					fmt.Fprintf(&b, " (%s)", is.Feature)
				}
				fmt.Fprintf(&b, ": %s\n", is.Message)
			}
			b.WriteString("\n")
		}
	}

	// --- Skipped ---
	b.WriteString("## Skipped\n\n")
	writeGrouped(&b, skips)

	// --- Errors ---
	b.WriteString("## Errors\n\n")
	writeGrouped(&b, errs)

	// --- Checks Evaluated ---
	b.WriteString("## Checks evaluated\n")
	ids := make([]string, 0, len(uniqueChecks))
	for id := range uniqueChecks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		b.WriteString("- None\n\n")
	} else {
		for _, id := range ids {
			fmt.Fprintf(&b, "- %s\n", id)
		}
		b.WriteString("\n")
	}

	if s.command != "" {
		b.WriteString("## Reproduce\n\n")
		fmt.Fprintf(&b, "```sh\n%s\n```\n", s.command)
	}

	if _, err := s.file.WriteString(b.String()); err != nil {
		return writeErr(err)
	}
	return s.file.Close()
}

// writeGrouped lists results grouped by check ID, with the affected objects.
func writeGrouped(b *strings.Builder, results []checks.Result) {
	if len(results) == 0 {
		b.WriteString("- None\n\n")
		return
	}
	byCheck := make(map[string][]string)
	messages := make(map[string]string)
	for _, r := range results {
		byCheck[r.CheckID] = append(byCheck[r.CheckID], r.Object)
		if _, ok := messages[r.CheckID]; !ok && r.Message != "" {
			messages[r.CheckID] = r.Message
		}
	}
	ids := make([]string, 0, len(byCheck))
	for id := range byCheck {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		affected := byCheck[id]
		sort.Strings(affected)
		fmt.Fprintf(b, "- **%s**: %s\n", id, formatList(affected, 5))
		if msg := messages[id]; msg != "" {
			fmt.Fprintf(b, "  - first message: %s\n", msg)
		}
	}
	b.WriteString("\n")
}
