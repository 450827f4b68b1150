package output

import (
	"fmt"
	"sort"
	"strings"

	"mdcheck/internal/checks"
)

var severityOrder = []checks.Severity{
	checks.SeverityBlocker,
	checks.SeverityCritical,
	checks.SeverityMajor,
	checks.SeverityMinor,
	checks.SeverityTrivial,
}

type objectStats struct {
	Object  string
	Pass    int
	Fail    int
	Skipped int
	Error   int
	Issues  []checks.Issue
	// Worst is the highest severity among Issues.
	Worst checks.Severity
}

func (o *objectStats) add(r checks.Result) {
	switch r.Status {
	case checks.StatusPass:
		o.Pass++
	case checks.StatusFail:
		o.Fail++
	case checks.StatusSkipped:
		o.Skipped++
	case checks.StatusError:
		o.Error++
	}
	for _, is := range r.Issues {
		o.Issues = append(o.Issues, is)
		if o.Worst == "" || is.Severity.AtLeast(o.Worst) {
			o.Worst = is.Severity
		}
	}
}

type checkStats struct {
	ID      string
	Issues  int
	Objects []string
}

func computeCheckStats(results []checks.Result) []*checkStats {
	byID := make(map[string]*checkStats)
	seen := make(map[string]map[string]bool)
	for _, r := range results {
		if len(r.Issues) == 0 {
			continue
		}
		cs, ok := byID[r.CheckID]
		if !ok {
			cs = &checkStats{ID: r.CheckID}
			byID[r.CheckID] = cs
			seen[r.CheckID] = make(map[string]bool)
		}
		cs.Issues += len(r.Issues)
		if !seen[r.CheckID][r.Object] {
			seen[r.CheckID][r.Object] = true
			cs.Objects = append(cs.Objects, r.Object)
		}
	}

	out := make([]*checkStats, 0, len(byID))
	for _, cs := range byID {
		sort.Strings(cs.Objects)
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Issues != out[j].Issues {
			return out[i].Issues > out[j].Issues
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func severityCounts(results []checks.Result) map[checks.Severity]int {
	counts := make(map[checks.Severity]int)
	for _, r := range results {
		for _, is := range r.Issues {
			counts[is.Severity]++
		}
	}
	return counts
}

// mostAffected ranks objects by issue count, then worst severity, then name.
func mostAffected(perObject map[string]*objectStats, n int) []*objectStats {
	var out []*objectStats
	for _, o := range perObject {
		if len(o.Issues) > 0 || o.Error > 0 {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Issues) != len(out[j].Issues) {
			return len(out[i].Issues) > len(out[j].Issues)
		}
		if wi, wj := out[i].Worst, out[j].Worst; wi.AtLeast(wj) != wj.AtLeast(wi) {
			return wi.AtLeast(wj)
		}
		return out[i].Object < out[j].Object
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// formatList renders "N objects (a, b, c, +K more)".
func formatList(items []string, max int) string {
	if len(items) == 0 {
		return "0 objects"
	}
	noun := "objects"
	if len(items) == 1 {
		noun = "object"
	}
	if len(items) <= max {
		return fmt.Sprintf("%d %s (%s)", len(items), noun, strings.Join(items, ", "))
	}
	return fmt.Sprintf("%d %s (%s, +%d more)", len(items), noun, strings.Join(items[:max], ", "), len(items)-max)
}

// escapeCell keeps user text from breaking a Markdown table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
