package checks

import (
	"fmt"
	"strings"

	"mdcheck/internal/model"
)

// Check inspects one metadata object and reports convention violations.
//
// Implementations must be stateless and reentrant: the engine invokes the same
// Check concurrently on different objects. A Check never mutates the object
// it reads. Returning an error, or panicking, marks the check as defective for
// that object; it is never treated as "no issues".
type Check interface {
	ID() string
	Title() string
	Description() string

	// Kinds is the closed set of object kinds the check applies to. Objects of
	// any other kind are skipped without calling Check.
	Kinds() []model.Kind

	Severity() Severity
	Type() IssueType

	// Check evaluates obj and reports every violation through acceptor.
	Check(obj model.Object, acceptor ResultAcceptor, params Parameters) error
}

// Option describes one tunable parameter of a check.
type Option struct {
	Name        string
	Type        OptionType
	Description string
	Default     string
}

// ConfigurableCheck is a Check with tunable parameters.
type ConfigurableCheck interface {
	Check
	Options() []Option
}

// Applies reports whether c applies to objects of kind k.
func Applies(c Check, k model.Kind) bool {
	for _, ck := range c.Kinds() {
		if ck == k {
			return true
		}
	}
	return false
}

// OptionsOf returns the option schema of c, or nil when c is not configurable.
func OptionsOf(c Check) []Option {
	if cc, ok := c.(ConfigurableCheck); ok {
		return cc.Options()
	}
	return nil
}

// Severity is the default importance of issues a check reports.
type Severity string

const (
	SeverityTrivial  Severity = "trivial"
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
	SeverityBlocker  Severity = "blocker"
)

var severityRank = map[Severity]int{
	SeverityTrivial:  0,
	SeverityMinor:    1,
	SeverityMajor:    2,
	SeverityCritical: 3,
	SeverityBlocker:  4,
}

// ParseSeverity parses a case-insensitive severity name.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := severityRank[sev]; !ok {
		return "", fmt.Errorf("invalid severity %q (valid: trivial, minor, major, critical, blocker)", s)
	}
	return sev, nil
}

// AtLeast reports whether s is as important as other or more.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// IsError reports whether hosts should surface s as an error rather than a
// warning.
func (s Severity) IsError() bool {
	return s.AtLeast(SeverityCritical)
}

// IssueType is the topic of a check.
type IssueType string

const (
	TypeCodeStyle   IssueType = "code-style"
	TypeError       IssueType = "error"
	TypeWarning     IssueType = "warning"
	TypePerformance IssueType = "performance"
	TypeSecurity    IssueType = "security"
	TypePortability IssueType = "portability"
	TypeUIStyle     IssueType = "ui-style"
)
