package checks

import (
	"sync"

	"mdcheck/internal/model"
)

// ResultAcceptor receives the issues reported by one check invocation.
// Ordering of issues within an invocation is not significant.
type ResultAcceptor interface {
	AddIssue(target model.Object, feature model.Feature, message string)
}

// Issue is one reported violation. CheckID, Severity and Type are stamped by
// the engine, not by the check.
type Issue struct {
	CheckID  string        `json:"check_id"`
	Object   string        `json:"object"`
	Kind     model.Kind    `json:"kind"`
	Feature  model.Feature `json:"feature,omitempty"`
	Message  string        `json:"message"`
	Severity Severity      `json:"severity"`
	Type     IssueType     `json:"type"`
}

// Collector is a ResultAcceptor that keeps issues in memory, stamping each
// with the check identity. It is safe for concurrent use.
type Collector struct {
	checkID  string
	severity Severity
	typ      IssueType

	mu     sync.Mutex
	issues []Issue
}

// NewCollector returns a Collector stamping issues with c's identity and the
// given severity.
func NewCollector(c Check, severity Severity) *Collector {
	if severity == "" {
		severity = c.Severity()
	}
	return &Collector{checkID: c.ID(), severity: severity, typ: c.Type()}
}

func (c *Collector) AddIssue(target model.Object, feature model.Feature, message string) {
	issue := Issue{
		CheckID:  c.checkID,
		Feature:  feature,
		Message:  message,
		Severity: c.severity,
		Type:     c.typ,
	}
	if target != nil {
		issue.Object = target.FQN()
		issue.Kind = target.Kind()
	}
	c.mu.Lock()
	c.issues = append(c.issues, issue)
	c.mu.Unlock()
}

// Issues returns a copy of the collected issues.
func (c *Collector) Issues() []Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Issue(nil), c.issues...)
}

type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusSkipped Status = "SKIPPED"
	StatusError   Status = "ERROR"
)

// Result is the outcome of one check on one object.
type Result struct {
	CheckID string  `json:"check_id"`
	Object  string  `json:"object"`
	Status  Status  `json:"status"`
	Message string  `json:"message,omitempty"`
	Issues  []Issue `json:"issues,omitempty"`
	// Accessed lists the features the check read, when tracing is enabled.
	Accessed []model.Feature `json:"accessed,omitempty"`
}

func NewResult(obj model.Object, checkID string, status Status, message string) Result {
	res := Result{
		Status:  status,
		CheckID: checkID,
	}
	if obj != nil {
		res.Object = obj.FQN()
	}
	if message != "" {
		res.Message = message
	}
	return res
}

// IssuesResult is a PASS result when issues is empty and a FAIL result
// otherwise.
func IssuesResult(obj model.Object, checkID string, issues []Issue) Result {
	if len(issues) == 0 {
		return NewResult(obj, checkID, StatusPass, "")
	}
	res := NewResult(obj, checkID, StatusFail, "")
	res.Issues = issues
	return res
}

func SkippedResult(obj model.Object, checkID string, message string) Result {
	return NewResult(obj, checkID, StatusSkipped, message)
}

func ErrorResult(obj model.Object, checkID string, message string) Result {
	return NewResult(obj, checkID, StatusError, message)
}
