package engine

import "mdcheck/internal/checks"

// ObjectResult is the outcome of running every planned check on one object.
//
// It is emitted by the scheduler and consumed by the engine, which writes
// the results to the output sinks in plan order.
type ObjectResult struct {
	// Index is the position of the object in ValidationPlan.ObjectPlans.
	Index   int
	Plan    *ObjectPlan
	Results []checks.Result
	Defects []*DefectError
}

// IssueCount returns the number of issues across all results.
func (r ObjectResult) IssueCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Issues)
	}
	return n
}
