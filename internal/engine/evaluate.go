package engine

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mdcheck/internal/checks"
	"mdcheck/internal/metrics"
	"mdcheck/internal/model"
)

// Evaluator runs planned checks on one object. It holds no per-object state
// and is shared by all scheduler workers.
type Evaluator struct {
	logger  *zap.Logger
	metrics *metrics.Metrics

	// minSeverity drops issues below it; empty keeps everything.
	minSeverity checks.Severity
	// trace wraps objects in a model.TrackingObject and records the
	// features each check read on its result.
	trace bool
}

func NewEvaluator(logger *zap.Logger, m *metrics.Metrics, minSeverity checks.Severity, trace bool) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{logger: logger, metrics: m, minSeverity: minSeverity, trace: trace}
}

// EvaluateObject runs every check planned for op.Object, in plan order.
func (e *Evaluator) EvaluateObject(op *ObjectPlan) ObjectResult {
	res := ObjectResult{Plan: op, Results: make([]checks.Result, 0, len(op.Checks))}
	for _, cc := range op.Checks {
		r, defect := e.evaluate(op.Object, cc)
		res.Results = append(res.Results, r)
		if defect != nil {
			res.Defects = append(res.Defects, defect)
		}
	}
	e.metrics.ObjectValidated()
	return res
}

func (e *Evaluator) evaluate(obj model.Object, cc ConfiguredCheck) (checks.Result, *DefectError) {
	id := cc.Check.ID()

	// Exclusions match the FQN only, so an excluded object sees no feature
	// reads.
	if w, ok := cc.Check.(*checks.ExcludeWrapper); ok {
		if excluded, by := w.Excluded(obj, cc.Params); excluded {
			r := checks.SkippedResult(obj, id, fmt.Sprintf("excluded by %s", by))
			e.metrics.ObserveInvocation(r, 0)
			return r, nil
		}
	}

	var target model.Object = obj
	var tracked *model.TrackingObject
	if e.trace {
		tracked = model.NewTrackingObject(obj)
		target = tracked
	}

	collector := checks.NewCollector(cc.Check, cc.Severity)
	start := time.Now()
	defect := invoke(cc.Check, target, collector, cc.Params)
	elapsed := time.Since(start)

	var r checks.Result
	if defect != nil {
		r = checks.ErrorResult(obj, id, defect.message())
		fields := []zap.Field{
			zap.String("check", id),
			zap.String("object", obj.FQN()),
			zap.Error(defect.Err),
		}
		if defect.Stack != nil {
			fields = append(fields, zap.ByteString("stack", defect.Stack))
		}
		e.logger.Error("check defect", fields...)
	} else {
		r = checks.IssuesResult(obj, id, e.filterIssues(collector.Issues()))
	}

	if tracked != nil {
		r.Accessed = tracked.AccessedFeatures()
		e.logger.Debug("check evaluated",
			zap.String("check", id),
			zap.String("object", obj.FQN()),
			zap.String("status", string(r.Status)),
			zap.String("read", joinFeatures(r.Accessed)),
			zap.Duration("took", elapsed),
		)
	}

	e.metrics.ObserveInvocation(r, elapsed)
	return r, defect
}

func (e *Evaluator) filterIssues(issues []checks.Issue) []checks.Issue {
	if e.minSeverity == "" {
		return issues
	}
	kept := issues[:0]
	for _, is := range issues {
		if is.Severity.AtLeast(e.minSeverity) {
			kept = append(kept, is)
		}
	}
	return kept
}

func joinFeatures(fs []model.Feature) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}
