package engine

import (
	"fmt"

	"mdcheck/internal/checks"
	"mdcheck/internal/model"
)

// ConfiguredCheck is a selected check with its effective parameters and
// severity for one run.
type ConfiguredCheck struct {
	Check    checks.Check
	Params   checks.Parameters
	Severity checks.Severity
}

type ValidationPlan struct {
	// ObjectPlans are kept in the order objects were added; the engine adds
	// them sorted by FQN.
	ObjectPlans []*ObjectPlan
	checkIDs    map[string]struct{}
}

type ObjectPlan struct {
	Object model.Object
	// Source is the project file the object was loaded from, if known.
	Source string
	Checks []ConfiguredCheck
}

func NewValidationPlan() *ValidationPlan {
	return &ValidationPlan{checkIDs: make(map[string]struct{})}
}

// AddObject plans every configured check that applies to obj's kind. Objects
// with no applicable checks are still planned, so they appear in the output.
func (p *ValidationPlan) AddObject(obj model.Object, source string, configured []ConfiguredCheck) error {
	if p == nil {
		return fmt.Errorf("validation plan is nil")
	}
	if p.checkIDs == nil {
		return fmt.Errorf("validation plan is not initialized; use NewValidationPlan")
	}
	if obj == nil {
		return fmt.Errorf("object is nil")
	}

	op := &ObjectPlan{Object: obj, Source: source}
	for _, cc := range configured {
		if cc.Check == nil {
			return fmt.Errorf("nil check planned for %s", obj.FQN())
		}
		if !checks.Applies(cc.Check, obj.Kind()) {
			continue
		}
		op.Checks = append(op.Checks, cc)
		p.checkIDs[cc.Check.ID()] = struct{}{}
	}

	p.ObjectPlans = append(p.ObjectPlans, op)
	return nil
}

// Invocations returns the number of planned (object, check) pairs.
func (p *ValidationPlan) Invocations() int {
	n := 0
	for _, op := range p.ObjectPlans {
		n += len(op.Checks)
	}
	return n
}

// CheckCount returns the number of distinct checks planned on at least one
// object.
func (p *ValidationPlan) CheckCount() int {
	return len(p.checkIDs)
}
