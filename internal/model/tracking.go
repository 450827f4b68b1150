package model

import (
	"sort"
	"sync"
)

// TrackingObject wraps another Object and records every feature read through
// its accessors.
//
// The engine uses it in debug mode to log what a check looked at; tests use
// it to assert that a check left an object untouched. Children returned by
// Children and Child are not wrapped.
type TrackingObject struct {
	inner Object

	mu       sync.Mutex
	accessed map[Feature]struct{}
}

func NewTrackingObject(inner Object) *TrackingObject {
	return &TrackingObject{
		inner:    inner,
		accessed: make(map[Feature]struct{}),
	}
}

func (t *TrackingObject) record(f Feature) {
	t.mu.Lock()
	t.accessed[f] = struct{}{}
	t.mu.Unlock()
}

func (t *TrackingObject) Kind() Kind     { return t.inner.Kind() }
func (t *TrackingObject) FQN() string    { return t.inner.FQN() }
func (t *TrackingObject) Parent() Object { return t.inner.Parent() }

func (t *TrackingObject) Configuration() Object { return t.inner.Configuration() }

func (t *TrackingObject) Name() string {
	t.record(FeatureName)
	return t.inner.Name()
}

func (t *TrackingObject) Has(f Feature) bool {
	t.record(f)
	return t.inner.Has(f)
}

func (t *TrackingObject) Bool(f Feature) bool {
	t.record(f)
	return t.inner.Bool(f)
}

func (t *TrackingObject) Int(f Feature) int {
	t.record(f)
	return t.inner.Int(f)
}

func (t *TrackingObject) Text(f Feature) string {
	t.record(f)
	return t.inner.Text(f)
}

func (t *TrackingObject) Strings(f Feature) []string {
	t.record(f)
	return t.inner.Strings(f)
}

func (t *TrackingObject) Local(f Feature) LocalString {
	t.record(f)
	return t.inner.Local(f)
}

func (t *TrackingObject) Children(f Feature) []Object {
	t.record(f)
	return t.inner.Children(f)
}

func (t *TrackingObject) Child(f Feature) Object {
	t.record(f)
	return t.inner.Child(f)
}

// AccessedFeatures returns the features read so far, sorted.
func (t *TrackingObject) AccessedFeatures() []Feature {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Feature, 0, len(t.accessed))
	for f := range t.accessed {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
