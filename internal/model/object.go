package model

import (
	"fmt"
	"math"
)

// Object is a read-only view of one metadata object.
//
// Typed accessors return the zero value when a feature is unset. Reading a
// feature through an accessor of the wrong type is a programming defect and
// panics.
type Object interface {
	Kind() Kind
	Name() string
	FQN() string

	// Parent returns the owning object of a nested object, or nil for
	// top-level objects.
	Parent() Object

	// Configuration returns the configuration object the object belongs to,
	// or nil when the snapshot has none.
	Configuration() Object

	Has(f Feature) bool
	Bool(f Feature) bool
	Int(f Feature) int
	Text(f Feature) string
	Strings(f Feature) []string
	Local(f Feature) LocalString
	Children(f Feature) []Object
	Child(f Feature) Object
}

// Node is the in-memory implementation of Object.
//
// A Node is mutable only while it is being built. Once it is part of a
// Snapshot it must not be modified; concurrent readers rely on that.
type Node struct {
	kind   Kind
	name   string
	parent *Node
	config *Node
	values map[Feature]any
}

var _ Object = (*Node)(nil)

// NewObject starts building an object of the given kind.
func NewObject(kind Kind, name string) *Node {
	return &Node{
		kind:   kind,
		name:   name,
		values: make(map[Feature]any),
	}
}

// Set assigns a feature value and returns n for chaining.
// It panics when v does not fit the feature's value type; use SetValue when
// the value comes from untrusted input.
func (n *Node) Set(f Feature, v any) *Node {
	if err := n.SetValue(f, v); err != nil {
		panic(err)
	}
	return n
}

// Add appends children to a children feature and returns n for chaining.
func (n *Node) Add(f Feature, children ...*Node) *Node {
	for _, c := range children {
		if err := n.AddChild(f, c); err != nil {
			panic(err)
		}
	}
	return n
}

// SetValue assigns a feature value, converting common decoded forms
// (YAML/JSON numbers, []any, map[string]any) to the feature's value type.
func (n *Node) SetValue(f Feature, v any) error {
	vt, ok := f.ValueTypeOf()
	if !ok {
		return fmt.Errorf("unknown feature %q", f)
	}
	if f == FeatureName {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("feature %q: expected string, got %T", f, v)
		}
		n.name = s
		return nil
	}

	switch vt {
	case ValueBool:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("feature %q: expected bool, got %T", f, v)
		}
		n.values[f] = b
	case ValueInt:
		i, err := toInt(v)
		if err != nil {
			return fmt.Errorf("feature %q: %w", f, err)
		}
		n.values[f] = i
	case ValueString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("feature %q: expected string, got %T", f, v)
		}
		n.values[f] = s
	case ValueStrings:
		list, err := toStrings(v)
		if err != nil {
			return fmt.Errorf("feature %q: %w", f, err)
		}
		n.values[f] = list
	case ValueLocal:
		ls, err := toLocal(v)
		if err != nil {
			return fmt.Errorf("feature %q: %w", f, err)
		}
		n.values[f] = ls
	case ValueChildren, ValueChild:
		c, ok := v.(*Node)
		if !ok {
			return fmt.Errorf("feature %q: expected *Node, got %T", f, v)
		}
		return n.AddChild(f, c)
	}
	return nil
}

// AddChild attaches c under a child or children feature.
func (n *Node) AddChild(f Feature, c *Node) error {
	if c == nil {
		return fmt.Errorf("feature %q: nil child", f)
	}
	vt, ok := f.ValueTypeOf()
	if !ok {
		return fmt.Errorf("unknown feature %q", f)
	}
	want, _ := f.ChildKind()
	if c.kind != want {
		return fmt.Errorf("feature %q: expected child of kind %s, got %s", f, want, c.kind)
	}

	c.parent = n
	switch vt {
	case ValueChildren:
		list, _ := n.values[f].([]*Node)
		n.values[f] = append(list, c)
	case ValueChild:
		if _, exists := n.values[f]; exists {
			return fmt.Errorf("feature %q: already set", f)
		}
		n.values[f] = c
	default:
		return fmt.Errorf("feature %q holds %s, not objects", f, vt)
	}
	return nil
}

func (n *Node) Kind() Kind   { return n.kind }
func (n *Node) Name() string { return n.name }

func (n *Node) FQN() string {
	if n.parent == nil {
		return string(n.kind) + "." + n.name
	}
	if n.name == "" {
		return n.parent.FQN() + "." + string(n.kind)
	}
	return n.parent.FQN() + "." + string(n.kind) + "." + n.name
}

func (n *Node) Parent() Object {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Configuration() Object {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	if root.kind == KindConfiguration {
		return root
	}
	if root.config == nil {
		return nil
	}
	return root.config
}

func (n *Node) Has(f Feature) bool {
	if f == FeatureName {
		return n.name != ""
	}
	_, ok := n.values[f]
	return ok
}

func (n *Node) Bool(f Feature) bool {
	n.mustBe(f, ValueBool)
	b, _ := n.values[f].(bool)
	return b
}

func (n *Node) Int(f Feature) int {
	n.mustBe(f, ValueInt)
	i, _ := n.values[f].(int)
	return i
}

func (n *Node) Text(f Feature) string {
	n.mustBe(f, ValueString)
	if f == FeatureName {
		return n.name
	}
	s, _ := n.values[f].(string)
	return s
}

func (n *Node) Strings(f Feature) []string {
	n.mustBe(f, ValueStrings)
	list, _ := n.values[f].([]string)
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func (n *Node) Local(f Feature) LocalString {
	n.mustBe(f, ValueLocal)
	ls, _ := n.values[f].(LocalString)
	if ls == nil {
		return nil
	}
	out := make(LocalString, len(ls))
	for k, v := range ls {
		out[k] = v
	}
	return out
}

func (n *Node) Children(f Feature) []Object {
	n.mustBe(f, ValueChildren)
	list, _ := n.values[f].([]*Node)
	out := make([]Object, 0, len(list))
	for _, c := range list {
		out = append(out, c)
	}
	return out
}

func (n *Node) Child(f Feature) Object {
	n.mustBe(f, ValueChild)
	c, _ := n.values[f].(*Node)
	if c == nil {
		return nil
	}
	return c
}

func (n *Node) mustBe(f Feature, want ValueType) {
	got, ok := f.ValueTypeOf()
	if !ok {
		panic(fmt.Sprintf("model: unknown feature %q read on %s", f, n.FQN()))
	}
	if got != want {
		panic(fmt.Sprintf("model: feature %q is %s, read as %s on %s", f, got, want, n.FQN()))
	}
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case uint64:
		if t > math.MaxInt32 {
			return 0, fmt.Errorf("value %d out of range", t)
		}
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("expected integer, got %v", t)
		}
		return int(t), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func toStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected list of strings, got item %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of strings, got %T", v)
	}
}

func toLocal(v any) (LocalString, error) {
	switch t := v.(type) {
	case LocalString:
		out := make(LocalString, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out, nil
	case map[string]string:
		out := make(LocalString, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out, nil
	case map[string]any:
		out := make(LocalString, len(t))
		for k, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("language %q: expected string, got %T", k, item)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map of language to text, got %T", v)
	}
}
