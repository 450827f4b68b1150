package model

import (
	"fmt"
	"sort"
)

// Snapshot is an immutable, read-consistent view of one configuration: the
// configuration object itself plus every top-level metadata object.
type Snapshot struct {
	configuration *Node
	objects       []*Node
	byFQN         map[string]*Node
}

// NewSnapshot builds a snapshot from top-level nodes. At most one node may be
// of kind Configuration. Nodes are linked to the configuration and sorted by
// FQN; duplicate FQNs and nested kinds at the top level are rejected.
func NewSnapshot(nodes ...*Node) (*Snapshot, error) {
	s := &Snapshot{byFQN: make(map[string]*Node, len(nodes))}

	for _, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("nil object")
		}
		if !n.kind.IsTopLevel() {
			return nil, fmt.Errorf("object %s: kind %s cannot appear at the top level", n.FQN(), n.kind)
		}
		if n.parent != nil {
			return nil, fmt.Errorf("object %s is already nested", n.FQN())
		}
		if n.name == "" {
			return nil, fmt.Errorf("object of kind %s has no name", n.kind)
		}
		fqn := n.FQN()
		if _, exists := s.byFQN[fqn]; exists {
			return nil, fmt.Errorf("duplicate object %s", fqn)
		}
		if n.kind == KindConfiguration {
			if s.configuration != nil {
				return nil, fmt.Errorf("more than one configuration object: %s and %s", s.configuration.FQN(), fqn)
			}
			s.configuration = n
		}
		s.byFQN[fqn] = n
		s.objects = append(s.objects, n)
	}

	for _, n := range s.objects {
		if n.kind != KindConfiguration {
			n.config = s.configuration
		}
	}

	sort.Slice(s.objects, func(i, j int) bool { return s.objects[i].FQN() < s.objects[j].FQN() })
	return s, nil
}

// MustSnapshot is like NewSnapshot but panics on error. Intended for tests.
func MustSnapshot(nodes ...*Node) *Snapshot {
	s, err := NewSnapshot(nodes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Configuration returns the configuration object, or nil.
func (s *Snapshot) Configuration() Object {
	if s == nil || s.configuration == nil {
		return nil
	}
	return s.configuration
}

// Objects returns all top-level objects (configuration included), sorted by FQN.
func (s *Snapshot) Objects() []Object {
	if s == nil {
		return nil
	}
	out := make([]Object, 0, len(s.objects))
	for _, n := range s.objects {
		out = append(out, n)
	}
	return out
}

// Lookup returns the top-level object with the given FQN.
func (s *Snapshot) Lookup(fqn string) (Object, bool) {
	if s == nil {
		return nil, false
	}
	n, ok := s.byFQN[fqn]
	if !ok {
		return nil, false
	}
	return n, true
}

// Len returns the number of top-level objects.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.objects)
}
