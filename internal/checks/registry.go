package checks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrCheckNotFound is returned when a selector names an unregistered check.
var ErrCheckNotFound = errors.New("check not found")

// Registry holds the installed checks. Each program builds its own; there is
// no process-wide instance.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]Check
}

func NewRegistry(cs ...Check) *Registry {
	r := &Registry{checks: make(map[string]Check)}
	for _, c := range cs {
		r.Register(c)
	}
	return r
}

// Register installs c wrapped with object exclusion support. Registering two
// checks with the same ID panics.
func (r *Registry) Register(c Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.checks[c.ID()]; exists {
		panic(fmt.Sprintf("check %s already registered", c.ID()))
	}
	r.checks[c.ID()] = &ExcludeWrapper{wrappedCheck: c}
}

func (r *Registry) Get(id string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.checks[id]
	return c, ok
}

// List returns all checks sorted by ID.
func (r *Registry) List() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *Registry) listLocked() []Check {
	out := make([]Check, 0, len(r.checks))
	for _, c := range r.checks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	return out
}

// Resolve selects checks by a comma-separated list of IDs. An empty selector
// selects every check. Duplicates are collapsed and the result is sorted.
func (r *Registry) Resolve(selector string) ([]Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.TrimSpace(selector) == "" {
		return r.listLocked(), nil
	}

	seen := make(map[string]bool)
	var selected []Check
	var missing []string
	for _, id := range SplitList(selector) {
		if seen[id] {
			continue
		}
		seen[id] = true
		c, ok := r.checks[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		selected = append(selected, c)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrCheckNotFound, strings.Join(missing, ", "))
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].ID() < selected[j].ID()
	})
	return selected, nil
}
