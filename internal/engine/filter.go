package engine

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"mdcheck/internal/config"
	"mdcheck/internal/model"
)

// FilterObjects keeps the objects selected by --include, --exclude and
// --kinds. FQN patterns match case-insensitively. Input order is preserved.
func FilterObjects(objects []model.Object, cfg *config.Config) []model.Object {
	if cfg == nil {
		panic("engine.FilterObjects: cfg must not be nil")
	}

	kinds := make(map[model.Kind]bool, len(cfg.Project.Kinds))
	for _, k := range cfg.Project.Kinds {
		kinds[model.Kind(k)] = true
	}

	var filtered []model.Object
	for _, obj := range objects {
		if obj == nil {
			continue
		}

		// Kinds
		if len(kinds) > 0 && !kinds[obj.Kind()] {
			continue
		}

		fqn := obj.FQN()

		// If Include is set, must match at least one
		if len(cfg.Project.Include) > 0 && !matchesAnyPattern(cfg.Project.Include, fqn) {
			continue
		}

		// If Exclude is set, must not match any
		if len(cfg.Project.Exclude) > 0 && matchesAnyPattern(cfg.Project.Exclude, fqn) {
			continue
		}

		filtered = append(filtered, obj)
	}
	return filtered
}

func matchesAnyPattern(patterns []string, fqn string) bool {
	for _, p := range patterns {
		if matchPattern(p, fqn) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, fqn string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}
	matched, _ := doublestar.Match(strings.ToLower(pattern), strings.ToLower(fqn))
	return matched
}
