package checks

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"mdcheck/internal/model"
)

const (
	OptionExcludeObjects  = "exclude.objects"
	OptionExcludePatterns = "exclude.patterns"
)

// ParameterValidator is implemented by checks that constrain option values
// beyond their declared type.
type ParameterValidator interface {
	ValidateParameters(p Parameters) error
}

// ExcludeList decides which objects a check must not run on. Objects are
// matched by fully qualified name only, so deciding never reads features.
type ExcludeList struct{}

// Options returns the standard exclusion options.
func (ExcludeList) Options() []Option {
	return []Option{
		{
			Name:        OptionExcludeObjects,
			Type:        OptionList,
			Description: "Comma-separated list of fully qualified object names to skip (e.g. Catalog.Goods).",
		},
		{
			Name:        OptionExcludePatterns,
			Type:        OptionList,
			Description: "Comma-separated list of glob patterns over fully qualified names (e.g. Catalog.Legacy*, CommonModule.*Test*).",
		},
	}
}

// Validate rejects malformed glob patterns.
func (ExcludeList) Validate(p Parameters) error {
	for _, pattern := range p.List(OptionExcludePatterns) {
		if !doublestar.ValidatePattern(strings.ToLower(pattern)) {
			return fmt.Errorf("%w for %q: bad pattern %q", ErrInvalidOption, OptionExcludePatterns, pattern)
		}
	}
	return nil
}

// IsExcluded reports whether obj is excluded and by which option.
func (ExcludeList) IsExcluded(obj model.Object, p Parameters) (bool, string) {
	if obj == nil {
		return false, ""
	}
	fqn := strings.ToLower(obj.FQN())

	for _, name := range p.List(OptionExcludeObjects) {
		if strings.ToLower(name) == fqn {
			return true, OptionExcludeObjects
		}
	}
	for _, pattern := range p.List(OptionExcludePatterns) {
		if matched, _ := doublestar.Match(strings.ToLower(pattern), fqn); matched {
			return true, OptionExcludePatterns
		}
	}
	return false, ""
}

// wrappedCheck names the embedded Check so its Check method is promoted
// instead of being shadowed by a field of the same name.
type wrappedCheck = Check

// ExcludeWrapper adds object exclusion options to a Check.
type ExcludeWrapper struct {
	wrappedCheck
	excludes ExcludeList
}

// Unwrap returns the wrapped check.
func (w *ExcludeWrapper) Unwrap() Check {
	return w.wrappedCheck
}

// Options returns the exclusion options followed by the inner check's own.
func (w *ExcludeWrapper) Options() []Option {
	return append(w.excludes.Options(), OptionsOf(w.wrappedCheck)...)
}

// ValidateParameters validates the exclusion options and, when the inner
// check constrains its options, those too.
func (w *ExcludeWrapper) ValidateParameters(p Parameters) error {
	if err := w.excludes.Validate(p); err != nil {
		return fmt.Errorf("%s: %w", w.ID(), err)
	}
	if v, ok := w.wrappedCheck.(ParameterValidator); ok {
		if err := v.ValidateParameters(p); err != nil {
			return fmt.Errorf("%s: %w", w.ID(), err)
		}
	}
	return nil
}

// Excluded reports whether the engine must skip obj for this check.
func (w *ExcludeWrapper) Excluded(obj model.Object, p Parameters) (bool, string) {
	return w.excludes.IsExcluded(obj, p)
}

// Unwrap strips an ExcludeWrapper, if any.
func Unwrap(c Check) Check {
	if w, ok := c.(*ExcludeWrapper); ok {
		return w.Unwrap()
	}
	return c
}
