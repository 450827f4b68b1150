package engine

import (
	"errors"
	"fmt"
	"sort"

	"mdcheck/internal/checks"
	"mdcheck/internal/config"
)

// ConfigureChecks resolves the checks to run and their parameters.
//
// Precedence, lowest first: option defaults, the settings file, --set. The
// settings file may disable checks and override their severity; disabling
// only applies when no explicit selector is given. Unknown check IDs and
// unknown or malformed options are configuration errors.
//
// Example:
//
//	mdcheck check --set md-object-name-length.maxNameLength=60
func ConfigureChecks(reg *checks.Registry, selector string, settings *config.Settings, set []string) ([]ConfiguredCheck, error) {
	if reg == nil {
		return nil, errors.New("check registry is nil")
	}
	if settings == nil {
		settings = &config.Settings{}
	}

	selected, err := reg.Resolve(selector)
	if err != nil {
		return nil, err
	}

	assignments, err := config.ParseCheckOptionAssignments(set)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for _, id := range settings.CheckIDs() {
		if _, ok := reg.Get(id); !ok {
			unknown = append(unknown, fmt.Sprintf("%q (settings file)", id))
		}
	}
	for id := range assignments {
		if _, ok := reg.Get(id); !ok {
			unknown = append(unknown, fmt.Sprintf("%q (--set)", id))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %v", checks.ErrCheckNotFound, unknown)
	}

	explicit := len(checks.SplitList(selector)) > 0

	var out []ConfiguredCheck
	var errs []error
	for _, c := range selected {
		if !explicit && !settings.Enabled(c.ID()) {
			continue
		}

		overrides := settings.Overrides(c.ID(), assignments[c.ID()])
		params, err := checks.BuildParameters(c.ID(), checks.OptionsOf(c), overrides)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if v, ok := c.(checks.ParameterValidator); ok {
			if err := v.ValidateParameters(params); err != nil {
				errs = append(errs, err)
				continue
			}
		}

		sev := settings.Severity(c.ID())
		if sev == "" {
			sev = c.Severity()
		}
		out = append(out, ConfiguredCheck{Check: c, Params: params, Severity: sev})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("configure checks: %w", errors.Join(errs...))
	}
	return out, nil
}
