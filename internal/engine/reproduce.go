package engine

import (
	"fmt"
	"strings"

	"mdcheck/internal/config"
	"mdcheck/internal/flags"
)

// buildReproduceCommand renders a shell command that re-runs the same
// validation pass. Output destinations are left out on purpose so running it
// does not overwrite the report it was copied from.
func buildReproduceCommand(cfg *config.Config) string {
	def := config.New()
	args := []string{"mdcheck", "check"}

	add := func(flag, value string) {
		args = append(args, "--"+flag, shellQuote(value))
	}
	addList := func(flag string, values []string) {
		if len(values) > 0 {
			add(flag, strings.Join(values, ","))
		}
	}

	add(flags.FlagProject, cfg.Project.Root)
	addList(flags.FlagFiles, cfg.Project.Files)
	addList(flags.FlagSkip, cfg.Project.Skip)
	addList(flags.FlagInclude, cfg.Project.Include)
	addList(flags.FlagExclude, cfg.Project.Exclude)
	addList(flags.FlagKinds, cfg.Project.Kinds)
	if cfg.Project.Settings != "" {
		add(flags.FlagSettings, cfg.Project.Settings)
	}

	if cfg.Checks.Selector != "" {
		add(flags.FlagChecks, cfg.Checks.Selector)
	}
	// One --set per entry: list values cannot be re-joined with commas.
	for _, s := range cfg.Checks.Set {
		add(flags.FlagSet, s)
	}
	if cfg.Checks.MinSeverity != "" {
		add(flags.FlagMinSeverity, cfg.Checks.MinSeverity)
	}
	if cfg.Checks.Lang != def.Checks.Lang {
		add(flags.FlagLang, cfg.Checks.Lang)
	}
	if cfg.Checks.Messages != "" {
		add(flags.FlagMessages, cfg.Checks.Messages)
	}
	if cfg.Checks.Trace {
		args = append(args, "--"+flags.FlagTrace)
	}

	if cfg.Runtime.Concurrency != def.Runtime.Concurrency {
		add(flags.FlagConcurrency, fmt.Sprint(cfg.Runtime.Concurrency))
	}
	if cfg.Runtime.Timeout != def.Runtime.Timeout {
		add(flags.FlagTimeout, cfg.Runtime.Timeout.String())
	}

	return strings.Join(args, " ")
}

// shellQuote single-quotes s unless it consists only of safe characters.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./,=:@+", r):
		default:
			safe = false
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
