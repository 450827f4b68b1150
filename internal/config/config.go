package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"mdcheck/internal/checks"
	"mdcheck/internal/logger"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect a
	// validation pass, keep these in sync:
	// - CLI flags in internal/cli/check.go
	// - report reproduce command in internal/engine/reproduce.go:buildReproduceCommand
	Project Project
	Checks  Checks
	Output  Output
	Runtime Runtime
}

type Project struct {
	// Root is the project directory holding the YAML object files (see --project).
	Root string

	// Files selects project files by doublestar pattern relative to Root (see --files).
	// Empty means every *.yaml and *.yml file.
	Files []string

	// Skip drops project files by doublestar pattern relative to Root (see --skip).
	Skip []string

	// Include keeps only objects whose FQN matches one of these doublestar
	// patterns (see --include). Matching is case-insensitive.
	Include []string

	// Exclude drops objects whose FQN matches one of these patterns (see --exclude).
	Exclude []string

	// Kinds keeps only top-level objects of these kinds (see --kinds).
	Kinds []string

	// Settings is the project settings file (see --settings). Empty means
	// Root/.mdcheck.yaml when it exists.
	Settings string
}

type Checks struct {
	// Selector selects which checks to run.
	// Empty means all checks; otherwise a comma-separated list of check IDs (see --checks).
	Selector string

	// Set provides per-check option overrides from the CLI.
	// Entries are of the form checkID.option=value (repeatable; comma-separated accepted; see --set).
	// They win over the settings file.
	Set []string

	// MinSeverity drops issues below this severity from the results (see --min-severity).
	MinSeverity string

	// Lang selects the message catalog (see --lang).
	Lang string

	// Messages is an optional YAML file overriding catalog texts (see --messages).
	Messages string

	// Trace records the features each check reads and attaches them to results (see --trace).
	Trace bool
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// ConsoleFilterStatus filters console output by result status (see --console-filter-status).
	// Allowed values: PASS, FAIL, SKIPPED, ERROR.
	ConsoleFilterStatus []string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson, sarif. If empty, it is inferred from the --out file extension.
	OutFormat string

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool

	// MetricsOut writes pass metrics in the Prometheus text format to this path (see --metrics-out).
	MetricsOut string
}

type Runtime struct {
	// Concurrency bounds the number of objects validated at once (see --concurrency).
	// Must be >= 1.
	Concurrency int

	// Timeout bounds one validation pass (see --timeout). Must be > 0.
	Timeout time.Duration

	// Watch re-runs the pass whenever project files change (see --watch).
	Watch bool

	// LogLevel and LogFormat configure the stderr logger (see --log-level, --log-format).
	LogLevel  string
	LogFormat string
}

var statuses = map[string]bool{
	string(checks.StatusPass):    true,
	string(checks.StatusFail):    true,
	string(checks.StatusSkipped): true,
	string(checks.StatusError):   true,
}

func New() *Config {
	return &Config{
		Project: Project{
			Root: ".",
		},
		Checks: Checks{
			Lang: messages.DefaultLanguage,
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: runtime.GOMAXPROCS(0),
			Timeout:     10 * time.Minute,
			LogLevel:    "info",
			LogFormat:   "console",
		},
	}
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Project.Files = splitCommaList(c.Project.Files)
	c.Project.Skip = splitCommaList(c.Project.Skip)
	c.Project.Include = splitCommaList(c.Project.Include)
	c.Project.Exclude = splitCommaList(c.Project.Exclude)
	c.Project.Kinds = splitCommaList(c.Project.Kinds)
	c.Checks.Set = splitCommaList(c.Checks.Set)
	c.Output.ConsoleFilterStatus = splitCommaList(c.Output.ConsoleFilterStatus)
	c.Output.Emit = splitCommaList(c.Output.Emit)

	// Project validation
	c.Project.Root = strings.TrimSpace(c.Project.Root)
	if c.Project.Root == "" {
		return errors.New("--project must not be empty")
	}
	for _, group := range []struct {
		flag     string
		patterns []string
	}{
		{"--files", c.Project.Files},
		{"--skip", c.Project.Skip},
		{"--include", c.Project.Include},
		{"--exclude", c.Project.Exclude},
	} {
		for _, p := range group.patterns {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("invalid %s pattern %q", group.flag, p)
			}
		}
	}
	for i, raw := range c.Project.Kinds {
		k, err := model.ParseKind(raw)
		if err != nil {
			return fmt.Errorf("invalid --kinds value: %w", err)
		}
		if !k.IsTopLevel() {
			return fmt.Errorf("invalid --kinds value: %s is not a top-level kind", k)
		}
		c.Project.Kinds[i] = string(k)
	}

	// Checks validation
	if c.Checks.MinSeverity != "" {
		sev, err := checks.ParseSeverity(c.Checks.MinSeverity)
		if err != nil {
			return fmt.Errorf("invalid --min-severity: %w", err)
		}
		c.Checks.MinSeverity = string(sev)
	}
	c.Checks.Lang = normalizeEnumValue(c.Checks.Lang)
	if c.Checks.Lang == "" {
		c.Checks.Lang = messages.DefaultLanguage
	}
	if !contains(messages.Languages(), c.Checks.Lang) {
		return fmt.Errorf("unsupported --lang: %s (must be one of: %s)", c.Checks.Lang, strings.Join(messages.Languages(), ", "))
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: text, json, ndjson")
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}
	for i, st := range c.Output.ConsoleFilterStatus {
		st = strings.ToUpper(strings.TrimSpace(st))
		if !statuses[st] {
			return fmt.Errorf("unsupported --console-filter-status: %s (must be one of: PASS, FAIL, SKIPPED, ERROR)", st)
		}
		c.Output.ConsoleFilterStatus[i] = st
	}

	for i, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", v)
		}
		c.Output.Emit[i] = v
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			case ".sarif":
				c.Output.OutFormat = "sarif"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" && c.Output.OutFormat != "sarif" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	// Runtime validation
	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	c.Runtime.LogLevel = normalizeEnumValue(c.Runtime.LogLevel)
	if _, err := logger.ParseLevel(c.Runtime.LogLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	c.Runtime.LogFormat = normalizeEnumValue(c.Runtime.LogFormat)
	if c.Runtime.LogFormat != "console" && c.Runtime.LogFormat != "json" {
		return fmt.Errorf("unsupported --log-format: %s (must be one of: console, json)", c.Runtime.LogFormat)
	}

	// Option syntax validation (check.option=value)
	if len(c.Checks.Set) > 0 {
		if _, err := ParseCheckOptionAssignments(c.Checks.Set); err != nil {
			return err
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// ParseCheckOptionAssignments parses values of the form "checkID.option=value".
//
// Notes:
//   - Entries may be provided via repeated flags and/or comma-delimited lists.
//   - The option part may itself contain dots ("check.exclude.patterns=...").
//   - This validates syntax only (no validation of check IDs or option names).
//   - Empty values are allowed ("check.option=").
//
// List-valued options cannot carry commas through --set; use the settings file.
func ParseCheckOptionAssignments(values []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, raw := range splitCommaList(values) {
		left, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected check.option=value", raw)
		}
		value = strings.TrimSpace(value)
		checkID, opt, ok := strings.Cut(strings.TrimSpace(left), ".")
		if !ok {
			return nil, fmt.Errorf("invalid --set entry %q: expected check.option=value", raw)
		}
		checkID = strings.TrimSpace(checkID)
		opt = strings.TrimSpace(opt)
		if checkID == "" || opt == "" {
			return nil, fmt.Errorf("invalid --set entry %q: expected non-empty check and option", raw)
		}
		if _, ok := out[checkID]; !ok {
			out[checkID] = make(map[string]string)
		}
		out[checkID][opt] = value
	}
	return out, nil
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
