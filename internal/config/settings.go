package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"mdcheck/internal/checks"
)

// SettingsFileName is the project settings file looked up in the project root.
const SettingsFileName = ".mdcheck.yaml"

// Settings is the project settings file:
//
//	files:
//	  skip: ["legacy/**"]
//	checks:
//	  md-object-name-length:
//	    severity: major
//	    options:
//	      maxNameLength: 60
//	    exclude: ["Catalog.Legacy*"]
//	  common-module-type:
//	    enabled: false
type Settings struct {
	Files  FileSettings             `yaml:"files"`
	Checks map[string]CheckSettings `yaml:"checks"`
}

type FileSettings struct {
	Include []string `yaml:"include"`
	Skip    []string `yaml:"skip"`
}

type CheckSettings struct {
	Enabled  *bool                  `yaml:"enabled"`
	Severity string                 `yaml:"severity"`
	Options  map[string]OptionValue `yaml:"options"`
	// Exclude adds FQN glob patterns to the check's exclude.patterns option.
	Exclude []string `yaml:"exclude"`
}

// OptionValue is an option value as written in the settings file. Scalars
// keep their literal text and sequences are joined with commas, matching the
// list option syntax.
type OptionValue string

func (v *OptionValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = OptionValue(node.Value)
		return nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: list option values must be scalars", item.Line)
			}
			parts = append(parts, item.Value)
		}
		*v = OptionValue(strings.Join(parts, ","))
		return nil
	default:
		return fmt.Errorf("line %d: option value must be a scalar or a list", node.Line)
	}
}

// FindSettings returns the settings file to use: explicit when set, otherwise
// root/.mdcheck.yaml when it exists, otherwise "".
func FindSettings(root, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("settings file: %w", err)
		}
		return explicit, nil
	}
	path := filepath.Join(root, SettingsFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("settings file: %w", err)
	}
	return path, nil
}

// LoadSettings reads a settings file. An empty path yields empty settings.
// Unknown keys are errors.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	for id, cs := range s.Checks {
		if cs.Severity == "" {
			continue
		}
		sev, err := checks.ParseSeverity(cs.Severity)
		if err != nil {
			return nil, fmt.Errorf("settings %s: check %s: %w", path, id, err)
		}
		cs.Severity = string(sev)
		s.Checks[id] = cs
	}
	return s, nil
}

// CheckIDs returns the check IDs named in the settings, sorted.
func (s *Settings) CheckIDs() []string {
	ids := make([]string, 0, len(s.Checks))
	for id := range s.Checks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Enabled reports whether the settings leave checkID enabled.
func (s *Settings) Enabled(checkID string) bool {
	cs, ok := s.Checks[checkID]
	if !ok || cs.Enabled == nil {
		return true
	}
	return *cs.Enabled
}

// Severity returns the severity override for checkID, or "".
func (s *Settings) Severity(checkID string) checks.Severity {
	return checks.Severity(s.Checks[checkID].Severity)
}

// Overrides merges the settings options of checkID with CLI assignments.
// CLI assignments win; settings exclusions are appended to exclude.patterns.
func (s *Settings) Overrides(checkID string, cli map[string]string) map[string]string {
	out := make(map[string]string)
	cs := s.Checks[checkID]
	for name, v := range cs.Options {
		out[name] = string(v)
	}
	if len(cs.Exclude) > 0 {
		patterns := checks.SplitList(out[checks.OptionExcludePatterns])
		patterns = append(patterns, cs.Exclude...)
		out[checks.OptionExcludePatterns] = strings.Join(patterns, ",")
	}
	for name, v := range cli {
		out[name] = v
	}
	return out
}
