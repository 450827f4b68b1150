package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"mdcheck/internal/checks"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolName     = "mdcheck"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool              `json:"tool"`
	Results           []sarifResult          `json:"results"`
	Invocations       []sarifInvocation      `json:"invocations,omitempty"`
	AutomationDetails *sarifAutomationDetail `json:"automationDetails,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name  string      `json:"name"`
	Rules []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	Name             string            `json:"name,omitempty"`
	ShortDescription *sarifMessage     `json:"shortDescription,omitempty"`
	FullDescription  *sarifMessage     `json:"fullDescription,omitempty"`
	DefaultConfig    *sarifRuleConfig  `json:"defaultConfiguration,omitempty"`
	Properties       map[string]string `json:"properties,omitempty"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID     string            `json:"ruleId"`
	Level      string            `json:"level"`
	Message    sarifMessage      `json:"message"`
	Locations  []sarifLocation   `json:"locations"`
	Properties map[string]string `json:"properties,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation *sarifPhysicalLocation `json:"physicalLocation,omitempty"`
	LogicalLocations []sarifLogicalLocation `json:"logicalLocations"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifLogicalLocation struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
	Kind               string `json:"kind,omitempty"`
}

type sarifInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level   string       `json:"level"`
	Message sarifMessage `json:"message"`
}

type sarifAutomationDetail struct {
	GUID string `json:"guid"`
}

// sarifLevel maps a severity onto the SARIF result level.
func sarifLevel(s checks.Severity) string {
	switch {
	case s.IsError():
		return "error"
	case s.AtLeast(checks.SeverityMinor):
		return "warning"
	default:
		return "note"
	}
}

// sarifBuilder accumulates results and lifecycle events into one SARIF run.
// Issues become results; ERROR check results become tool notifications.
type sarifBuilder struct {
	rules         []sarifRule
	sources       map[string]string
	results       []sarifResult
	notifications []sarifNotification
	runID         string
	exitCode      int
}

func newSarifBuilder(described []CheckInfo) *sarifBuilder {
	b := &sarifBuilder{sources: make(map[string]string)}
	for _, c := range described {
		rule := sarifRule{ID: c.ID, Name: c.ID}
		if c.Title != "" {
			rule.ShortDescription = &sarifMessage{Text: c.Title}
		}
		if c.Description != "" {
			rule.FullDescription = &sarifMessage{Text: c.Description}
		}
		if c.Severity != "" {
			rule.DefaultConfig = &sarifRuleConfig{Level: sarifLevel(c.Severity)}
			rule.Properties = map[string]string{"severity": string(c.Severity)}
		}
		b.rules = append(b.rules, rule)
	}
	sort.Slice(b.rules, func(i, j int) bool { return b.rules[i].ID < b.rules[j].ID })
	return b
}

func (b *sarifBuilder) add(v any) {
	switch t := v.(type) {
	case Event:
		switch t.Type {
		case EventRunStarted:
			b.runID = t.RunID
		case EventObjectStarted:
			if t.Source != "" {
				b.sources[t.Object] = t.Source
			}
		case EventRunFinished:
			b.exitCode = t.ExitCode
		}
	case checks.Result:
		if t.Status == checks.StatusError {
			b.notifications = append(b.notifications, sarifNotification{
				Level:   "error",
				Message: sarifMessage{Text: fmt.Sprintf("%s on %s: %s", t.CheckID, t.Object, t.Message)},
			})
		}
		for _, is := range t.Issues {
			b.results = append(b.results, b.result(t.Object, is))
		}
	}
}

func (b *sarifBuilder) result(object string, is checks.Issue) sarifResult {
	loc := sarifLocation{
		LogicalLocations: []sarifLogicalLocation{{FullyQualifiedName: is.Object, Kind: string(is.Kind)}},
	}
	if src, ok := b.sources[object]; ok {
		loc.PhysicalLocation = &sarifPhysicalLocation{ArtifactLocation: sarifArtifactLocation{URI: src}}
	}
	res := sarifResult{
		RuleID:    is.CheckID,
		Level:     sarifLevel(is.Severity),
		Message:   sarifMessage{Text: is.Message},
		Locations: []sarifLocation{loc},
		Properties: map[string]string{
			"severity": string(is.Severity),
			"type":     string(is.Type),
		},
	}
	if is.Feature != "" {
		res.Properties["feature"] = string(is.Feature)
	}
	return res
}

func (b *sarifBuilder) encode(w io.Writer) error {
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: toolName, Rules: b.rules}},
		Results: b.results,
		Invocations: []sarifInvocation{{
			ExecutionSuccessful:        b.exitCode < 2,
			ToolExecutionNotifications: b.notifications,
		}},
	}
	if run.Tool.Driver.Rules == nil {
		run.Tool.Driver.Rules = []sarifRule{}
	}
	if run.Results == nil {
		run.Results = []sarifResult{}
	}
	if b.runID != "" {
		run.AutomationDetails = &sarifAutomationDetail{GUID: b.runID}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}}); err != nil {
		return fmt.Errorf("failed to encode SARIF output: %w", err)
	}
	return nil
}
