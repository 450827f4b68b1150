package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

// mockCheck implements checks.Check for testing purposes
type mockCheck struct {
	id          string
	title       string
	description string
}

func (m *mockCheck) ID() string                { return m.id }
func (m *mockCheck) Title() string             { return m.title }
func (m *mockCheck) Description() string       { return m.description }
func (m *mockCheck) Kinds() []model.Kind       { return []model.Kind{model.KindCatalog, model.KindDocument} }
func (m *mockCheck) Severity() checks.Severity { return checks.SeverityMajor }
func (m *mockCheck) Type() checks.IssueType    { return checks.TypeCodeStyle }
func (m *mockCheck) Check(model.Object, checks.ResultAcceptor, checks.Parameters) error {
	return nil
}

// mockConfigurableCheck implements checks.ConfigurableCheck for testing purposes
type mockConfigurableCheck struct {
	mockCheck
	options []checks.Option
}

func (m *mockConfigurableCheck) Options() []checks.Option {
	return m.options
}

func TestPrintCheck(t *testing.T) {
	tests := []struct {
		name           string
		check          checks.Check
		expectedOutput []string
		notExpected    []string
	}{
		{
			name: "Regular Check",
			check: &mockCheck{
				id:          "simple-check",
				title:       "Simple Check",
				description: "A simple check description",
			},
			expectedOutput: []string{
				"CHECK: simple-check",
				"Simple Check",
				"A simple check description",
				"Kinds:    Catalog, Document",
				"Severity: major",
				"Type:     code-style",
			},
			notExpected: []string{
				"Options:",
			},
		},
		{
			name: "Configurable Check",
			check: &mockConfigurableCheck{
				mockCheck: mockCheck{
					id:          "config-check",
					title:       "Config Check",
					description: "A configurable check description",
				},
				options: []checks.Option{
					{
						Name:        "opt1",
						Type:        checks.OptionInt,
						Description: "Option 1 description",
						Default:     "10",
					},
					{
						Name:        "opt2",
						Type:        checks.OptionList,
						Description: "Option 2 description",
						Default:     "",
					},
				},
			},
			expectedOutput: []string{
				"CHECK: config-check",
				"Config Check",
				"A configurable check description",
				"Options:",
				"opt1 (int)",
				"Description: Option 1 description",
				"Default:     10",
				"opt2 (list)",
				"Description: Option 2 description",
				"Default:     \"\"",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			printCheck(buf, tt.check)
			output := buf.String()

			for _, exp := range tt.expectedOutput {
				if !strings.Contains(output, exp) {
					t.Errorf("Expected output to contain %q, but it didn't.\nOutput:\n%s", exp, output)
				}
			}

			for _, notExp := range tt.notExpected {
				if strings.Contains(output, notExp) {
					t.Errorf("Expected output NOT to contain %q, but it did.\nOutput:\n%s", notExp, output)
				}
			}
		})
	}
}

func withInstalledChecks(t *testing.T, cs ...checks.Check) {
	t.Helper()
	prev := installedChecks
	installedChecks = func(*messages.Catalog) *checks.Registry { return checks.NewRegistry(cs...) }
	t.Cleanup(func() { installedChecks = prev })
}

func TestChecksListCmd(t *testing.T) {
	withInstalledChecks(t,
		&mockCheck{id: "test-check-list", title: "Test Check List", description: "This is a test check for the list command."},
		&mockCheck{id: "another-check", title: "Another", description: "Another one."},
	)

	tests := []struct {
		name           string
		quiet          bool
		expectedOutput []string
		notExpected    []string
	}{
		{
			name:  "Default Output",
			quiet: false,
			expectedOutput: []string{
				"----------------------------------------",
				"CHECK: test-check-list",
				"Test Check List",
				"This is a test check for the list command.",
				// Every installed check accepts the exclusion options.
				checks.OptionExcludePatterns,
			},
		},
		{
			name:  "Quiet Output",
			quiet: true,
			expectedOutput: []string{
				"another-check\ntest-check-list\n",
			},
			notExpected: []string{
				"Test Check List",
				"----------------------------------------",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag
			checksListQuiet = tt.quiet
			defer func() { checksListQuiet = false }()

			buf := new(bytes.Buffer)
			checksListCmd.SetOut(buf)

			// Execute RunE directly
			err := checksListCmd.RunE(checksListCmd, []string{})
			if err != nil {
				t.Fatalf("RunE() error = %v", err)
			}

			output := buf.String()
			for _, exp := range tt.expectedOutput {
				if !strings.Contains(output, exp) {
					t.Errorf("Expected output to contain %q, but it didn't.\nOutput:\n%s", exp, output)
				}
			}
			for _, notExp := range tt.notExpected {
				if strings.Contains(output, notExp) {
					t.Errorf("Expected output NOT to contain %q, but it did.\nOutput:\n%s", notExp, output)
				}
			}
		})
	}
}

func TestChecksShowCmd(t *testing.T) {
	buf := new(bytes.Buffer)
	checksShowCmd.SetOut(buf)

	if err := checksShowCmd.RunE(checksShowCmd, []string{"md-object-name-length"}); err != nil {
		t.Fatalf("RunE() error = %v", err)
	}
	output := buf.String()
	for _, exp := range []string{"CHECK: md-object-name-length", "maxNameLength (int)", "Default:     80", "Severity: critical"} {
		if !strings.Contains(output, exp) {
			t.Errorf("Expected output to contain %q, but it didn't.\nOutput:\n%s", exp, output)
		}
	}

	err := checksShowCmd.RunE(checksShowCmd, []string{"no-such-check"})
	if !errors.Is(err, checks.ErrCheckNotFound) {
		t.Fatalf("expected ErrCheckNotFound, got %v", err)
	}
}

func TestChecksShowCmd_Language(t *testing.T) {
	prev := checksLang
	defer func() { checksLang = prev }()

	checksLang = "de"
	if err := checksShowCmd.RunE(checksShowCmd, []string{"common-module-type"}); err == nil {
		t.Fatalf("expected error for unsupported language, got nil")
	}

	checksLang = " RU "
	buf := new(bytes.Buffer)
	checksShowCmd.SetOut(buf)
	if err := checksShowCmd.RunE(checksShowCmd, []string{"common-module-type"}); err != nil {
		t.Fatalf("RunE() error = %v", err)
	}
	if !strings.Contains(buf.String(), "CHECK: common-module-type") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestVersionCmd(t *testing.T) {
	SetBuildInfo("1.2.3", "abc123", "2026-01-02")
	defer SetBuildInfo("dev", "unknown", "unknown")

	buf := new(bytes.Buffer)
	versionCmd.SetOut(buf)
	versionCmd.Run(versionCmd, nil)

	want := "mdcheck 1.2.3\ncommit: abc123\nbuilt:  2026-01-02\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}
