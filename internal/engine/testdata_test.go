package engine

import (
	"os"
	"path/filepath"
	"testing"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

type mockCheck struct {
	id       string
	kinds    []model.Kind
	severity checks.Severity
	options  []checks.Option
	fn       func(obj model.Object, acceptor checks.ResultAcceptor, p checks.Parameters) error
}

func (c *mockCheck) ID() string          { return c.id }
func (c *mockCheck) Title() string       { return "Mock " + c.id }
func (c *mockCheck) Description() string { return "Test-only check" }
func (c *mockCheck) Type() checks.IssueType {
	return checks.TypeCodeStyle
}
func (c *mockCheck) Options() []checks.Option { return c.options }

func (c *mockCheck) Kinds() []model.Kind {
	if c.kinds == nil {
		return []model.Kind{model.KindCatalog}
	}
	return c.kinds
}

func (c *mockCheck) Severity() checks.Severity {
	if c.severity == "" {
		return checks.SeverityMinor
	}
	return c.severity
}

func (c *mockCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, p checks.Parameters) error {
	if c.fn == nil {
		return nil
	}
	return c.fn(obj, acceptor, p)
}

// failing reports one issue on the object name.
func failing(id string) *mockCheck {
	return &mockCheck{id: id, fn: func(obj model.Object, acceptor checks.ResultAcceptor, _ checks.Parameters) error {
		acceptor.AddIssue(obj, model.FeatureName, "bad name "+obj.Name())
		return nil
	}}
}

func registryOf(cs ...checks.Check) func(*messages.Catalog) *checks.Registry {
	return func(*messages.Catalog) *checks.Registry { return checks.NewRegistry(cs...) }
}

// configuredAll wraps cs the way the registry does and gives them default
// parameters.
func configuredAll(t *testing.T, cs ...checks.Check) []ConfiguredCheck {
	t.Helper()
	reg := checks.NewRegistry(cs...)
	var out []ConfiguredCheck
	for _, c := range reg.List() {
		p, err := checks.BuildParameters(c.ID(), checks.OptionsOf(c), nil)
		if err != nil {
			t.Fatalf("BuildParameters(%s): %v", c.ID(), err)
		}
		out = append(out, ConfiguredCheck{Check: c, Params: p, Severity: c.Severity()})
	}
	return out
}

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

const projectYAML = `kind: Configuration
name: Trade
dataLockControlMode: Managed
---
kind: Catalog
name: Goods
---
kind: Catalog
name: Companies
---
kind: CommonModule
name: SalesClient
clientManagedApplication: true
`

// newProject writes a small project and returns its root.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeProjectFile(t, root, "src/objects.yaml", projectYAML)
	return root
}
