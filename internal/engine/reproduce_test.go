package engine

import (
	"strconv"
	"testing"
	"time"

	"mdcheck/internal/config"
)

func TestBuildReproduceCommand(t *testing.T) {
	cfg := config.New()
	if got, want := buildReproduceCommand(cfg), "mdcheck check --project ."; got != want {
		t.Fatalf("defaults: got %q want %q", got, want)
	}

	cfg.Project.Root = "./my project"
	cfg.Project.Include = []string{"Catalog.*", "Document.*"}
	cfg.Project.Kinds = []string{"Catalog"}
	cfg.Checks.Selector = "md-object-name-length"
	cfg.Checks.Set = []string{"md-object-name-length.maxNameLength=60", "common-module-type.exclude.patterns=CommonModule.Old*"}
	cfg.Checks.MinSeverity = "major"
	cfg.Checks.Lang = "ru"
	cfg.Checks.Trace = true
	cfg.Runtime.Concurrency = cfg.Runtime.Concurrency + 1
	cfg.Runtime.Timeout = time.Minute
	cfg.Output.Report = "report.md"

	got := buildReproduceCommand(cfg)
	want := "mdcheck check --project './my project' --include 'Catalog.*,Document.*' --kinds Catalog" +
		" --checks md-object-name-length" +
		" --set md-object-name-length.maxNameLength=60 --set 'common-module-type.exclude.patterns=CommonModule.Old*'" +
		" --min-severity major --lang ru --trace" +
		" --concurrency " + strconv.Itoa(cfg.Runtime.Concurrency) + " --timeout 1m0s"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestShellQuote(t *testing.T) {
	tests := map[string]string{
		"":                "''",
		"plain":           "plain",
		"a/b.c-d_e=f,g:h": "a/b.c-d_e=f,g:h",
		"has space":       "'has space'",
		"it's":            `'it'\''s'`,
		"Справочник.*":    "'Справочник.*'",
	}
	for in, want := range tests {
		if got := shellQuote(in); got != want {
			t.Errorf("shellQuote(%q) = %q, want %q", in, got, want)
		}
	}
}
