package config

import (
	"reflect"
	"testing"
)

func TestValidate_NormalizesCommaDelimitedLists(t *testing.T) {
	cfg := New()
	cfg.Project.Include = []string{"Catalog.*, Document.*", "CommonModule.Sales*", ",,"}
	cfg.Project.Kinds = []string{"catalog, commonmodule"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}

	want := []string{"Catalog.*", "Document.*", "CommonModule.Sales*"}
	if !reflect.DeepEqual(cfg.Project.Include, want) {
		t.Fatalf("Include normalized mismatch: got %v want %v", cfg.Project.Include, want)
	}
	wantKinds := []string{"Catalog", "CommonModule"}
	if !reflect.DeepEqual(cfg.Project.Kinds, wantKinds) {
		t.Fatalf("Kinds normalized mismatch: got %v want %v", cfg.Project.Kinds, wantKinds)
	}
}

func TestValidate_RejectsInvalidKinds(t *testing.T) {
	tests := []struct {
		name  string
		kinds []string
	}{
		{name: "unknown", kinds: []string{"Widget"}},
		{name: "nested_kind", kinds: []string{"Attribute"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.Project.Kinds = tt.kinds
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestValidate_RejectsInvalidPatterns(t *testing.T) {
	tests := []struct {
		name      string
		mutateCfg func(cfg *Config)
	}{
		{name: "include", mutateCfg: func(cfg *Config) { cfg.Project.Include = []string{"Catalog.[a"} }},
		{name: "exclude", mutateCfg: func(cfg *Config) { cfg.Project.Exclude = []string{"Catalog.[a"} }},
		{name: "files", mutateCfg: func(cfg *Config) { cfg.Project.Files = []string{"[a"} }},
		{name: "skip", mutateCfg: func(cfg *Config) { cfg.Project.Skip = []string{"[a"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutateCfg(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestParseCheckOptionAssignments(t *testing.T) {
	got, err := ParseCheckOptionAssignments([]string{
		"md-object-name-length.maxNameLength=60, scheduled-job-periodicity.minimumSchedulePeriod=120",
		"common-module-name-client.nameSuffixList=", // empty value allowed
		"common-module-type.exclude.patterns=CommonModule.Legacy*",
	})
	if err != nil {
		t.Fatalf("ParseCheckOptionAssignments returned error: %v", err)
	}
	if got["md-object-name-length"]["maxNameLength"] != "60" {
		t.Fatalf("unexpected parsed value: %v", got)
	}
	if got["scheduled-job-periodicity"]["minimumSchedulePeriod"] != "120" {
		t.Fatalf("unexpected parsed value: %v", got)
	}
	if v, ok := got["common-module-name-client"]["nameSuffixList"]; !ok || v != "" {
		t.Fatalf("expected empty string value to be preserved: %v", got)
	}
	if got["common-module-type"]["exclude.patterns"] != "CommonModule.Legacy*" {
		t.Fatalf("expected dotted option names to survive: %v", got)
	}
}

func TestParseCheckOptionAssignments_ErrorsOnInvalidSyntax(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{name: "missing_equals", values: []string{"a.b"}},
		{name: "missing_dot", values: []string{"ab=true"}},
		{name: "empty_check", values: []string{".b=true"}},
		{name: "empty_opt", values: []string{"a.=true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCheckOptionAssignments(tt.values); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestValidate_RejectsInvalidSetSyntax(t *testing.T) {
	cfg := New()
	cfg.Checks.Set = []string{"nope"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_RejectsInvalidConsoleFormat(t *testing.T) {
	tests := []struct {
		name          string
		consoleFormat string
	}{
		{name: "empty", consoleFormat: ""},
		{name: "spaces", consoleFormat: "   "},
		{name: "unknown", consoleFormat: "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.Output.ConsoleFormat = tt.consoleFormat
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestValidate_AllowsKnownConsoleFormats(t *testing.T) {
	for _, format := range []string{"text", "json", "ndjson", " NDJSON "} {
		t.Run(format, func(t *testing.T) {
			cfg := New()
			cfg.Output.ConsoleFormat = format
			if err := cfg.Validate(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidate_NormalizesConsoleFilterStatus(t *testing.T) {
	cfg := New()
	cfg.Output.ConsoleFilterStatus = []string{"fail, Error"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"FAIL", "ERROR"}
	if !reflect.DeepEqual(cfg.Output.ConsoleFilterStatus, want) {
		t.Fatalf("got %v want %v", cfg.Output.ConsoleFilterStatus, want)
	}

	cfg = New()
	cfg.Output.ConsoleFilterStatus = []string{"BROKEN"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_MinSeverityAndLang(t *testing.T) {
	cfg := New()
	cfg.Checks.MinSeverity = " Major "
	cfg.Checks.Lang = "RU"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Checks.MinSeverity != "major" {
		t.Fatalf("expected severity to normalize to %q, got %q", "major", cfg.Checks.MinSeverity)
	}
	if cfg.Checks.Lang != "ru" {
		t.Fatalf("expected lang to normalize to %q, got %q", "ru", cfg.Checks.Lang)
	}

	cfg = New()
	cfg.Checks.MinSeverity = "urgent"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown severity, got nil")
	}

	cfg = New()
	cfg.Checks.Lang = "de"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown language, got nil")
	}
}

func TestValidate_RejectsInvalidEmit(t *testing.T) {
	cfg := New()
	cfg.Output.Emit = []string{"yaml"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_InfersOutFormat(t *testing.T) {
	tests := []struct {
		out     string
		want    string
		wantErr bool
	}{
		{out: "results.json", want: "json"},
		{out: "results.ndjson", want: "ndjson"},
		{out: "results.jsonl", want: "ndjson"},
		{out: "results.sarif", want: "sarif"},
		{out: "results.txt", wantErr: true},
		{out: "results", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.out, func(t *testing.T) {
			cfg := New()
			cfg.Output.Out = tt.out
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if cfg.Output.OutFormat != tt.want {
				t.Fatalf("expected format %q, got %q", tt.want, cfg.Output.OutFormat)
			}
		})
	}
}

func TestValidate_RejectsInvalidRuntimeBounds(t *testing.T) {
	tests := []struct {
		name      string
		mutateCfg func(cfg *Config)
	}{
		{
			name: "zero_concurrency",
			mutateCfg: func(cfg *Config) {
				cfg.Runtime.Concurrency = 0
			},
		},
		{
			name: "negative_timeout",
			mutateCfg: func(cfg *Config) {
				cfg.Runtime.Timeout = -1
			},
		},
		{
			name: "log_level",
			mutateCfg: func(cfg *Config) {
				cfg.Runtime.LogLevel = "loud"
			},
		},
		{
			name: "log_format",
			mutateCfg: func(cfg *Config) {
				cfg.Runtime.LogFormat = "xml"
			},
		},
		{
			name: "empty_project",
			mutateCfg: func(cfg *Config) {
				cfg.Project.Root = " "
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutateCfg(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}
