package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mdcheck/internal/config"
	"mdcheck/internal/engine"
	"mdcheck/internal/flags"
)

const projectYAML = `kind: Configuration
name: Trade
dataLockControlMode: Managed
---
kind: Catalog
name: Goods
`

func newCheckConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "objects.yaml"), []byte(projectYAML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg := config.New()
	cfg.Project.Root = root
	cfg.Checks.Selector = "md-object-name-length"
	cfg.Output.NoConsole = true
	cfg.Runtime.LogLevel = "error"
	return cfg
}

func TestRunCheck_ExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
		want   int
	}{
		{name: "clean", mutate: func(*config.Config) {}, want: engine.ExitClean},
		{
			name:   "issues",
			mutate: func(cfg *config.Config) { cfg.Checks.Set = []string{"md-object-name-length.maxNameLength=3"} },
			want:   engine.ExitIssues,
		},
		{
			name:   "unknown_check",
			mutate: func(cfg *config.Config) { cfg.Checks.Selector = "no-such-check" },
			want:   engine.ExitFatal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newCheckConfig(t)
			tt.mutate(cfg)
			var stderr bytes.Buffer
			if got := runCheck(context.Background(), cfg, &stderr); got != tt.want {
				t.Fatalf("exit code: got %d want %d; stderr=%s", got, tt.want, stderr.String())
			}
		})
	}
}

func TestRunCheck_InvalidConfig(t *testing.T) {
	cfg := newCheckConfig(t)
	cfg.Output.Out = "results.unknown"

	var stderr bytes.Buffer
	if got := runCheck(context.Background(), cfg, &stderr); got != engine.ExitFatal {
		t.Fatalf("exit code: got %d want %d", got, engine.ExitFatal)
	}
	if !strings.Contains(stderr.String(), "cannot infer output format") {
		t.Fatalf("expected output format inference error; stderr=%s", stderr.String())
	}
}

func TestRunCheck_WatchRerunsOnChange(t *testing.T) {
	cfg := newCheckConfig(t)
	cfg.Runtime.Watch = true
	cfg.Output.Out = filepath.Join(t.TempDir(), "results.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)
	go func() {
		done <- runCheck(ctx, cfg, new(bytes.Buffer))
	}()

	waitFor(t, func() bool {
		_, err := os.Stat(cfg.Output.Out)
		return err == nil
	})
	if err := os.Remove(cfg.Output.Out); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	longName := "kind: Catalog\nname: " + strings.Repeat("X", 90) + "\n"
	if err := os.WriteFile(filepath.Join(cfg.Project.Root, "long.yaml"), []byte(longName), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	waitFor(t, func() bool {
		data, err := os.ReadFile(cfg.Output.Out)
		return err == nil && bytes.Contains(data, []byte("Catalog."+strings.Repeat("X", 90)))
	})

	cancel()
	select {
	case code := <-done:
		if code != engine.ExitIssues {
			t.Fatalf("exit code: got %d want %d", code, engine.ExitIssues)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch mode did not stop after cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestCheck_Help_DocumentsOutputAndExitCodes(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"check", "--help"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	s := buf.String()
	// Regression guard: command help must remain agent-friendly and document
	// machine-readable output + exit status semantics.
	required := []string{
		"Output:",
		"Exit codes:",
		"NDJSON mode emits",
		"run.started",
		"check.result",
		"run.finished",
		"--" + flags.FlagLogLevel,
	}
	for _, r := range required {
		if !strings.Contains(s, r) {
			t.Fatalf("expected check --help to contain %q; output=%s", r, s)
		}
	}
}
