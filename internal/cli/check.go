package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mdcheck/internal/config"
	"mdcheck/internal/engine"
	"mdcheck/internal/flags"
	"mdcheck/internal/logger"
	"mdcheck/internal/metrics"
	"mdcheck/internal/watch"
)

var cfg = config.New()

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the metadata objects of a project",
	Long: `Validate the metadata objects of a project and report convention issues.

The project is a directory of YAML object files. Every *.yaml and *.yml file
below --project is loaded unless --files/--skip narrow the selection. A
.mdcheck.yaml settings file in the project root (or --settings) enables,
disables and tunes checks; --set overrides win over the settings file.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array, an NDJSON stream or a SARIF log to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --report: write a Markdown report
	- --no-console: suppress the console sink (use with --emit/--out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, object.started, check.result, object.finished, run.finished).
	Check results are represented as an Event with type "check.result" and a nested
	"result" object.

	Logs go to stderr (see --log-level, --log-format).

Exit codes:
	0 = clean run, no issues
	1 = issues found
	2 = defects (some checks failed or panicked)
	3 = fatal error (validation did not run)

Examples:
	# Validate a project
	mdcheck check --project ./src

	# Only catalogs and documents, stricter name length
	mdcheck check --kinds Catalog,Document --set md-object-name-length.maxNameLength=60

	# CI: SARIF for code scanning plus a Markdown summary
	mdcheck check --no-console --out results.sarif --report report.md

	# AI Agent: stream machine-readable events to stdout
	mdcheck check --no-console --emit ndjson

	# Re-validate on every change
	mdcheck check --watch
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		code := runCheck(ctx, cfg, os.Stderr)
		stop()
		os.Exit(code)
	},
}

// runCheck validates cfg, runs one pass (or keeps re-running in watch mode)
// and returns the process exit code.
func runCheck(ctx context.Context, cfg *config.Config, stderr io.Writer) int {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return engine.ExitFatal
	}

	log, err := logger.NewWithWriter(stderr, cfg.Runtime.LogLevel, cfg.Runtime.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return engine.ExitFatal
	}
	defer func() { _ = log.Sync() }()

	eng := engine.NewEngine(log, metrics.New())
	if !cfg.Runtime.Watch {
		return eng.Run(ctx, cfg)
	}

	// Register the watches first so edits made during the initial pass are seen.
	w, err := watch.New(cfg.Project.Root, watch.DefaultDebounce, log.Named("watch"))
	if err != nil {
		log.Error("failed to start watcher", zap.Error(err))
		return engine.ExitFatal
	}
	code := eng.Run(ctx, cfg)
	log.Info("watching for changes", zap.String("project", cfg.Project.Root))
	err = w.Run(ctx, func(changed []string) {
		code = eng.Run(ctx, cfg)
	})
	if err != nil {
		log.Error("watcher stopped", zap.Error(err))
		return engine.ExitFatal
	}
	return code
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// MAINTAINER NOTE: If you add/change/remove any pass-affecting flags here,
	// keep the report reproduce command generator in sync:
	// internal/engine/reproduce.go:buildReproduceCommand.
	//
	// Output flags are intentionally omitted from the reproduce command.

	// Project
	checkCmd.Flags().StringVar(&cfg.Project.Root, flags.FlagProject, cfg.Project.Root, "Project directory holding the YAML object files")
	checkCmd.Flags().StringSliceVar(&cfg.Project.Files, flags.FlagFiles, nil, "Project files to load as doublestar patterns relative to --project (repeatable; comma-separated accepted; default: all *.yaml, *.yml)")
	checkCmd.Flags().StringSliceVar(&cfg.Project.Skip, flags.FlagSkip, nil, "Project files to skip as doublestar patterns relative to --project (repeatable; comma-separated accepted)")
	checkCmd.Flags().StringSliceVar(&cfg.Project.Include, flags.FlagInclude, nil, "Include object pattern(s) matched against the FQN, e.g. Catalog.* (repeatable; comma-separated accepted; case-insensitive)")
	checkCmd.Flags().StringSliceVar(&cfg.Project.Exclude, flags.FlagExclude, nil, "Exclude object pattern(s). Same matching rules as --include")
	checkCmd.Flags().StringSliceVar(&cfg.Project.Kinds, flags.FlagKinds, nil, "Only validate top-level objects of these kinds, e.g. Catalog,CommonModule (repeatable; comma-separated accepted)")
	checkCmd.Flags().StringVar(&cfg.Project.Settings, flags.FlagSettings, "", "Project settings file (default: <project>/.mdcheck.yaml when present)")

	// Checks
	checkCmd.Flags().StringVar(&cfg.Checks.Selector, flags.FlagChecks, "", "Comma-separated check IDs to run (empty = all checks)")
	checkCmd.Flags().StringSliceVar(&cfg.Checks.Set, flags.FlagSet, nil, "Per-check options as checkID.option=value (repeatable; comma-separated accepted)")
	checkCmd.Flags().StringVar(&cfg.Checks.MinSeverity, flags.FlagMinSeverity, "", "Drop issues below this severity: trivial|minor|major|critical|blocker")
	checkCmd.Flags().StringVar(&cfg.Checks.Lang, flags.FlagLang, cfg.Checks.Lang, "Message language: en|ru (default: en)")
	checkCmd.Flags().StringVar(&cfg.Checks.Messages, flags.FlagMessages, "", "YAML file overriding message texts")
	checkCmd.Flags().BoolVar(&cfg.Checks.Trace, flags.FlagTrace, false, "Attach the features each check read to its results")

	// Output
	checkCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson (default: text)")
	checkCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (PASS, FAIL, SKIPPED, ERROR). Comma-separated.")
	checkCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	checkCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	checkCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson|sarif (default: inferred from file extension)")
	checkCmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	checkCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out/--report)")
	checkCmd.Flags().StringVar(&cfg.Output.MetricsOut, flags.FlagMetricsOut, "", "Write pass metrics in the Prometheus text format to this path")

	// Runtime
	checkCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Objects validated concurrently (default: number of CPUs)")
	checkCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Timeout for one validation pass (default: 10m)")
	checkCmd.Flags().BoolVar(&cfg.Runtime.Watch, flags.FlagWatch, false, "Re-run the validation whenever project files change")
}
