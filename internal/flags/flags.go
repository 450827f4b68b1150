package flags

// Package flags defines canonical CLI flag names shared across the CLI and engine.
// Keeping these as constants avoids drift between Cobra flag wiring and other
// code paths that need to reference flags (e.g. the reproduce command printed
// in the Markdown report).
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Project.Root, flags.FlagProject, ".", "...")
//	arg := "--" + flags.FlagProject
const (
	// Project
	FlagProject  = "project"
	FlagFiles    = "files"
	FlagSkip     = "skip"
	FlagInclude  = "include"
	FlagExclude  = "exclude"
	FlagKinds    = "kinds"
	FlagSettings = "settings"

	// Checks
	FlagChecks      = "checks"
	FlagSet         = "set"
	FlagMinSeverity = "min-severity"
	FlagLang        = "lang"
	FlagMessages    = "messages"
	FlagTrace       = "trace"

	// Output
	FlagConsoleFormat       = "console-format"
	FlagConsoleFilterStatus = "console-filter-status"
	FlagReport              = "report"
	FlagOut                 = "out"
	FlagOutFormat           = "out-format"
	FlagEmit                = "emit"
	FlagNoConsole           = "no-console"
	FlagMetricsOut          = "metrics-out"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagTimeout     = "timeout"
	FlagWatch       = "watch"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
)
