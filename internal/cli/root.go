package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mdcheck/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mdcheck",
	Short: "Validate configuration metadata against development conventions",
	Long: `mdcheck validates the metadata objects of a configuration project
(common modules, scheduled jobs, registers, subsystems, catalogs ...) and
reports objects that break development conventions.

mdcheck is read-only: it reports issues and never rewrites project files.

Examples:
	# Show available commands and global flags
	mdcheck --help

	# Validate the project in the current directory
	mdcheck check --project .

	# List checks
	mdcheck checks list

	# Print build info
	mdcheck version

Output:
	By default, commands write human-readable output to stdout and logs to stderr.
	Some commands support structured output via emitter flags (see each command's --help).`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.Runtime.LogLevel, flags.FlagLogLevel, cfg.Runtime.LogLevel, "Log level: debug|info|warn|error (default: info)")
	rootCmd.PersistentFlags().StringVar(&cfg.Runtime.LogFormat, flags.FlagLogFormat, cfg.Runtime.LogFormat, "Log format: console|json (default: console)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
