package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mdcheck/internal/checks"
	"mdcheck/internal/checks/md"
	"mdcheck/internal/flags"
	"mdcheck/internal/messages"
)

var (
	checksListQuiet bool
	checksLang      = messages.DefaultLanguage
)

// installedChecks builds the registry shown by the checks commands.
var installedChecks = func(cat *messages.Catalog) *checks.Registry {
	return md.NewRegistry(cat)
}

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "Manage and list checks",
	Long: `Manage mdcheck checks.

This command group helps you discover which checks exist, what each check
validates and which options it accepts. Checks run during validation (see
"mdcheck check --help").

Examples:
  # List all available checks
  mdcheck checks list

  # Show one check with its options, in Russian
  mdcheck checks show md-object-name-length --lang ru
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var checksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available checks",
	Long: `List all checks installed in this build.

Checks are sorted by check ID.

Examples:
  mdcheck checks list

Output:
  A vertical list of checks:
    ----------------------------------------
    CHECK: {ID}
    ----------------------------------------
    {TITLE}
    {DESCRIPTION}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := checksRegistry()
		if err != nil {
			return err
		}
		for _, c := range reg.List() {
			if checksListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), c.ID())
			} else {
				printCheck(cmd.OutOrStdout(), c)
			}
		}
		return nil
	},
}

var checksShowCmd = &cobra.Command{
	Use:   "show [check-id]",
	Short: "Show details of a specific check",
	Long: `Show details of a specific check by its ID.

Examples:
  mdcheck checks show common-module-type
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := checksRegistry()
		if err != nil {
			return err
		}
		c, ok := reg.Get(strings.TrimSpace(args[0]))
		if !ok {
			return fmt.Errorf("%w: %s", checks.ErrCheckNotFound, args[0])
		}
		printCheck(cmd.OutOrStdout(), c)
		return nil
	},
}

func checksRegistry() (*checks.Registry, error) {
	cat, err := messages.Load(strings.ToLower(strings.TrimSpace(checksLang)))
	if err != nil {
		return nil, err
	}
	return installedChecks(cat), nil
}

func printCheck(w io.Writer, c checks.Check) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "CHECK: %s\n", c.ID())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, c.Title())
	fmt.Fprintln(w, c.Description())
	fmt.Fprintln(w)

	kinds := make([]string, 0, len(c.Kinds()))
	for _, k := range c.Kinds() {
		kinds = append(kinds, string(k))
	}
	fmt.Fprintf(w, "Kinds:    %s\n", strings.Join(kinds, ", "))
	fmt.Fprintf(w, "Severity: %s\n", c.Severity())
	fmt.Fprintf(w, "Type:     %s\n", c.Type())

	if opts := checks.OptionsOf(c); len(opts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		for _, opt := range opts {
			def := opt.Default
			if def == "" {
				def = "\"\""
			}
			fmt.Fprintf(w, "  %s (%s)\n", opt.Name, opt.Type)
			fmt.Fprintf(w, "    Description: %s\n", opt.Description)
			fmt.Fprintf(w, "    Default:     %s\n", def)
		}
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(checksCmd)
	checksCmd.PersistentFlags().StringVar(&checksLang, flags.FlagLang, checksLang, "Message language for titles and descriptions: en|ru")
	checksCmd.AddCommand(checksListCmd)
	checksListCmd.Flags().BoolVarP(&checksListQuiet, "quiet", "q", false, "Only print check IDs")
	checksCmd.AddCommand(checksShowCmd)
}
