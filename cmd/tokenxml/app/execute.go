package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/SlightlyCircuitous/update-token-xml/cmd/tokenxml/cmd/update"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/logging"
)

// Execute runs the tokenxml CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tokenxml",
		Short:   "Cockatrice token catalog synchronizer",
		Version: a.version,
		Long: `tokenxml keeps a Cockatrice token database in step with Scryfall.

For a given set it appends provenance lines to tokens the catalog already
has and creates entries for the ones it does not.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.tokenxml.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: text, table, json, yaml")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("tokenxml {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		config, err := LoadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(update.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError prints err and exits with the status exitCode picks for it.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(errorMessage(err) + "\n")
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a process status. Interrupted runs use the
// shell's SIGINT convention.
func exitCode(err error) int {
	if errors.IsCanceled(err) {
		return 130
	}
	return 1
}

func errorMessage(err error) string {
	if errors.IsRateLimited(err) {
		return err.Error() + " (raise rate_limit_delay or retry later)"
	}
	return err.Error()
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
