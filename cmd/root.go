// Package cmd provides the CLI commands for alarmbook.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/alarmbook/internal/config"
	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/logging"
	"github.com/manav03panchal/alarmbook/internal/output"
	"github.com/manav03panchal/alarmbook/internal/runtime"
	"github.com/manav03panchal/alarmbook/internal/tui"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagDB     string
	flagConfig string
)

// Command annotations read by the root pre-run hook.
const (
	// annotationNoRuntime marks commands that never touch the database.
	annotationNoRuntime = "alarmbook/no-runtime"
	// annotationWrites marks commands that take the single-writer lock.
	annotationWrites = "alarmbook/writes"
	// annotationNoSchema marks commands that must not create the table.
	annotationNoSchema = "alarmbook/no-schema"
)

// rt is the shared runtime context.
var rt *runtime.Context

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "alarmbook",
	Short: "Keep a book of alarms in a local database",
	Long: `Alarmbook stores alarm records (time, days, description, active flag)
in a local SQLite database. Run it without arguments to open the
interactive manager, or use the subcommands from scripts.

Examples:
  alarmbook
  alarmbook list --status active
  alarmbook add --time 07:30 --days Mon,Wed,Fri --description "Gym"
  alarmbook edit 3 --inactive
  alarmbook delete 3 --yes`,
	Annotations:   map[string]string{annotationWrites: "true"},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion, help and config commands
		// (but allow __complete for dynamic completions).
		if cmd.Name() == "completion" || cmd.Name() == "help" || hasAnnotation(cmd, annotationNoRuntime) {
			return nil
		}

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return err
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.DBPath = flagDB
		opts.Lock = hasAnnotation(cmd, annotationWrites)
		opts.SkipSchema = hasAnnotation(cmd, annotationNoSchema)
		if flagConfig != "" {
			opts.ConfigPath = flagConfig
		}

		rt, err = runtime.New(cmd.Context(), opts)
		if err != nil {
			return err
		}
		rt.Formatter.Writer = cmd.OutOrStdout()

		opCtx := logging.NewOperationContext(cmd.Context())
		cmd.SetContext(opCtx)
		logging.LoggerFromContext(opCtx).Info("command started",
			logging.KeyOperation, cmd.CommandPath())
		return nil
	},
	RunE: runUI,
}

// runUI launches the interactive manager.
func runUI(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errors.NewSystemErrorWithOp("start_ui", "cannot open the interactive manager", errors.ErrNoTerminal)
	}

	states, err := rt.ViewStates()
	if err != nil {
		return err
	}

	return tui.Run(tui.ViewConfig{
		Store:      rt.AlarmRepo,
		ViewStates: states,
	})
}

func hasAnnotation(cmd *cobra.Command, key string) bool {
	return cmd.Annotations[key] == "true"
}

// Execute runs the command tree and releases the runtime afterwards.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller-supplied context.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if rt != nil {
		if closeErr := rt.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		rt = nil
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "",
		"Database file (overrides config and ALARMBOOK_DATABASE)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		fmt.Sprintf("Config file (default %s)", config.DefaultPath()))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{annotationNoRuntime: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("alarmbook %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// Report prints err in the selected output format and returns the exit code.
func Report(err error) int {
	if err == nil {
		return 0
	}
	if format, _ := output.ParseFormat(flagFormat); format == output.FormatJSON {
		f := output.NewFormatter()
		f.Writer = os.Stderr
		output.NewJSONFormatter(f).PrintError(errors.Classify(err).String(), err.Error(), errors.GetSuggestion(err))
	} else {
		fmt.Fprintln(os.Stderr, "Error: "+errors.FormatByCategory(err))
	}
	return errors.ExitCode(err)
}
