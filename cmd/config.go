package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/alarmbook/internal/config"
	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/output"
)

var configInitFlagForce bool

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:         "config",
	Aliases:     []string{"cfg"},
	Short:       "Manage application configuration",
	Annotations: map[string]string{annotationNoRuntime: "true"},
}

// configInitCmd writes the default configuration file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to the config file. An existing file
is kept unless --force is given.

` + config.Describe(),
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRuntime: "true"},
	RunE:        runConfigInit,
}

// configPathCmd prints the configuration file location.
var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the configuration file path",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRuntime: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
	},
}

// configResetViewCmd discards the saved search text and status filter.
var configResetViewCmd = &cobra.Command{
	Use:   "reset-view",
	Short: "Forget the saved search and status filter",
	Long: `Discard the view state the interactive manager restores on launch,
so the next launch starts with no search and all alarms shown.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationWrites: "true"},
	RunE:        runConfigResetView,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitFlagForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetViewCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := config.WriteDefault(path, configInitFlagForce); err != nil {
		return err
	}

	f := output.NewFormatter()
	f.Writer = cmd.OutOrStdout()
	f.Format, _ = output.ParseFormat(flagFormat)
	f.ColorMode, _ = output.ParseColorMode(flagColor)
	if f.Format == output.FormatJSON {
		return f.JSON(map[string]string{"status": "written", "path": path})
	}
	output.NewCLIFormatter(f).Success("Wrote " + path)
	return nil
}

func runConfigResetView(cmd *cobra.Command, args []string) error {
	states, err := rt.ViewStates()
	if err != nil {
		return err
	}
	if err := states.Reset(); err != nil {
		return errors.NewSystemErrorWithOp("reset_view", "failed to reset view state", err)
	}

	if rt.IsJSON() {
		return rt.Formatter.JSON(map[string]string{"status": "reset"})
	}
	rt.CLIFormatter().Success("View state reset")
	return nil
}
