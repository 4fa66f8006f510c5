package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/alarmbook/internal/logging"
	"github.com/manav03panchal/alarmbook/internal/model"
	"github.com/manav03panchal/alarmbook/internal/storage"
)

var (
	listFlagSearch string
	listFlagStatus model.StatusFilter
)

// listCmd lists alarms.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List alarms",
	Long: `List alarms in id order, optionally narrowed by a substring search
over time, days and description and by active status.

Examples:
  alarmbook list
  alarmbook list --search gym
  alarmbook list --status inactive
  alarmbook list --search mon --status active --format json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFlagSearch, "search", "s", "", "Substring to match in time, days or description")
	listCmd.Flags().VarP(&listFlagStatus, "status", "S", "Status filter: all, active, inactive")
	listCmd.RegisterFlagCompletionFunc("status", completeStatus)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	alarms, err := rt.AlarmRepo.List(cmd.Context(), storage.AlarmQuery{
		Text:   listFlagSearch,
		Active: listFlagStatus.Active(),
	})
	if err != nil {
		return err
	}

	logging.LoggerFromContext(cmd.Context()).Debug("listed",
		logging.KeySearch, listFlagSearch,
		logging.KeyStatus, listFlagStatus.Param(),
		logging.KeyCount, len(alarms))

	if rt.IsJSON() {
		return rt.JSONFormatter().PrintAlarms(alarms, listFlagSearch, listFlagStatus)
	}

	rt.CLIFormatter().PrintAlarms(alarms)
	return nil
}
