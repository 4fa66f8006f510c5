package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/alarmbook/internal/model"
)

// completeAlarmIDs completes the ID argument of edit and delete.
func completeAlarmIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || rt == nil || rt.AlarmRepo == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	alarms, err := rt.AlarmRepo.FetchAll(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, a := range alarms {
		id := strconv.FormatInt(a.ID, 10)
		if strings.HasPrefix(id, toComplete) {
			completions = append(completions, id+"\t"+alarmHint(a))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func alarmHint(a *model.Alarm) string {
	if a.Description == "" {
		return fmt.Sprintf("%s %s", a.Time, a.Days)
	}
	return fmt.Sprintf("%s %s, %s", a.Time, a.Days, a.Description)
}

// completeStatus completes the --status flag.
func completeStatus(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, s := range model.StatusFilters() {
		if strings.HasPrefix(s.Param(), strings.ToLower(toComplete)) {
			completions = append(completions, s.Param())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
