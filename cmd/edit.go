package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/validate"
)

var (
	editFlagTime        string
	editFlagDays        string
	editFlagDescription string
	editFlagActive      bool
	editFlagInactive    bool
)

// editCmd updates an alarm.
var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit an alarm",
	Long: `Edit an alarm. Only the fields given as flags change; the record is
then written back as a whole.

Examples:
  alarmbook edit 3 --time 06:45
  alarmbook edit 3 --description "Gym and sauna"
  alarmbook edit 3 --inactive`,
	Args:              cobra.ExactArgs(1),
	Annotations:       map[string]string{annotationWrites: "true"},
	ValidArgsFunction: completeAlarmIDs,
	RunE:              runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editFlagTime, "time", "t", "", "New time (HH:MM)")
	editCmd.Flags().StringVarP(&editFlagDays, "days", "d", "", "New days")
	editCmd.Flags().StringVarP(&editFlagDescription, "description", "m", "", "New description")
	editCmd.Flags().BoolVar(&editFlagActive, "active", false, "Switch the alarm on")
	editCmd.Flags().BoolVar(&editFlagInactive, "inactive", false, "Switch the alarm off")
	editCmd.MarkFlagsMutuallyExclusive("active", "inactive")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseAlarmID(args[0])
	if err != nil {
		return err
	}

	a, err := rt.AlarmRepo.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("time") && !flags.Changed("days") && !flags.Changed("description") &&
		!flags.Changed("active") && !flags.Changed("inactive") {
		return errors.NewUserError("Nothing to change",
			"Pass at least one of --time, --days, --description, --active or --inactive")
	}

	if flags.Changed("time") {
		a.Time = editFlagTime
	}
	if flags.Changed("days") {
		a.Days = editFlagDays
	}
	if flags.Changed("description") {
		a.Description = editFlagDescription
	}
	if flags.Changed("active") {
		a.IsActive = editFlagActive
	}
	if flags.Changed("inactive") {
		a.IsActive = !editFlagInactive
	}

	if err := validate.Alarm(a); err != nil {
		return err
	}
	if err := rt.AlarmRepo.Save(cmd.Context(), a); err != nil {
		return err
	}

	if rt.IsJSON() {
		return rt.JSONFormatter().PrintAlarm("updated", a)
	}
	rt.CLIFormatter().PrintAlarm("Updated", a)
	return nil
}

// parseAlarmID parses a positive alarm id argument.
func parseAlarmID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewUserErrorWithField("id", s,
			"Invalid alarm ID",
			"IDs are positive numbers; use 'alarmbook list' to see them")
	}
	return id, nil
}
