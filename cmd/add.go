package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/alarmbook/internal/model"
	"github.com/manav03panchal/alarmbook/internal/validate"
)

var (
	addFlagTime        string
	addFlagDays        string
	addFlagDescription string
	addFlagInactive    bool
)

// addCmd creates an alarm.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an alarm",
	Long: `Add an alarm. The time must be in 24-hour HH:MM form.

Examples:
  alarmbook add --time 07:30
  alarmbook add --time 06:00 --days Mon,Wed,Fri --description Gym
  alarmbook add --time 22:00 --days Sun --inactive`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationWrites: "true"},
	RunE:        runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addFlagTime, "time", "t", "", "Alarm time (HH:MM)")
	addCmd.Flags().StringVarP(&addFlagDays, "days", "d", model.DefaultDays, "Days the alarm applies to")
	addCmd.Flags().StringVarP(&addFlagDescription, "description", "m", "", "Description")
	addCmd.Flags().BoolVar(&addFlagInactive, "inactive", false, "Create the alarm switched off")
	addCmd.MarkFlagRequired("time")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a := &model.Alarm{
		Time:        addFlagTime,
		Days:        addFlagDays,
		Description: addFlagDescription,
		IsActive:    !addFlagInactive,
	}
	if err := validate.Alarm(a); err != nil {
		return err
	}

	if err := rt.AlarmRepo.Save(cmd.Context(), a); err != nil {
		return err
	}

	if rt.IsJSON() {
		return rt.JSONFormatter().PrintAlarm("created", a)
	}
	rt.CLIFormatter().PrintAlarm("Created", a)
	return nil
}
