package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteFlagYes bool

// deleteCmd removes an alarm.
var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete an alarm",
	Long: `Delete an alarm. Asks for confirmation unless --yes is given.

Examples:
  alarmbook delete 3
  alarmbook delete 3 --yes`,
	Args:              cobra.ExactArgs(1),
	Annotations:       map[string]string{annotationWrites: "true"},
	ValidArgsFunction: completeAlarmIDs,
	RunE:              runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteFlagYes, "yes", "y", false, "Delete without asking")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseAlarmID(args[0])
	if err != nil {
		return err
	}

	a, err := rt.AlarmRepo.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	if !deleteFlagYes {
		fmt.Fprintf(cmd.ErrOrStderr(), "Delete alarm %s? [y/N] ", a)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			rt.CLIFormatter().Muted("Cancelled.")
			return nil
		}
	}

	if err := rt.AlarmRepo.Delete(cmd.Context(), a); err != nil {
		return err
	}

	if rt.IsJSON() {
		return rt.JSONFormatter().PrintAlarm("deleted", a)
	}
	rt.CLIFormatter().PrintAlarm("Deleted", a)
	return nil
}
