package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/alarmbook/internal/storage"
)

// doctorCmd checks the database file.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the alarm database for corruption",
	Long: `Run SQLite's integrity check on the alarm database and count its
rows. A database without the alarms table is reported as fresh and left
untouched, as is a damaged file.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoSchema: "true"},
	RunE:        runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report, checkErr := storage.CheckIntegrity(cmd.Context(), rt.DB)
	if report == nil {
		return checkErr
	}

	if rt.IsJSON() {
		if err := rt.JSONFormatter().PrintHealth(report); err != nil {
			return err
		}
	} else {
		rt.CLIFormatter().PrintHealth(report)
	}
	return checkErr
}
