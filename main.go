// Alarmbook - keep a book of alarms in a local database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/manav03panchal/alarmbook/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(cmd.Report(err))
	}
}
