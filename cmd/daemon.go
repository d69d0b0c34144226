package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/learntime/learntime/internal/analytics"
	"github.com/learntime/learntime/internal/daemon"
	"github.com/learntime/learntime/internal/notifier"
)

// daemonCmd runs the reminder delivery daemon.
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the reminder delivery daemon",
	Long: `Run the delivery daemon in the foreground. It sweeps for due
reminder triggers once a minute, delivers them to your configured webhooks,
and advances each trigger to its next weekly occurrence.

Stop it with Ctrl-C or SIGTERM.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	lock := daemon.NewPIDLock()
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	deliverer := notifier.NewDeliverer(ctx.Notifier, ctx.Dispatcher, ctx.Config.Daemon, ctx.Clock)

	// The daemon is the background process: its notification events are
	// tracked through a standalone analytics client.
	analytics.TrackBackgroundNotificationEvents(ctx.Notifier)

	if err := deliverer.Start(cmd.Context()); err != nil {
		return err
	}
	defer deliverer.Stop()

	ctx.Formatter.Println("Delivery daemon running. Press Ctrl-C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-cmd.Context().Done():
	}
	return nil
}
