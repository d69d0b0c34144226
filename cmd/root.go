// Package cmd provides the CLI commands for LearnTime.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/learntime/learntime/internal/logging"
	"github.com/learntime/learntime/internal/output"
	"github.com/learntime/learntime/internal/runtime"
	"github.com/learntime/learntime/internal/schedule"
)

// Version information (set at build time via ldflags).
var (
	Version = "dev"
	Commit  = "unknown"
)

// Global flags.
var (
	flagColor string
	flagDebug bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "learntime",
	Short: "Learning reminders for your terminal",
	Long: `LearnTime keeps you learning with weekly recurring reminders.

Pick the days and the time of day you want to be nudged, run the delivery
daemon, and reminders arrive on your configured webhooks.

Examples:
  learntime remind on --days mon,wed,fri --time 19:30
  learntime remind off
  learntime webhook add study https://discord.com/api/webhooks/...
  learntime daemon`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		logCfg := logging.DefaultConfig()
		if flagDebug {
			logCfg = logging.DebugConfig()
		}
		logging.Init(logCfg)

		opts := runtime.DefaultOptions()
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		var err error
		ctx, err = runtime.New(opts)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show the current reminder status.
		return runRemindShow(cmd, args)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug logging")
}

// printSaveOutcome reports the result of a settings save the way the
// settings screen would.
func printSaveOutcome(outcome schedule.SaveOutcome) {
	f := ctx.Formatter
	switch outcome {
	case schedule.OutcomeEnabled:
		f.Println(f.Good("Reminders on. Keep up the learning habit!"))
	case schedule.OutcomeUpdated:
		f.Println(f.Good("Reminders updated"))
	case schedule.OutcomeCancelled:
		f.Println("Reminders cancelled")
	case schedule.OutcomePermissionRequired:
		f.Println(f.Bad("Notification permission required."))
		f.Println(f.Muted("Run 'learntime permission grant' and try again."))
	case schedule.OutcomeUnchanged:
		f.Println("Settings saved")
	}
}
