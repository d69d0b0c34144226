package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/learntime/learntime/internal/model"
	"github.com/learntime/learntime/internal/schedule"
)

// Remind command flags.
var (
	remindFlagDays string
	remindFlagTime string
)

// remindCmd represents the remind command.
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage learning reminders",
	Long: `Show and change your weekly learning reminders.

Examples:
  learntime remind
  learntime remind on --days mon,wed,fri --time 19:30
  learntime remind set --time 08:00
  learntime remind off`,
	RunE: runRemindShow,
}

// remindOnCmd switches reminders on.
var remindOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn reminders on",
	Long: `Turn reminders on, optionally changing the days and time in the
same step.

Examples:
  learntime remind on
  learntime remind on --days mon,thu --time 19:30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemindSave(cmd, true)
	},
}

// remindOffCmd switches reminders off.
var remindOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn reminders off",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemindSave(cmd, false)
	},
}

// remindSetCmd changes days or time without touching the master switch.
var remindSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change reminder days or time",
	Long: `Change the reminder days or time without toggling reminders on or
off.

Examples:
  learntime remind set --days sat,sun
  learntime remind set --time 07:45`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := ctx.Reminders.Settings()
		if err != nil {
			return err
		}
		return runRemindSave(cmd, settings.UseReminders)
	},
}

func init() {
	for _, c := range []*cobra.Command{remindOnCmd, remindSetCmd} {
		c.Flags().StringVarP(&remindFlagDays, "days", "d", "",
			"Comma-separated reminder days (e.g. 'mon,wed,fri')")
		c.Flags().StringVarP(&remindFlagTime, "time", "t", "",
			"Time of day reminders fire, 24-hour HH:MM")
	}

	remindCmd.AddCommand(remindOnCmd)
	remindCmd.AddCommand(remindOffCmd)
	remindCmd.AddCommand(remindSetCmd)

	rootCmd.AddCommand(remindCmd)
}

// runRemindShow prints the current reminder settings and permission state.
func runRemindShow(cmd *cobra.Command, args []string) error {
	settings, err := ctx.Reminders.Settings()
	if err != nil {
		return err
	}

	state, err := schedule.HasNotificationPermission(cmd.Context(), ctx.Notifier)
	if err != nil {
		return err
	}

	f := ctx.Formatter
	f.Println(f.Title("Learning reminders"))

	if settings.UseReminders {
		f.Printf("  Status: %s\n", f.Good("on"))
	} else {
		f.Printf("  Status: %s\n", f.Muted("off"))
	}

	days := settings.SelectedDays()
	if len(days) == 0 {
		f.Printf("  Days:   %s\n", f.Muted("none"))
	} else {
		names := make([]string, 0, len(days))
		for _, d := range days {
			names = append(names, d.String())
		}
		f.Printf("  Days:   %s\n", strings.Join(names, ", "))
	}

	f.Printf("  Time:   %s\n", settings.ReminderTime().Format("15:04"))
	f.Printf("  Permission: %s\n", state)

	show, err := ctx.Reminders.ShouldShowRemindersPrompt()
	if err != nil {
		return err
	}
	if show {
		f.Println()
		f.Println(f.Muted("Build a learning habit: 'learntime remind on --days mon,wed --time 19:30'"))
		if err := ctx.Reminders.MarkRemindersPromptShown(cmd.Context()); err != nil {
			return err
		}
	}
	return nil
}

// runRemindSave builds the new settings from the stored record plus flags
// and runs the save flow.
func runRemindSave(cmd *cobra.Command, useReminders bool) error {
	settings, err := ctx.Reminders.Settings()
	if err != nil {
		return err
	}
	settings.UseReminders = useReminders

	if remindFlagDays != "" {
		days, err := parseDays(remindFlagDays)
		if err != nil {
			return err
		}
		for _, d := range model.DaysOfWeek {
			settings.SetDay(d, false)
		}
		for _, d := range days {
			settings.SetDay(d, true)
		}
	}

	if remindFlagTime != "" {
		at, err := time.ParseInLocation("15:04", remindFlagTime, time.Local)
		if err != nil {
			return fmt.Errorf("invalid time %q, expected 24-hour HH:MM", remindFlagTime)
		}
		// Only hour and minute matter; anchor on the schema's reference date.
		settings.Time = time.Date(2000, time.January, 1, at.Hour(), at.Minute(), 0, 0, time.Local).UnixMilli()
	}

	outcome, err := ctx.Reminders.SaveSettings(cmd.Context(), settings)
	if err != nil {
		return err
	}

	printSaveOutcome(outcome)
	return nil
}

// parseDays parses a comma-separated day list.
func parseDays(s string) ([]model.DayOfWeek, error) {
	var days []model.DayOfWeek
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		day, ok := model.ParseDayOfWeek(part)
		if !ok {
			return nil, fmt.Errorf("unknown day %q", part)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no days given")
	}
	return days, nil
}
