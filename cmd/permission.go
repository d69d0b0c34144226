package cmd

import (
	"github.com/spf13/cobra"

	"github.com/learntime/learntime/internal/notifier"
	"github.com/learntime/learntime/internal/schedule"
)

// permissionCmd shows the current notification permission state.
var permissionCmd = &cobra.Command{
	Use:   "permission",
	Short: "Show or change notification permission",
	Long: `Show the current notification permission state, or change it.

The permission mirrors a mobile notification consent: undetermined until
first asked, then granted or denied.

Examples:
  learntime permission
  learntime permission grant
  learntime permission deny
  learntime permission reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := schedule.HasNotificationPermission(cmd.Context(), ctx.Notifier)
		if err != nil {
			return err
		}
		ctx.Formatter.Printf("Notification permission: %s\n", state)
		return nil
	},
}

// permissionGrantCmd grants notification permission.
var permissionGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Grant notification permission",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPermission(notifier.AuthorizationAuthorized)
	},
}

// permissionDenyCmd denies notification permission.
var permissionDenyCmd = &cobra.Command{
	Use:   "deny",
	Short: "Deny notification permission",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPermission(notifier.AuthorizationDenied)
	},
}

// permissionResetCmd resets permission to the never-asked state.
var permissionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset notification permission to undetermined",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPermission(notifier.AuthorizationNotDetermined)
	},
}

func init() {
	permissionCmd.AddCommand(permissionGrantCmd)
	permissionCmd.AddCommand(permissionDenyCmd)
	permissionCmd.AddCommand(permissionResetCmd)

	rootCmd.AddCommand(permissionCmd)
}

func setPermission(status notifier.AuthorizationStatus) error {
	if err := ctx.Notifier.SetAuthorizationStatus(status); err != nil {
		return err
	}
	ctx.Formatter.Printf("Notification permission set to %s\n", status)
	return nil
}
