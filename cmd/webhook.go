package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learntime/learntime/internal/model"
)

// Webhook command flags.
var webhookFlagType string

// webhookCmd manages delivery targets.
var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage reminder delivery webhooks",
	Long: `Manage the webhooks reminders are delivered to.

Examples:
  learntime webhook add study https://discord.com/api/webhooks/...
  learntime webhook list
  learntime webhook remove study`,
	RunE: runWebhookList,
}

// webhookAddCmd registers a new webhook.
var webhookAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Add a delivery webhook",
	Args:  cobra.ExactArgs(2),
	RunE:  runWebhookAdd,
}

// webhookListCmd lists webhooks.
var webhookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List delivery webhooks",
	RunE:  runWebhookList,
}

// webhookRemoveCmd removes a webhook.
var webhookRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a delivery webhook",
	Args:    cobra.ExactArgs(1),
	RunE:    runWebhookRemove,
}

func init() {
	webhookAddCmd.Flags().StringVarP(&webhookFlagType, "type", "t", "",
		"Webhook type: discord, slack, generic (default: detect from URL)")

	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)

	rootCmd.AddCommand(webhookCmd)
}

func runWebhookAdd(cmd *cobra.Command, args []string) error {
	name, url := args[0], args[1]

	if !model.IsValidWebhookName(name) {
		return fmt.Errorf("invalid webhook name %q", name)
	}

	webhookType := webhookFlagType
	if webhookType == "" {
		webhookType = model.DetectWebhookType(url)
	}
	if !model.IsValidWebhookType(webhookType) {
		return fmt.Errorf("invalid webhook type %q", webhookType)
	}

	if err := ctx.WebhookRepo.Create(model.NewWebhook(name, webhookType, url)); err != nil {
		return err
	}

	ctx.Formatter.Printf("Added %s webhook %q\n", webhookType, name)
	return nil
}

func runWebhookList(cmd *cobra.Command, args []string) error {
	webhooks, err := ctx.WebhookRepo.List()
	if err != nil {
		return err
	}

	f := ctx.Formatter
	if len(webhooks) == 0 {
		f.Println(f.Muted("No webhooks configured."))
		return nil
	}

	for _, w := range webhooks {
		status := f.Good("ok")
		if !w.Enabled {
			status = f.Muted("disabled")
		} else if w.LastError != "" {
			status = f.Bad("failing")
		}
		f.Printf("%-20s %-8s %-8s %s\n", w.Name, w.Type, status, w.MaskedURL())
	}
	return nil
}

func runWebhookRemove(cmd *cobra.Command, args []string) error {
	if err := ctx.WebhookRepo.Delete(args[0]); err != nil {
		return err
	}
	ctx.Formatter.Printf("Removed webhook %q\n", args[0])
	return nil
}
