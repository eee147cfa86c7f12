package main

import (
	"errors"

	"github.com/spf13/cobra"

	"culler/internal/notifications"
)

func newNotifyCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Notification utilities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test notification through the configured channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Ntfy.Topic == "" && !cfg.Email.Enabled {
				return errors.New("no notification channel configured; set ntfy.topic or enable [email]")
			}
			if err := notifications.NewService(cfg).TestNotification(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("test notification sent")
			return nil
		},
	})

	return cmd
}
