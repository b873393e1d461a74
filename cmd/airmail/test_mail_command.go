package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"airmail/internal/mail"
)

// newTestMailCommand sends a canned message through the configured SMTP
// transport so operators can verify credentials before scheduling runs.
func newTestMailCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-mail",
		Short: "Send a test email through the configured SMTP transport",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				return err
			}

			sender, err := mail.NewSMTPSender(cfg.SMTP, logger)
			if err != nil {
				return err
			}

			msg := mail.Message{
				Subject: "airmail test message",
				HTML: fmt.Sprintf("<p>airmail SMTP test sent at %s.</p>",
					time.Now().Format(time.RFC1123)),
			}
			if err := sender.Send(cmd.Context(), msg); err != nil {
				return fmt.Errorf("test mail failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Test mail sent to %d recipient(s)\n", len(cfg.SMTP.To))
			return nil
		},
	}
}
