package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"airmail/internal/compose"
	"airmail/internal/history"
	"airmail/internal/logging"
	"airmail/internal/mail"
	"airmail/internal/notify"
	"airmail/internal/state"
	"airmail/internal/tvmaze"
)

// newRunCommand builds the scheduled entry point. The command always exits
// zero: unattended scheduler invocations must not trip on transient
// failures, so everything is reported through the log instead.
func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Check for changes and send a notification if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				// Config errors abort before any network call, but still
				// exit zero for the scheduler's sake.
				fmt.Fprintf(os.Stderr, "config error: %v\n", err)
				return nil
			}

			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "logging error: %v\n", err)
				return nil
			}

			source, err := tvmaze.New(cfg.TVMaze.BaseURL,
				tvmaze.WithTimeout(time.Duration(cfg.TVMaze.RequestTimeout)*time.Second))
			if err != nil {
				logger.Error("build tvmaze client", logging.Err(err))
				return nil
			}

			composer, err := compose.NewComposer(cfg.Paths.TemplateDir)
			if err != nil {
				logger.Error("load templates", logging.Err(err))
				return nil
			}

			sender, err := mail.NewSMTPSender(cfg.SMTP, logger)
			if err != nil {
				logger.Error("build smtp sender", logging.Err(err))
				return nil
			}

			var hist *history.Store
			if cfg.History.Enabled {
				hist, err = history.Open(cfg.History.Path)
				if err != nil {
					// History is informational; a broken database must not
					// block the notification itself.
					logger.Warn("open history store", logging.Err(err))
				} else {
					defer hist.Close()
				}
			}

			states := state.NewStore(cfg.Paths.StateDir, logger)
			runner := notify.NewRunner(cfg, logger, source, states, composer, sender, hist,
				notify.WithLockFile(cfg.LockFilePath()))

			result := runner.Run(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), summarize(result))
			return nil
		},
	}
}

func summarize(result notify.Result) string {
	switch result.Status {
	case notify.StatusSent:
		return fmt.Sprintf("Sent: %s", result.Subject)
	case notify.StatusFetchFailed:
		return "No data from episode source; nothing sent"
	case notify.StatusSendFailed:
		return "Notification due but sending failed; state unchanged"
	case notify.StatusSkipped:
		return "Another run is in progress; skipped"
	default:
		return "No change detected"
	}
}
