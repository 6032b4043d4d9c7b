package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/exovance/site/internal/contact"
	"github.com/exovance/site/internal/logging"
	"github.com/exovance/site/internal/server"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	var (
		fields contact.Fields
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one contact message through the configured relay",
		Long: `Submit a contact message the same way the site form does.

Example:
  exovance send --name "Jane Doe" --email jane@example.com --message "Interested in your services."
  exovance send --name Jane --email jane@example.com --message hi --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(dryRun)
			if err != nil {
				return err
			}

			// Relay failure details go to stderr, the notice to stdout.
			logger := logging.NewWriterLogger(cmd.ErrOrStderr(), cfg.LogConfig())
			logging.SetGlobalLogger(logger)

			form := contact.NewController(contact.Config{
				Credentials: cfg.Credentials(),
				Mapping:     cfg.Mapping(),
			}, server.NewRelay(cfg, nil, logger), logger)

			out := cmd.OutOrStdout()
			s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " " + contact.LabelSending
			s.Start()
			outcome, err := form.Submit(cmd.Context(), fields)
			s.Stop()

			if outcome.Notice != "" {
				fmt.Fprintln(out, outcome.Notice)
			}

			if err == nil {
				return nil
			}
			var verr *contact.ValidationError
			if errors.As(err, &verr) {
				for _, fe := range verr.Fields {
					fmt.Fprintf(out, "  --%s: %s\n", fe.Field, describe(fe))
				}
			}
			return errSendFailed
		},
	}

	cmd.Flags().StringVar(&fields.Name, "name", "", "Sender name")
	cmd.Flags().StringVar(&fields.Email, "email", "", "Sender email address")
	cmd.Flags().StringVar(&fields.Message, "message", "", "Message body")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and report without sending")
	return cmd
}

func describe(fe contact.FieldError) string {
	switch fe.Tag {
	case "nonblank":
		return "is required"
	case "email":
		return "is not a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param)
	default:
		return fe.Tag
	}
}
