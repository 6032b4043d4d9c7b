package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/exovance/site/internal/config"
	"github.com/exovance/site/internal/logging"
	"github.com/exovance/site/internal/version"

	"github.com/spf13/cobra"
)

// errSendFailed marks a send whose notice was already printed.
var errSendFailed = errors.New("message not sent")

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "exovance",
		Short: "Exovance site service",
		Long: `Exovance runs the marketing site backend: the static site and the
contact form relay to EmailJS.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newSendCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "exovance %s\n", version.Info())
		},
	}
}

// loadConfig reads configuration, forcing dry-run first when asked so that
// missing credentials are not an error.
func loadConfig(dryRun bool) (*config.Config, error) {
	if dryRun {
		if err := os.Setenv("RELAY_DRY_RUN", "true"); err != nil {
			return nil, err
		}
	}
	return config.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSendFailed) {
			logging.GetGlobalLogger().Error("Command execution failed: %v", err)
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
