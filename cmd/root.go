/* cmd/root.go */

package cmd

import (
	"fmt"
	"os"
	"strings"

	janus "github.com/CodeMonkeyCybersecurity/janus/pkg/janus_cli"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_err"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	// Subcommands
	"github.com/CodeMonkeyCybersecurity/janus/cmd/deploy"
	"github.com/CodeMonkeyCybersecurity/janus/cmd/inspect"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/logger"
)

var helpLogged bool // log help only once per invocation

// RootCmd is the base command for janus.
var RootCmd = &cobra.Command{
	Use:   "janus",
	Short: "Janus CLI for single-host service deployment",
	Long: `Janus provisions a fresh host end to end: system packages, container
engine, firewall, application stack, reverse proxy and TLS certificates.`,

	RunE: janus.Wrap(func(rc *janus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		fmt.Println("No subcommand provided. Try `janus help`.")
		return cmd.Help()
	}),
}

// HelpCmd wraps help so that it can be invoked like a normal command.
var HelpCmd = &cobra.Command{
	Use:   "help",
	Short: "Help about any command",
	RunE: janus.Wrap(func(rc *janus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RootCmd.Help()
		}
		c, _, err := RootCmd.Find(args)
		if err != nil || c == nil {
			return fmt.Errorf("command not found: %s", strings.Join(args, " "))
		}
		return c.Help()
	}),
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.SetHelpCommand(HelpCmd)

	log := logger.GetLogger()

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if !helpLogged {
			log.Info("Help triggered", zap.String("command", cmd.Name()))
			helpLogged = true
		}
		if err := cmd.Root().Usage(); err != nil {
			log.Warn("Failed to print usage", zap.Error(err))
		}
	})

	for _, subCmd := range []*cobra.Command{
		deploy.DeployCmd,
		inspect.InspectCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command.
func Execute() {
	defer logger.SafeSync()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		if janus_err.IsExpectedUserError(err) {
			logger.L().Warn("CLI completed with user error", zap.Error(err))
			os.Exit(0)
		}
		janus_err.ExitWithError("command failed", err)
	}
}
