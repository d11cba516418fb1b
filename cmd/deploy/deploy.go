// cmd/deploy/deploy.go

package deploy

import (
	"github.com/CodeMonkeyCybersecurity/janus/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DeployCmd is the root command for deployment operations.
var DeployCmd = &cobra.Command{
	Use:     "deploy",
	Short:   "Deploy services onto this host",
	Long:    `The deploy command provisions and starts services on the local machine.`,
	Aliases: []string{"create", "install"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.GetLogger()
		log.Info("No subcommand provided for deploy.", zap.String("command", cmd.Use))
		_ = cmd.Help()
	},
}

func init() {
	DeployCmd.AddCommand(DeployRelayCmd)
}
