// cmd/inspect/inspect.go

package inspect

import (
	"github.com/CodeMonkeyCybersecurity/janus/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// InspectCmd is the root command for read-only status operations.
var InspectCmd = &cobra.Command{
	Use:     "inspect",
	Short:   "Inspect deployed services",
	Long:    `The inspect command reports the state of deployments on this host without changing anything.`,
	Aliases: []string{"read", "status"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.GetLogger()
		log.Info("No subcommand provided for inspect.", zap.String("command", cmd.Use))
		_ = cmd.Help()
	},
}

func init() {
	InspectCmd.AddCommand(InspectRelayCmd)
}
