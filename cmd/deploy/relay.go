// cmd/deploy/relay.go

package deploy

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/interaction"
	janus "github.com/CodeMonkeyCybersecurity/janus/pkg/janus_cli"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_err"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_io"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/relay"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DeployRelayCmd provisions the full relay stack on this host: packages,
// docker engine, firewall, checkout, env file, compose stack, reverse proxy
// and TLS certificate.
var DeployRelayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Deploy the relay service with TLS on this host",
	Long: `Provision the relay service end to end on the local machine.

The deployment is resumable: re-running converges each step instead of
redoing it. Existing secrets in the env file are never regenerated.`,

	RunE: janus.Wrap(func(rc *janus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		v := relay.NewViper()
		for _, flag := range []string{"domain", "email", "dir", "repo", "branch", "dry_run"} {
			name := flag
			if name == "dry_run" {
				name = "dry-run"
			}
			if err := v.BindPFlag(flag, cmd.Flags().Lookup(name)); err != nil {
				return err
			}
		}

		if v.GetString("domain") == "" {
			if !interaction.IsTTY() {
				return janus_err.NewExpectedError(
					cerr.New("--domain is required when not running interactively"))
			}
			v.Set("domain", interaction.PromptRequired("Domain the service will be reached at"))
		}

		// The contact email may be left to a prompt when running on a
		// terminal; otherwise fall back to an admin alias on the domain.
		if v.GetString("email") == "" {
			domain := v.GetString("domain")
			fallback := relay.FallbackEmail(domain)
			if interaction.IsTTY() {
				v.Set("email", interaction.PromptInput("Contact email for certificate notices", fallback))
			} else {
				v.Set("email", fallback)
			}
		}

		cfg, err := relay.FromViper(v)
		if err != nil {
			return janus_err.NewExpectedError(err)
		}

		if cfg.DryRun {
			execute.DefaultDryRun = true
			rc.Log.Info("Dry-run mode: system commands will be logged, not executed")
		}

		if interaction.IsTTY() && !cfg.DryRun {
			if !interaction.PromptYesNo(fmt.Sprintf(
				"Deploy %s to this host? System packages, firewall and docker will be modified", cfg.Domain), true) {
				return janus_err.NewExpectedError(janus_err.ErrAborted)
			}
		}

		rc.Log.Info("Starting relay deployment",
			zap.String("domain", cfg.Domain),
			zap.String("dir", cfg.Dir))

		return relay.New(cfg).Run(rc.Ctx)
	}),
}

func init() {
	DeployRelayCmd.Flags().String("domain", "", "Fully qualified domain name the service will be reached at")
	DeployRelayCmd.Flags().String("email", "", "Contact email for certificate expiry notices")
	DeployRelayCmd.Flags().String("dir", relay.DefaultDeployDir, "Deployment directory")
	DeployRelayCmd.Flags().String("repo", relay.DefaultRepoURL, "Git repository to deploy from")
	DeployRelayCmd.Flags().String("branch", relay.DefaultBranch, "Git branch to deploy")
	DeployRelayCmd.Flags().Bool("dry-run", false, "Log system commands instead of executing them")
}
