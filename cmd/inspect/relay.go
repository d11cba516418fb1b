// cmd/inspect/relay.go

package inspect

import (
	"fmt"
	"sort"
	"strings"

	janus "github.com/CodeMonkeyCybersecurity/janus/pkg/janus_cli"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_io"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/relay"
	"github.com/spf13/cobra"
)

// InspectRelayCmd reports the state of a relay deployment: checkout, rendered
// artifacts, certificate, engine and DNS. Read-only.
var InspectRelayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Show the state of the relay deployment on this host",

	RunE: janus.Wrap(func(rc *janus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		v := relay.NewViper()
		for _, flag := range []string{"domain", "dir"} {
			if err := v.BindPFlag(flag, cmd.Flags().Lookup(flag)); err != nil {
				return err
			}
		}
		// Inspection only needs domain and dir; fill the validated fields.
		if v.GetString("email") == "" {
			v.Set("email", relay.FallbackEmail(v.GetString("domain")))
		}

		cfg, err := relay.FromViper(v)
		if err != nil {
			return err
		}

		st := relay.Inspect(rc.Ctx, cfg)

		fmt.Printf("Deployment:  %s\n", cfg.Dir)
		fmt.Printf("Checkout:    %s\n", presence(st.RepoPresent, st.Commit))
		fmt.Printf("Env file:    %s\n", yesNo(st.EnvPresent))
		fmt.Printf("Compose:     %s\n", yesNo(st.ComposeFile))
		fmt.Printf("Proxy stage: %s\n", st.ProxyStage)
		fmt.Printf("Certificate: %s\n", yesNo(st.CertPresent))
		fmt.Printf("Firewall:    %s\n", yesNo(st.FirewallOn))
		fmt.Printf("Engine:      %s\n", yesNo(st.EngineOK))
		if len(st.Services) > 0 {
			names := make([]string, 0, len(st.Services))
			for name := range st.Services {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %-10s %s\n", name, st.Services[name])
			}
		}
		if st.DNS != nil {
			fmt.Printf("DNS:         %s -> [%s] (host %s, match=%v)\n",
				cfg.Domain, strings.Join(st.DNS.Records, ", "), st.DNS.ServerIP, st.DNS.Match)
		}
		return nil
	}),
}

func presence(ok bool, detail string) string {
	if !ok {
		return "missing"
	}
	if detail == "" {
		return "present"
	}
	return "present @ " + detail
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func init() {
	InspectRelayCmd.Flags().String("domain", "", "Domain the deployment serves")
	InspectRelayCmd.Flags().String("dir", relay.DefaultDeployDir, "Deployment directory")

	_ = InspectRelayCmd.MarkFlagRequired("domain")
}
