// pkg/relay/status.go

package relay

import (
	"context"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/docker"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/git"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/platform"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Status is a point in time snapshot of a relay deployment.
type Status struct {
	RepoPresent bool
	Commit      string
	EnvPresent  bool
	ComposeFile bool
	ProxyStage  string // "none", "http" or "https"
	CertPresent bool
	FirewallOn  bool
	EngineOK    bool
	Services    map[string]string
	DNS         *DNSStatus
}

// Inspect gathers the deployment status without changing anything on the
// host. Individual probe failures degrade to "unknown" rather than aborting.
func Inspect(ctx context.Context, cfg *Config) *Status {
	log := otelzap.Ctx(ctx)
	st := &Status{ProxyStage: "none"}

	st.RepoPresent = git.Exists(cfg.Dir)
	if st.RepoPresent {
		if commit, err := git.CurrentCommit(cfg.Dir); err == nil {
			st.Commit = commit
		}
	}

	if _, err := os.Stat(cfg.EnvPath()); err == nil {
		st.EnvPresent = true
	}
	if _, err := os.Stat(cfg.ComposePath()); err == nil {
		st.ComposeFile = true
	}
	st.ProxyStage = proxyStage(cfg)
	st.CertPresent = CertificateExists(cfg)
	st.FirewallOn = platform.FirewallEnabled(ctx)

	if cli, err := docker.New(ctx); err == nil {
		defer cli.Close()
		if err := docker.Ping(ctx, cli); err == nil {
			st.EngineOK = true
			if services, err := docker.RunningServices(ctx, cli, ComposeProject); err == nil {
				st.Services = services
			}
		}
	}

	if dns, err := NewDNSChecker().Verify(ctx, cfg.Domain); err == nil {
		st.DNS = dns
	} else {
		log.Warn("DNS probe failed", zap.Error(err))
	}

	return st
}

// proxyStage sniffs the rendered nginx config to tell which deployment stage
// the proxy is in.
func proxyStage(cfg *Config) string {
	data, err := os.ReadFile(cfg.NginxConfPath())
	if err != nil {
		return "none"
	}
	if strings.Contains(string(data), "listen 443 ssl") {
		return "https"
	}
	return "http"
}
