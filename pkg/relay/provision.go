// pkg/relay/provision.go

package relay

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/docker"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/git"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/platform"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// firewallRules are the inbound allowances the relay host needs. SSH stays
// open so the operator is never locked out by the enable step.
var firewallRules = []string{"OpenSSH", "80/tcp", "443/tcp"}

// Provisioner drives the end to end deployment of the relay stack on the
// local host. The function fields exist so tests can substitute the
// privileged system operations.
type Provisioner struct {
	Cfg *Config

	PackageUpdate   func(ctx context.Context, upgrade bool) error
	DockerInstalled func() bool
	ComposeOK       func(ctx context.Context) bool
	InstallDocker   func(ctx context.Context) error
	OpenFirewall    func(ctx context.Context, rules []string) error
	SyncRepo        func(ctx context.Context, url, branch, dir string) (*git.SyncResult, error)
	ComposeUp       func(ctx context.Context, dir string) error
	ComposeRestart  func(ctx context.Context, dir string, services ...string) error
	RequestCert     func(ctx context.Context, cfg *Config) error
	CertExists      func(cfg *Config) bool
	DNS             *DNSChecker

	// Confirm blocks until the operator acknowledges a manual step.
	Confirm func(message string)
}

// New returns a Provisioner wired to the real system operations.
func New(cfg *Config) *Provisioner {
	return &Provisioner{
		Cfg:             cfg,
		PackageUpdate:   platform.PackageUpdate,
		DockerInstalled: docker.Installed,
		ComposeOK:       docker.ComposeAvailable,
		InstallDocker:   docker.InstallEngine,
		OpenFirewall:    platform.OpenFirewall,
		SyncRepo:        git.Sync,
		ComposeUp:       docker.ComposeUp,
		ComposeRestart:  docker.ComposeRestart,
		RequestCert:     RequestCertificate,
		CertExists:      CertificateExists,
		DNS:             NewDNSChecker(),
		Confirm:         interaction.PromptToContinue,
	}
}

// Run executes the deployment sequence. It is safe to re-run on a host where
// a previous attempt stopped partway: every step either converges or skips.
func (p *Provisioner) Run(ctx context.Context) error {
	log := otelzap.Ctx(ctx)
	cfg := p.Cfg

	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Info("Deploying relay stack",
		zap.String("domain", cfg.Domain),
		zap.String("dir", cfg.Dir))

	if err := p.PackageUpdate(ctx, cfg.Upgrade); err != nil {
		return cerr.Wrap(err, "update system packages")
	}

	if err := p.ensureDocker(ctx); err != nil {
		return err
	}

	if err := p.OpenFirewall(ctx, firewallRules); err != nil {
		return cerr.Wrap(err, "configure firewall")
	}

	if err := p.syncSources(ctx); err != nil {
		return err
	}

	if _, err := EnsureEnvFile(ctx, cfg); err != nil {
		return err
	}

	if err := WriteComposeFile(ctx, cfg); err != nil {
		return err
	}

	// Stage 1 proxy: plain HTTP so the ACME challenge path is reachable
	// before any certificate exists.
	if err := WriteNginxHTTP(ctx, cfg); err != nil {
		return err
	}

	if err := p.ComposeUp(ctx, cfg.Dir); err != nil {
		return cerr.Wrap(err, "start relay stack")
	}
	p.reportServices(ctx)

	if err := p.verifyDNS(ctx); err != nil {
		return err
	}

	if err := p.ensureCertificate(ctx); err != nil {
		return err
	}

	// Stage 2 proxy: rewrite to TLS and bounce only nginx so the app and
	// redis keep their state.
	if err := WriteNginxHTTPS(ctx, cfg); err != nil {
		return err
	}
	if err := p.ComposeRestart(ctx, cfg.Dir, "nginx"); err != nil {
		return cerr.Wrap(err, "restart nginx")
	}

	log.Info("Deployment complete",
		zap.String("url", "https://"+cfg.Domain))
	return nil
}

func (p *Provisioner) ensureDocker(ctx context.Context) error {
	log := otelzap.Ctx(ctx)
	if p.DockerInstalled() {
		log.Info("Docker already installed, skipping engine install")
	} else if err := p.InstallDocker(ctx); err != nil {
		return cerr.Wrap(err, "install docker engine")
	}

	if !p.ComposeOK(ctx) {
		return cerr.WithHint(
			cerr.New("docker compose is not available"),
			"install the docker-compose-plugin package or the legacy docker-compose binary",
		)
	}
	return nil
}

func (p *Provisioner) syncSources(ctx context.Context) error {
	log := otelzap.Ctx(ctx)
	cfg := p.Cfg

	res, err := p.SyncRepo(ctx, cfg.RepoURL, cfg.Branch, cfg.Dir)
	if err != nil {
		return cerr.Wrapf(err, "sync %s into %s", cfg.RepoURL, cfg.Dir)
	}
	if res.Cloned {
		log.Info("Cloned repository",
			zap.String("branch", res.Branch),
			zap.String("commit", res.Commit))
	} else {
		log.Info("Updated existing checkout",
			zap.String("branch", res.Branch),
			zap.String("commit", res.Commit))
	}

	for _, dir := range cfg.ScaffoldDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cerr.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

// reportServices inspects the running compose project via the engine API.
// Purely informational: a probe failure never aborts the deployment.
func (p *Provisioner) reportServices(ctx context.Context) {
	log := otelzap.Ctx(ctx)

	cli, err := docker.New(ctx)
	if err != nil {
		log.Warn("Cannot query docker engine", zap.Error(err))
		return
	}
	defer cli.Close()

	services, err := docker.RunningServices(ctx, cli, ComposeProject)
	if err != nil {
		log.Warn("Cannot list project containers", zap.Error(err))
		return
	}
	for name, state := range services {
		log.Info("Service state",
			zap.String("service", name),
			zap.String("state", state))
	}
}

func (p *Provisioner) verifyDNS(ctx context.Context) error {
	log := otelzap.Ctx(ctx)
	cfg := p.Cfg

	status, err := p.DNS.Verify(ctx, cfg.Domain)
	if err != nil {
		return cerr.Wrapf(err, "verify DNS for %s", cfg.Domain)
	}

	switch {
	case len(status.Records) == 0:
		log.Warn("Domain does not resolve yet",
			zap.String("domain", cfg.Domain),
			zap.String("server_ip", status.ServerIP))
		p.Confirm(fmt.Sprintf(
			"Create an A record for %s pointing at %s, wait for it to propagate, then press Enter to continue",
			cfg.Domain, status.ServerIP))
	case !status.Match:
		log.Warn("Domain resolves to a different address, certificate issuance may fail",
			zap.String("domain", cfg.Domain),
			zap.String("server_ip", status.ServerIP),
			zap.String("resolved", strings.Join(status.Records, ", ")))
	default:
		log.Info("DNS verified",
			zap.String("domain", cfg.Domain),
			zap.String("server_ip", status.ServerIP))
	}
	return nil
}

func (p *Provisioner) ensureCertificate(ctx context.Context) error {
	log := otelzap.Ctx(ctx)
	cfg := p.Cfg

	if p.CertExists(cfg) {
		log.Info("Certificate already present, skipping issuance",
			zap.String("path", cfg.FullchainPath()))
		return nil
	}
	return p.RequestCert(ctx, cfg)
}
