// pkg/relay/certbot.go

package relay

import (
	"context"
	"os"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/docker"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CertificateExists reports whether a certificate for the configured domain
// is already present under the letsencrypt volume.
func CertificateExists(cfg *Config) bool {
	_, err := os.Stat(cfg.FullchainPath())
	return err == nil
}

// RequestCertificate performs a single HTTP-01 webroot issuance attempt via
// the compose certbot service. The stage-1 proxy must already be serving the
// challenge path. Any failure here is fatal for the deployment: the caller
// must not render the TLS proxy config afterwards.
func RequestCertificate(ctx context.Context, cfg *Config) error {
	log := otelzap.Ctx(ctx)

	log.Info("Requesting certificate",
		zap.String("domain", cfg.Domain),
		zap.String("email", cfg.Email))

	err := docker.ComposeRunRm(ctx, cfg.Dir, "certbot",
		"certonly",
		"--webroot",
		"--webroot-path", "/var/www/certbot",
		"--domain", cfg.Domain,
		"--email", cfg.Email,
		"--agree-tos",
		"--no-eff-email",
		"--non-interactive",
	)
	if err != nil {
		return cerr.WithHint(
			cerr.Wrapf(err, "certificate issuance for %s failed", cfg.Domain),
			"check that the domain's DNS record points at this host and that ports 80/443 are reachable from the internet",
		)
	}

	log.Info("Certificate issued", zap.String("path", cfg.FullchainPath()))
	return nil
}
