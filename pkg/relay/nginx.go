// pkg/relay/nginx.go
//
// Two-stage reverse proxy config. Stage 1 (HTTP only) serves the ACME
// webroot challenge and a placeholder; stage 2 redirects to HTTPS,
// terminates TLS and proxies to the application over the private network.

package relay

import (
	"context"
	"fmt"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/templates"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const nginxHTTPTemplate = `server {
    listen 80;
    server_name {{ .Domain }};

    location /.well-known/acme-challenge/ {
        root /var/www/certbot;
    }

    location / {
        add_header Content-Type text/plain;
        return 200 'Deployment in progress. Check back soon.';
    }
}
`

const nginxHTTPSTemplate = `server {
    listen 80;
    server_name {{ .Domain }};

    location /.well-known/acme-challenge/ {
        root /var/www/certbot;
    }

    location / {
        return 301 https://$host$request_uri;
    }
}

server {
    listen 443 ssl;
    http2 on;
    server_name {{ .Domain }};

    ssl_certificate /etc/letsencrypt/live/{{ .Domain }}/fullchain.pem;
    ssl_certificate_key /etc/letsencrypt/live/{{ .Domain }}/privkey.pem;
    ssl_protocols TLSv1.2 TLSv1.3;
    ssl_prefer_server_ciphers on;

    client_max_body_size 64m;

    location / {
        proxy_pass http://{{ .Upstream }};
        proxy_http_version 1.1;
        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection "upgrade";
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;

        # Streaming responses can stay open for minutes.
        proxy_read_timeout 600s;
        proxy_send_timeout 600s;
        proxy_buffering off;
    }
}
`

type nginxData struct {
	Domain   string
	Upstream string
}

func nginxTemplateData(cfg *Config) nginxData {
	return nginxData{
		Domain:   cfg.Domain,
		Upstream: fmt.Sprintf("relay:%d", cfg.AppPort),
	}
}

// WriteNginxHTTP renders the stage-1 (challenge-serving) proxy config.
func WriteNginxHTTP(ctx context.Context, cfg *Config) error {
	return writeNginx(ctx, cfg, nginxHTTPTemplate, "http")
}

// WriteNginxHTTPS renders the stage-2 (TLS-terminating) proxy config,
// overwriting stage 1 in place.
func WriteNginxHTTPS(ctx context.Context, cfg *Config) error {
	return writeNginx(ctx, cfg, nginxHTTPSTemplate, "https")
}

func writeNginx(ctx context.Context, cfg *Config, tmpl, stage string) error {
	log := otelzap.Ctx(ctx)

	opts := templates.DefaultRenderOptions()
	opts.DisableRateLimiting = true
	if err := templates.NewRenderer(zap.L()).RenderToFile(
		ctx, tmpl, cfg.NginxConfPath(), nginxTemplateData(cfg), opts); err != nil {
		return cerr.Wrapf(err, "render %s proxy config", stage)
	}

	log.Info("Reverse proxy config rendered",
		zap.String("stage", stage),
		zap.String("path", cfg.NginxConfPath()))
	return nil
}
