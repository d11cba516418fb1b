// pkg/relay/compose.go
//
// Typed rendering of the multi-service orchestration descriptor: reverse
// proxy, certificate-renewal sidecar, application, cache. The proxy is the
// only service with published ports; everything else stays on the private
// network.

package relay

import (
	"context"
	"os"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const networkName = "relay-net"

// certbot's renewal loop; certificate issuance itself happens via
// `compose run --rm certbot certonly`.
const renewEntrypoint = `/bin/sh -c 'trap exit TERM; while :; do certbot renew --webroot -w /var/www/certbot --quiet; sleep 12h & wait $${!}; done'`

type composeService struct {
	Image         string   `yaml:"image"`
	ContainerName string   `yaml:"container_name,omitempty"`
	Restart       string   `yaml:"restart,omitempty"`
	Ports         []string `yaml:"ports,omitempty"`
	EnvFile       []string `yaml:"env_file,omitempty"`
	Environment   []string `yaml:"environment,omitempty"`
	Command       string   `yaml:"command,omitempty"`
	Entrypoint    string   `yaml:"entrypoint,omitempty"`
	Volumes       []string `yaml:"volumes,omitempty"`
	DependsOn     []string `yaml:"depends_on,omitempty"`
	Networks      []string `yaml:"networks,omitempty"`
}

type composeNetwork struct {
	Driver string `yaml:"driver"`
}

// composeFile keeps the service order stable across renders.
type composeFile struct {
	Name     string `yaml:"name"`
	Services struct {
		Nginx   composeService `yaml:"nginx"`
		Certbot composeService `yaml:"certbot"`
		Relay   composeService `yaml:"relay"`
		Redis   composeService `yaml:"redis"`
	} `yaml:"services"`
	Networks map[string]composeNetwork `yaml:"networks"`
}

// BuildCompose assembles the deployment descriptor for a config.
func BuildCompose(cfg *Config) *composeFile {
	f := &composeFile{Name: ComposeProject}

	f.Services.Nginx = composeService{
		Image:         cfg.NginxImage,
		ContainerName: "relay-nginx",
		Restart:       "unless-stopped",
		Ports:         []string{"80:80", "443:443"},
		Volumes: []string{
			"./nginx/conf.d:/etc/nginx/conf.d:ro",
			"./certbot/www:/var/www/certbot:ro",
			"./certbot/conf:/etc/letsencrypt:ro",
			"./logs/nginx:/var/log/nginx",
		},
		DependsOn: []string{"relay"},
		Networks:  []string{networkName},
	}

	f.Services.Certbot = composeService{
		Image:         cfg.CertbotImage,
		ContainerName: "relay-certbot",
		Restart:       "unless-stopped",
		Entrypoint:    renewEntrypoint,
		Volumes: []string{
			"./certbot/www:/var/www/certbot",
			"./certbot/conf:/etc/letsencrypt",
		},
		Networks: []string{networkName},
	}

	f.Services.Relay = composeService{
		Image:         cfg.AppImage,
		ContainerName: "relay-app",
		Restart:       "unless-stopped",
		EnvFile:       []string{".env"},
		Volumes: []string{
			"./logs:/app/logs",
			"./data:/app/data",
		},
		DependsOn: []string{"redis"},
		Networks:  []string{networkName},
	}

	f.Services.Redis = composeService{
		Image:         cfg.RedisImage,
		ContainerName: "relay-redis",
		Restart:       "unless-stopped",
		Command:       "redis-server --appendonly yes",
		Volumes:       []string{"./redis_data:/data"},
		Networks:      []string{networkName},
	}

	f.Networks = map[string]composeNetwork{
		networkName: {Driver: "bridge"},
	}

	return f
}

// WriteComposeFile renders the descriptor to the deploy dir. The render is
// static: repeated runs overwrite with identical content.
func WriteComposeFile(ctx context.Context, cfg *Config) error {
	log := otelzap.Ctx(ctx)

	data, err := yaml.Marshal(BuildCompose(cfg))
	if err != nil {
		return cerr.Wrap(err, "marshal compose descriptor")
	}

	if err := os.WriteFile(cfg.ComposePath(), data, 0644); err != nil {
		return cerr.Wrapf(err, "write %s", cfg.ComposePath())
	}

	log.Info("Compose descriptor rendered", zap.String("path", cfg.ComposePath()))
	return nil
}
