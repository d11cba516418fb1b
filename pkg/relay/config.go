// pkg/relay/config.go

package relay

import (
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Defaults for the relay deployment; overridable via /etc/janus/janus.yaml,
// JANUS_* environment variables, or flags.
const (
	DefaultRepoURL   = "https://github.com/Wei-Shaw/claude-relay-service.git"
	DefaultBranch    = "main"
	DefaultDeployDir = "/opt/claude-relay-service"

	DefaultAppImage     = "weishaw/claude-relay-service:latest"
	DefaultRedisImage   = "redis:7-alpine"
	DefaultNginxImage   = "nginx:alpine"
	DefaultCertbotImage = "certbot/certbot"

	DefaultAppPort  = 3000
	DefaultBindHost = "0.0.0.0"

	// ComposeProject is the compose project name used for container labels.
	ComposeProject = "relay"
)

// Config describes one relay deployment target.
type Config struct {
	Domain string `mapstructure:"domain" validate:"required,fqdn"`
	Email  string `mapstructure:"email" validate:"required,email"`
	Dir    string `mapstructure:"dir" validate:"required"`

	RepoURL string `mapstructure:"repo" validate:"required,url"`
	Branch  string `mapstructure:"branch"`

	AppImage     string `mapstructure:"app_image" validate:"required"`
	RedisImage   string `mapstructure:"redis_image" validate:"required"`
	NginxImage   string `mapstructure:"nginx_image" validate:"required"`
	CertbotImage string `mapstructure:"certbot_image" validate:"required"`

	AppPort int  `mapstructure:"app_port" validate:"required,min=1,max=65535"`
	Upgrade bool `mapstructure:"upgrade"`
	DryRun  bool `mapstructure:"dry_run"`
}

// NewViper builds the config source with defaults, the optional system config
// file and the JANUS_* env override layer.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("repo", DefaultRepoURL)
	v.SetDefault("branch", DefaultBranch)
	v.SetDefault("dir", DefaultDeployDir)
	v.SetDefault("app_image", DefaultAppImage)
	v.SetDefault("redis_image", DefaultRedisImage)
	v.SetDefault("nginx_image", DefaultNginxImage)
	v.SetDefault("certbot_image", DefaultCertbotImage)
	v.SetDefault("app_port", DefaultAppPort)
	v.SetDefault("upgrade", true)

	v.SetConfigName("janus")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/janus")
	v.AddConfigPath("$HOME/.janus")
	_ = v.ReadInConfig() // the config file is optional

	v.SetEnvPrefix("JANUS")
	v.AutomaticEnv()

	return v
}

// FromViper unmarshals and validates a deployment config.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cerr.Wrap(err, "unmarshal deploy config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config before any provisioning step runs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return cerr.WithHint(err, "invalid deploy configuration")
	}
	return nil
}

// FallbackEmail is used when the operator leaves the email prompt blank.
func FallbackEmail(domain string) string {
	return "admin@" + domain
}

// Filesystem layout under the deploy dir.

func (c *Config) EnvPath() string     { return filepath.Join(c.Dir, ".env") }
func (c *Config) ComposePath() string { return filepath.Join(c.Dir, "docker-compose.yml") }
func (c *Config) NginxConfPath() string {
	return filepath.Join(c.Dir, "nginx", "conf.d", "default.conf")
}
func (c *Config) WebrootDir() string     { return filepath.Join(c.Dir, "certbot", "www") }
func (c *Config) LetsencryptDir() string { return filepath.Join(c.Dir, "certbot", "conf") }
func (c *Config) CertLiveDir() string    { return filepath.Join(c.LetsencryptDir(), "live", c.Domain) }
func (c *Config) FullchainPath() string  { return filepath.Join(c.CertLiveDir(), "fullchain.pem") }

// ScaffoldDirs are the bind-mount directories created under the deploy dir.
func (c *Config) ScaffoldDirs() []string {
	return []string{
		filepath.Join(c.Dir, "logs"),
		filepath.Join(c.Dir, "logs", "nginx"),
		filepath.Join(c.Dir, "data"),
		filepath.Join(c.Dir, "redis_data"),
		filepath.Join(c.Dir, "nginx", "conf.d"),
		c.WebrootDir(),
		c.LetsencryptDir(),
	}
}
