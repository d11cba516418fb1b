// pkg/relay/env_test.go

package relay

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Domain:       "relay.example.com",
		Email:        "ops@example.com",
		Dir:          t.TempDir(),
		RepoURL:      DefaultRepoURL,
		Branch:       DefaultBranch,
		AppImage:     DefaultAppImage,
		RedisImage:   DefaultRedisImage,
		NginxImage:   DefaultNginxImage,
		CertbotImage: DefaultCertbotImage,
		AppPort:      DefaultAppPort,
	}
}

func TestEnsureEnvFileGeneratesSecrets(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	created, err := EnsureEnvFile(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	env, err := ReadEnvFile(cfg)
	require.NoError(t, err)

	assert.Len(t, env["JWT_SECRET"], 64)
	assert.Len(t, env["ENCRYPTION_KEY"], 32)
	assert.Equal(t, "admin", env["ADMIN_USERNAME"])
	assert.Len(t, env["ADMIN_PASSWORD"], 24)
	assert.Equal(t, "relay.example.com", env["DOMAIN"])
	assert.Equal(t, "ops@example.com", env["SSL_EMAIL"])
	assert.Equal(t, "0.0.0.0", env["BIND_HOST"])
	assert.Equal(t, "3000", env["PORT"])
	assert.Equal(t, "redis", env["REDIS_HOST"])
	assert.Equal(t, "6379", env["REDIS_PORT"])

	info, err := os.Stat(cfg.EnvPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEnsureEnvFilePreservesExisting(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	created, err := EnsureEnvFile(ctx, cfg)
	require.NoError(t, err)
	require.True(t, created)

	first, err := os.ReadFile(cfg.EnvPath())
	require.NoError(t, err)

	// A second run must not rotate secrets.
	created, err = EnsureEnvFile(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	second, err := os.ReadFile(cfg.EnvPath())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScaffoldDirsCoverMounts(t *testing.T) {
	cfg := testConfig(t)
	dirs := cfg.ScaffoldDirs()

	assert.Contains(t, dirs, filepath.Join(cfg.Dir, "nginx", "conf.d"))
	assert.Contains(t, dirs, cfg.WebrootDir())
	assert.Contains(t, dirs, cfg.LetsencryptDir())
}
