// pkg/relay/compose_test.go

package relay

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuildComposeOnlyProxyPublishesPorts(t *testing.T) {
	f := BuildCompose(testConfig(t))

	assert.Equal(t, []string{"80:80", "443:443"}, f.Services.Nginx.Ports)
	assert.Empty(t, f.Services.Certbot.Ports)
	assert.Empty(t, f.Services.Relay.Ports)
	assert.Empty(t, f.Services.Redis.Ports)
}

func TestBuildComposeWiring(t *testing.T) {
	f := BuildCompose(testConfig(t))

	assert.Equal(t, ComposeProject, f.Name)
	assert.Equal(t, []string{"relay"}, f.Services.Nginx.DependsOn)
	assert.Equal(t, []string{"redis"}, f.Services.Relay.DependsOn)
	assert.Equal(t, []string{".env"}, f.Services.Relay.EnvFile)
	assert.Contains(t, f.Services.Certbot.Entrypoint, "certbot renew")
	assert.Contains(t, f.Services.Redis.Command, "--appendonly yes")

	for _, svc := range []composeService{
		f.Services.Nginx, f.Services.Certbot, f.Services.Relay, f.Services.Redis,
	} {
		assert.Equal(t, []string{networkName}, svc.Networks)
		assert.Equal(t, "unless-stopped", svc.Restart)
	}
	assert.Equal(t, "bridge", f.Networks[networkName].Driver)
}

func TestWriteComposeFileIsStable(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	require.NoError(t, WriteComposeFile(ctx, cfg))
	first, err := os.ReadFile(cfg.ComposePath())
	require.NoError(t, err)

	require.NoError(t, WriteComposeFile(ctx, cfg))
	second, err := os.ReadFile(cfg.ComposePath())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The output must parse back as a generic compose document.
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(first, &doc))
	services, ok := doc["services"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, services, 4)
}
