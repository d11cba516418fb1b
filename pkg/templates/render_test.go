// pkg/templates/render_test.go

package templates

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noLimits() *RenderOptions {
	opts := DefaultRenderOptions()
	opts.DisableRateLimiting = true
	return opts
}

func TestRenderString(t *testing.T) {
	out, err := NewRenderer(nil).RenderString(context.Background(),
		"server_name {{ .Domain }};", map[string]string{"Domain": "relay.example.com"}, noLimits())
	require.NoError(t, err)
	assert.Equal(t, "server_name relay.example.com;", out)
}

func TestRenderStringParseError(t *testing.T) {
	_, err := NewRenderer(nil).RenderString(context.Background(),
		"{{ .Broken", nil, noLimits())
	assert.Error(t, err)
}

func TestRenderStringSizeLimit(t *testing.T) {
	opts := noLimits()
	opts.MaxSize = 8
	_, err := NewRenderer(nil).RenderString(context.Background(),
		strings.Repeat("x", 64), nil, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.conf")
	err := NewRenderer(nil).RenderToFile(context.Background(),
		"listen {{ .Port }};", path, map[string]int{"Port": 443}, noLimits())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "listen 443;", string(data))
}
