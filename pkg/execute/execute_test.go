// pkg/execute/execute_test.go

package execute

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapture(t *testing.T) {
	out, err := Run(context.Background(), Options{
		Command: "echo",
		Args:    []string{"hello"},
		Capture: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunDryRunSkipsExecution(t *testing.T) {
	// A nonexistent binary must not fail in dry-run mode.
	out, err := Run(context.Background(), Options{
		Command: "definitely-not-a-real-binary",
		Args:    []string{"--flag"},
		DryRun:  true,
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunFailureWrapsSummary(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Command: "false",
		Capture: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "false")
}

func TestRunTimeout(t *testing.T) {
	start := time.Now()
	_, err := Run(context.Background(), Options{
		Command: "sleep",
		Args:    []string{"5"},
		Timeout: 100 * time.Millisecond,
		Capture: true,
	})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestRunTimeoutIsPerAttempt(t *testing.T) {
	// Every retry must actually start: a timed-out first attempt must not
	// leave the remaining attempts with an already-expired deadline.
	marker := filepath.Join(t.TempDir(), "attempts")
	_, err := Run(context.Background(), Options{
		Command: "sh",
		Args:    []string{"-c", fmt.Sprintf("echo x >> %s; sleep 5 >/dev/null 2>&1", marker)},
		Timeout: 200 * time.Millisecond,
		Retries: 2,
		Capture: true,
	})
	require.Error(t, err)

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "x"))
}

func TestCommandExists(t *testing.T) {
	assert.True(t, CommandExists("echo"))
	assert.False(t, CommandExists("definitely-not-a-real-binary"))
}
