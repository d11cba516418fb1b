// pkg/execute/retry.go

package execute

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_err"
)

// RetryCommand retries execution with live output and structured logging.
func RetryCommand(ctx context.Context, maxAttempts int, delay time.Duration, name string, args ...string) error {
	var lastErr error
	for i := 1; i <= maxAttempts; i++ {
		fmt.Printf("🔁 Attempt %d: %s %s\n", i, name, joinArgs(args))

		cmd := exec.CommandContext(ctx, name, args...)

		var buf bytes.Buffer
		cmd.Stdout = io.MultiWriter(os.Stdout, &buf)
		cmd.Stderr = io.MultiWriter(os.Stderr, &buf)

		err := cmd.Run()
		if err == nil {
			return nil
		}

		summary := janus_err.ExtractSummary(buf.String(), 2)
		lastErr = fmt.Errorf("attempt %d failed: %w\noutput:\n%s", i, err, summary)

		if i < maxAttempts {
			time.Sleep(delay)
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", maxAttempts, lastErr)
}
