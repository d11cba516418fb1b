// pkg/execute/execute.go

package execute

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_err"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultLogger is used when Options.Logger is nil.
var DefaultLogger *zap.Logger

// DefaultDryRun forces dry-run mode globally (set by the --dry-run flag).
var DefaultDryRun bool

// Options configures a single subprocess invocation. Shell execution is not
// supported; arguments are always passed as an argv.
type Options struct {
	Command string
	Args    []string
	Dir     string
	Env     []string
	Capture bool
	Timeout time.Duration
	Retries int
	Delay   time.Duration
	DryRun  bool
	Logger  *zap.Logger
}

// Run executes a command with structured logging and proper error handling.
func Run(ctx context.Context, opts Options) (string, error) {
	cmdStr := buildCommandString(opts.Command, opts.Args...)

	log := opts.Logger
	if log == nil {
		log = DefaultLogger
	}
	if log == nil {
		log = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	spanCtx, span := telemetry.Start(ctx, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)

	if opts.DryRun || DefaultDryRun {
		log.Info("Dry run mode - command not executed", zap.String("command", cmdStr))
		return "", nil
	}

	log.Debug("Starting execution", zap.String("command", cmdStr))

	var output string
	var err error

	for i := 1; i <= max(1, opts.Retries); i++ {
		// Each attempt gets its own deadline; a timed-out first attempt
		// must not eat the budget of the retries.
		attemptCtx, cancel := context.WithTimeout(spanCtx, defaultTimeout(opts.Timeout))

		cmd := exec.CommandContext(attemptCtx, opts.Command, opts.Args...)
		if opts.Dir != "" {
			cmd.Dir = opts.Dir
		}
		if len(opts.Env) > 0 {
			cmd.Env = append(os.Environ(), opts.Env...)
		}

		var buf bytes.Buffer
		if opts.Capture {
			cmd.Stdout = &buf
			cmd.Stderr = &buf
		} else {
			cmd.Stdout = io.MultiWriter(os.Stdout, &buf)
			cmd.Stderr = io.MultiWriter(os.Stderr, &buf)
		}

		err = cmd.Run()
		cancel()
		output = buf.String()

		if err == nil {
			log.Debug("Execution succeeded", zap.String("command", cmdStr))
			break
		}

		summary := janus_err.ExtractSummary(output, 2)
		span.RecordError(err)
		log.Error("Execution failed", zap.Error(err),
			zap.Int("attempt", i),
			zap.String("command", cmdStr),
			zap.String("summary", summary),
		)

		if i < opts.Retries {
			time.Sleep(opts.Delay)
		}
	}

	if err != nil {
		return output, cerr.Wrapf(err, "command %q failed", cmdStr)
	}

	if opts.Capture {
		return strings.TrimSpace(output), nil
	}
	return "", nil
}

// RunSimple executes a command with minimal options and structured logging.
func RunSimple(ctx context.Context, cmd string, args ...string) error {
	_, err := Run(ctx, Options{
		Command: cmd,
		Args:    args,
	})
	return err
}

// RunCapture executes a command and returns its trimmed combined output.
func RunCapture(ctx context.Context, cmd string, args ...string) (string, error) {
	return Run(ctx, Options{
		Command: cmd,
		Args:    args,
		Capture: true,
	})
}

// joinArgs joins command arguments with quoting for visibility in logs.
func joinArgs(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		quoted = append(quoted, fmt.Sprintf("'%s'", arg))
	}
	return strings.Join(quoted, " ")
}
