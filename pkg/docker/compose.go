// pkg/docker/compose.go

package docker

import (
	"context"
	"os/exec"
	"time"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/execute"
	cerr "github.com/cockroachdb/errors"
)

const composeTimeout = 10 * time.Minute

// composeArgv resolves the compose entrypoint. It prefers the modern
// "docker compose" plugin and falls back to the legacy docker-compose binary.
func composeArgv(args ...string) (string, []string, error) {
	if _, err := exec.LookPath("docker"); err == nil {
		return "docker", append([]string{"compose"}, args...), nil
	}
	if _, err := exec.LookPath("docker-compose"); err == nil {
		return "docker-compose", args, nil
	}
	return "", nil, cerr.New("neither docker CLI with compose plugin nor docker-compose found in PATH")
}

// Compose runs a compose subcommand against a compose file in dir.
func Compose(ctx context.Context, dir string, args ...string) error {
	name, argv, err := composeArgv(args...)
	if err != nil {
		return err
	}
	_, err = execute.Run(ctx, execute.Options{
		Command: name,
		Args:    argv,
		Dir:     dir,
		Timeout: composeTimeout,
	})
	return err
}

// ComposeUp starts all services declared in the compose file, detached.
func ComposeUp(ctx context.Context, dir string) error {
	return Compose(ctx, dir, "up", "-d")
}

// ComposeRestart restarts only the named services, leaving the rest running.
func ComposeRestart(ctx context.Context, dir string, services ...string) error {
	return Compose(ctx, dir, append([]string{"restart"}, services...)...)
}

// ComposeRunRm runs a one-off container for a service and removes it afterwards.
func ComposeRunRm(ctx context.Context, dir, service string, args ...string) error {
	argv := append([]string{"run", "--rm", service}, args...)
	return Compose(ctx, dir, argv...)
}
