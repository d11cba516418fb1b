// pkg/docker/check.go

package docker

import (
	"context"
	"os/exec"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/execute"
)

// Installed reports whether the docker CLI is resolvable on PATH.
func Installed() bool {
	_, err := exec.LookPath("docker")
	return err == nil
}

// ComposeAvailable checks for either the compose plugin or the legacy
// docker-compose binary.
func ComposeAvailable(ctx context.Context) bool {
	if _, err := execute.RunCapture(ctx, "docker", "compose", "version"); err == nil {
		return true
	}
	if _, err := execute.RunCapture(ctx, "docker-compose", "version"); err == nil {
		return true
	}
	return false
}
