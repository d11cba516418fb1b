// pkg/docker/install.go

package docker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/platform"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// InstallEngine installs Docker CE and the compose plugin from Docker's apt
// repository. No version reconciliation happens for existing installs; callers
// guard with Installed() first.
func InstallEngine(ctx context.Context) error {
	log := otelzap.Ctx(ctx)

	log.Info("Removing conflicting container packages")
	for _, pkg := range []string{
		"docker.io", "docker-doc", "docker-compose", "docker-compose-v2",
		"podman-docker", "containerd", "runc",
	} {
		// Absent packages are expected; apt returns non-zero for them.
		_ = execute.RunSimple(ctx, "apt-get", "remove", "-y", pkg)
	}

	log.Info("Installing prerequisites and Docker GPG key")
	if err := platform.InstallPackages(ctx, "ca-certificates", "curl"); err != nil {
		return err
	}
	if err := execute.RunSimple(ctx, "install", "-m", "0755", "-d", "/etc/apt/keyrings"); err != nil {
		return cerr.Wrap(err, "create keyrings dir")
	}
	// The key fetch goes over the network; retry before giving up.
	if err := execute.RetryCommand(ctx, 3, 2*time.Second, "curl", "-fsSL",
		"https://download.docker.com/linux/ubuntu/gpg",
		"-o", "/etc/apt/keyrings/docker.asc"); err != nil {
		return cerr.Wrap(err, "fetch docker gpg key")
	}
	if err := execute.RunSimple(ctx, "chmod", "a+r", "/etc/apt/keyrings/docker.asc"); err != nil {
		return cerr.Wrap(err, "chmod docker gpg key")
	}

	if err := writeAptRepo(ctx); err != nil {
		return err
	}
	if err := execute.RunSimple(ctx, "apt-get", "update"); err != nil {
		return cerr.Wrap(err, "apt-get update after adding docker repo")
	}

	log.Info("Installing Docker engine and components")
	if err := platform.InstallPackages(ctx,
		"docker-ce", "docker-ce-cli", "containerd.io",
		"docker-buildx-plugin", "docker-compose-plugin",
	); err != nil {
		return err
	}

	if err := execute.RunSimple(ctx, "systemctl", "enable", "--now", "docker"); err != nil {
		log.Warn("Could not enable docker service", zap.Error(err))
	}
	return nil
}

func writeAptRepo(ctx context.Context) error {
	arch, err := execute.RunCapture(ctx, "dpkg", "--print-architecture")
	if err != nil {
		return cerr.Wrap(err, "detect dpkg architecture")
	}
	codename, err := execute.RunCapture(ctx, "bash", "-c", ". /etc/os-release && echo $VERSION_CODENAME")
	if err != nil {
		return cerr.Wrap(err, "detect ubuntu codename")
	}

	repoLine := fmt.Sprintf(
		"deb [arch=%s signed-by=/etc/apt/keyrings/docker.asc] https://download.docker.com/linux/ubuntu %s stable\n",
		arch, codename,
	)
	if err := os.WriteFile("/etc/apt/sources.list.d/docker.list", []byte(repoLine), 0644); err != nil {
		return cerr.Wrap(err, "write docker apt repo file")
	}
	return nil
}
