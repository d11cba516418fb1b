// pkg/platform/packages.go

package platform

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// PackageUpdate refreshes the apt index and optionally upgrades installed
// packages. Debian/Ubuntu is the fixed target platform.
func PackageUpdate(ctx context.Context, upgrade bool) error {
	log := otelzap.Ctx(ctx)

	log.Info("Updating apt package index")
	if err := execute.RunSimple(ctx, "apt-get", "update"); err != nil {
		return cerr.Wrap(err, "apt-get update failed")
	}

	if !upgrade {
		return nil
	}

	log.Info("Upgrading installed packages")
	if _, err := execute.Run(ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"upgrade", "-y"},
		Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		Timeout: aptUpgradeTimeout,
	}); err != nil {
		return cerr.Wrap(err, "apt-get upgrade failed")
	}
	return nil
}

// InstallPackages installs the named apt packages non-interactively.
func InstallPackages(ctx context.Context, pkgs ...string) error {
	args := append([]string{"install", "-y"}, pkgs...)
	if _, err := execute.Run(ctx, execute.Options{
		Command: "apt-get",
		Args:    args,
		Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		Timeout: aptUpgradeTimeout,
	}); err != nil {
		return cerr.Wrapf(err, "apt-get install %v failed", pkgs)
	}
	return nil
}
