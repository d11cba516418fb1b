// pkg/platform/firewall.go

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const aptUpgradeTimeout = 15 * time.Minute

// FirewallBackend identifies the host firewall tool in use.
type FirewallBackend string

const (
	BackendUFW       FirewallBackend = "ufw"
	BackendFirewalld FirewallBackend = "firewalld"
	BackendNone      FirewallBackend = "none"
)

// DetectFirewallBackend probes PATH for a supported firewall tool.
func DetectFirewallBackend() FirewallBackend {
	if _, err := exec.LookPath("ufw"); err == nil {
		return BackendUFW
	}
	if _, err := exec.LookPath("firewall-cmd"); err == nil {
		return BackendFirewalld
	}
	return BackendNone
}

// OpenFirewall allows the given rules (port specs or ufw app profiles such as
// "OpenSSH") and enables the firewall. Safe to rerun: both backends treat
// already-present rules as a no-op.
func OpenFirewall(ctx context.Context, rules []string) error {
	log := otelzap.Ctx(ctx)

	switch DetectFirewallBackend() {
	case BackendUFW:
		log.Info("Using UFW for firewall changes", zap.Strings("rules", rules))
		return openUFW(ctx, rules)
	case BackendFirewalld:
		log.Info("Using firewalld for firewall changes", zap.Strings("rules", rules))
		return openFirewalld(ctx, rules)
	default:
		return fmt.Errorf("no supported firewall backend (ufw, firewalld)")
	}
}

// FirewallStatus returns a human-readable status dump from the active backend.
func FirewallStatus(ctx context.Context) (string, error) {
	switch DetectFirewallBackend() {
	case BackendUFW:
		return execute.RunCapture(ctx, "ufw", "status", "verbose")
	case BackendFirewalld:
		return execute.RunCapture(ctx, "firewall-cmd", "--list-all")
	default:
		return "", fmt.Errorf("no supported firewall backend (ufw, firewalld)")
	}
}

// FirewallEnabled reports whether the active backend is enforcing rules.
func FirewallEnabled(ctx context.Context) bool {
	status, err := FirewallStatus(ctx)
	if err != nil {
		return false
	}
	return strings.Contains(status, "Status: active") || strings.Contains(status, "running")
}

func openUFW(ctx context.Context, rules []string) error {
	log := otelzap.Ctx(ctx)

	for _, rule := range rules {
		if err := execute.RunSimple(ctx, "ufw", "allow", rule); err != nil {
			return cerr.Wrapf(err, "ufw allow %s", rule)
		}
	}

	// --force avoids the interactive "may disrupt ssh" confirmation.
	if err := execute.RunSimple(ctx, "ufw", "--force", "enable"); err != nil {
		return cerr.Wrap(err, "ufw enable")
	}

	if err := execute.RunSimple(ctx, "ufw", "reload"); err != nil {
		log.Warn("ufw reload failed", zap.Error(err))
	}
	return nil
}

func openFirewalld(ctx context.Context, rules []string) error {
	if err := execute.RunSimple(ctx, "firewall-cmd", "--state"); err != nil {
		return cerr.Wrap(err, "firewalld not running")
	}

	for _, rule := range rules {
		arg := "--add-port=" + rule
		if !strings.Contains(rule, "/") {
			// App-profile rules ("OpenSSH") map onto firewalld service names.
			svc := strings.ToLower(rule)
			if svc == "openssh" {
				svc = "ssh"
			}
			arg = "--add-service=" + svc
		}
		if err := execute.RunSimple(ctx, "firewall-cmd", "--permanent", arg); err != nil {
			return cerr.Wrapf(err, "firewall-cmd %s", arg)
		}
	}

	return execute.RunSimple(ctx, "firewall-cmd", "--reload")
}
