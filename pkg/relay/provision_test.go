// pkg/relay/provision_test.go

package relay

import (
	"context"
	"testing"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/git"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvisioner records the order of privileged operations while the
// file-rendering steps run for real against the temp deploy dir.
type fakeProvisioner struct {
	*Provisioner
	calls []string
}

func newFakeProvisioner(t *testing.T, resolver HostResolver) *fakeProvisioner {
	t.Helper()
	cfg := testConfig(t)

	f := &fakeProvisioner{Provisioner: New(cfg)}
	record := func(name string) { f.calls = append(f.calls, name) }

	f.PackageUpdate = func(context.Context, bool) error {
		record("packages")
		return nil
	}
	f.DockerInstalled = func() bool { return true }
	f.ComposeOK = func(context.Context) bool { return true }
	f.InstallDocker = func(context.Context) error {
		record("install-docker")
		return nil
	}
	f.OpenFirewall = func(_ context.Context, rules []string) error {
		record("firewall")
		assert.Equal(t, firewallRules, rules)
		return nil
	}
	f.SyncRepo = func(_ context.Context, _, branch, _ string) (*git.SyncResult, error) {
		record("sync")
		return &git.SyncResult{Cloned: true, Branch: branch, Commit: "abc1234"}, nil
	}
	f.ComposeUp = func(context.Context, string) error {
		record("up")
		return nil
	}
	f.ComposeRestart = func(_ context.Context, _ string, services ...string) error {
		record("restart")
		assert.Equal(t, []string{"nginx"}, services)
		return nil
	}
	f.RequestCert = func(context.Context, *Config) error {
		record("cert")
		return nil
	}
	f.CertExists = func(*Config) bool { return false }
	f.DNS = newTestChecker(t, "203.0.113.7", resolver)
	f.Confirm = func(string) { record("confirm") }

	return f
}

func matchingResolver() HostResolver {
	return &fakeResolver{addrs: map[string][]string{
		"relay.example.com": {"203.0.113.7"},
	}}
}

func TestRunHappyPathOrder(t *testing.T) {
	f := newFakeProvisioner(t, matchingResolver())

	require.NoError(t, f.Run(context.Background()))

	assert.Equal(t,
		[]string{"packages", "firewall", "sync", "up", "cert", "restart"},
		f.calls)

	// All artifacts rendered, proxy at the TLS stage.
	assert.FileExists(t, f.Cfg.EnvPath())
	assert.FileExists(t, f.Cfg.ComposePath())
	assert.Equal(t, "https", proxyStage(f.Cfg))
}

func TestRunInstallsDockerWhenMissing(t *testing.T) {
	f := newFakeProvisioner(t, matchingResolver())
	f.DockerInstalled = func() bool { return false }

	require.NoError(t, f.Run(context.Background()))
	assert.Contains(t, f.calls, "install-docker")
}

func TestRunGatesOnMissingDNSRecord(t *testing.T) {
	f := newFakeProvisioner(t, &fakeResolver{})

	require.NoError(t, f.Run(context.Background()))

	// The operator gate fires after the stack is up and before issuance.
	confirmAt, certAt := -1, -1
	for i, c := range f.calls {
		switch c {
		case "confirm":
			confirmAt = i
		case "cert":
			certAt = i
		}
	}
	require.GreaterOrEqual(t, confirmAt, 0)
	require.GreaterOrEqual(t, certAt, 0)
	assert.Less(t, confirmAt, certAt)
}

func TestRunAbortsBeforeTLSOnCertFailure(t *testing.T) {
	f := newFakeProvisioner(t, matchingResolver())
	f.RequestCert = func(context.Context, *Config) error {
		return cerr.New("challenge validation failed")
	}

	err := f.Run(context.Background())
	require.Error(t, err)

	// The proxy config must stay at the challenge-serving stage and nginx
	// must not be restarted into a config pointing at missing cert files.
	assert.Equal(t, "http", proxyStage(f.Cfg))
	assert.NotContains(t, f.calls, "restart")
}

func TestRunSkipsIssuanceWhenCertPresent(t *testing.T) {
	f := newFakeProvisioner(t, matchingResolver())
	f.CertExists = func(*Config) bool { return true }

	require.NoError(t, f.Run(context.Background()))
	assert.NotContains(t, f.calls, "cert")
	assert.Equal(t, "https", proxyStage(f.Cfg))
}

func TestRunFailsWithoutCompose(t *testing.T) {
	f := newFakeProvisioner(t, matchingResolver())
	f.ComposeOK = func(context.Context) bool { return false }

	require.Error(t, f.Run(context.Background()))
	assert.NotContains(t, f.calls, "up")
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	f := newFakeProvisioner(t, matchingResolver())
	f.Cfg.Domain = "not a domain"

	require.Error(t, f.Run(context.Background()))
	assert.Empty(t, f.calls)
}
