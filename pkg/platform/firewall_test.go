// pkg/platform/firewall_test.go

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFirewallBackend(t *testing.T) {
	// No assertion on the concrete backend: the test host may or may not
	// carry ufw. The probe must return one of the known values.
	backend := DetectFirewallBackend()
	assert.Contains(t, []FirewallBackend{BackendUFW, BackendFirewalld, BackendNone}, backend)
}
