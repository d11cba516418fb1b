// pkg/relay/dns.go

package relay

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
)

// HostResolver is the lookup seam; *net.Resolver satisfies it.
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// DNSChecker compares the host's public address with the domain's DNS answer.
type DNSChecker struct {
	Resolver   HostResolver
	HTTPClient *http.Client
	IPEndpoint string
}

// DNSStatus is the outcome of a verification pass.
type DNSStatus struct {
	ServerIP string
	Records  []string
	Match    bool
}

// NewDNSChecker wires the system resolver and a short-timeout HTTP client.
func NewDNSChecker() *DNSChecker {
	return &DNSChecker{
		Resolver:   net.DefaultResolver,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		IPEndpoint: "https://ifconfig.me/ip",
	}
}

// PublicIP fetches the host's public address.
func (c *DNSChecker) PublicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.IPEndpoint, nil)
	if err != nil {
		return "", cerr.Wrap(err, "build public IP request")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", cerr.Wrap(err, "fetch public IP")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", cerr.Wrap(err, "read public IP response")
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", cerr.Newf("public IP endpoint returned %q", ip)
	}
	return ip, nil
}

// Resolve looks up the domain's A/AAAA records. A missing record is not an
// error: it returns an empty list so the caller can gate on operator input.
func (c *DNSChecker) Resolve(ctx context.Context, domain string) ([]string, error) {
	addrs, err := c.Resolver.LookupHost(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, nil
		}
		return nil, cerr.Wrapf(err, "resolve %s", domain)
	}
	return addrs, nil
}

// Verify resolves the domain and compares against the public IP.
func (c *DNSChecker) Verify(ctx context.Context, domain string) (*DNSStatus, error) {
	serverIP, err := c.PublicIP(ctx)
	if err != nil {
		return nil, err
	}

	records, err := c.Resolve(ctx, domain)
	if err != nil {
		return nil, err
	}

	status := &DNSStatus{ServerIP: serverIP, Records: records}
	for _, r := range records {
		if r == serverIP {
			status.Match = true
			break
		}
	}
	return status, nil
}
