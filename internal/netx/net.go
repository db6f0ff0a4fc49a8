// Package netx holds network helpers used outside the launch pipeline.
package netx

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

// dialContext is a test seam for net.Dialer.DialContext.
var dialContext = func(ctx context.Context, timeout time.Duration, addr string) (net.Conn, error) {
	d := &net.Dialer{Timeout: timeout}
	return d.DialContext(ctx, "tcp", addr)
}

// ProbeTCP tries a TCP connect to host:port within timeout. A completed
// handshake means online, a refused or timed-out connect means offline, and
// an empty or unresolvable host means unknown.
func ProbeTCP(ctx context.Context, host string, port int, timeout time.Duration) models.HostStatus {
	host = strings.TrimSpace(host)
	if host == "" {
		return models.HostUnknown
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := dialContext(ctx, timeout, net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && !dnsErr.IsTimeout {
			return models.HostUnknown
		}
		return models.HostOffline
	}
	_ = conn.Close()
	return models.HostOnline
}
