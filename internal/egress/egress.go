package egress

import (
	"errors"
	"net"
	"net/http"
	"strings"
)

// ErrBlocked is returned for any request that does not target the pinned
// grammar-service host.
var ErrBlocked = errors.New("egress blocked")

// HostRoundTripper pins outbound requests to the single configured
// grammar-service host. Plain HTTP is allowed for loopback hosts only, so a
// local LanguageTool server works without TLS.
type HostRoundTripper struct {
	Base http.RoundTripper
	Host string
}

func NewHostRoundTripper(base http.RoundTripper, host string) *HostRoundTripper {
	return &HostRoundTripper{Base: base, Host: strings.ToLower(host)}
}

func (rt *HostRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL == nil {
		return nil, ErrBlocked
	}
	host := req.URL.Hostname()
	if host == "" || !strings.EqualFold(host, rt.Host) {
		return nil, ErrBlocked
	}
	if req.URL.Scheme != "https" && !isLoopback(host) {
		return nil, ErrBlocked
	}
	base := rt.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
