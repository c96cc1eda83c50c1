// Package http holds HTTP plumbing shared by outbound integrations.
package http

import (
	"net"
	"net/http"
	"time"
)

// gatewayIdleConns is sized for a single upstream host (the SMS gateway).
const gatewayIdleConns = 10

// NewHTTPClient creates an HTTP client for calls to an external gateway.
// timeout bounds the whole request; http.DefaultClient has none.
func NewHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          gatewayIdleConns,
			MaxIdleConnsPerHost:   gatewayIdleConns,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ResponseHeaderTimeout: timeout,
			ExpectContinueTimeout: time.Second,
		},
	}
}
