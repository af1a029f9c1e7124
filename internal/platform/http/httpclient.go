// Package http holds outbound HTTP helpers.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client for calls to external APIs such as the language model.
// http.DefaultClient has no timeout, so outbound calls always go through this one.
// Dial and TLS handshakes are bounded separately from the overall request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
