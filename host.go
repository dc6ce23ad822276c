package routedoc

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultIPEchoURL returns the caller's public IP as plain text.
const DefaultIPEchoURL = "https://checkip.amazonaws.com"

// IPResolver finds the public IP address of the running process.
type IPResolver interface {
	ResolveIP(ctx context.Context) (string, error)
}

// IPResolverFunc adapts a function to IPResolver.
type IPResolverFunc func(ctx context.Context) (string, error)

// ResolveIP calls f.
func (f IPResolverFunc) ResolveIP(ctx context.Context) (string, error) { return f(ctx) }

// HTTPIPResolver asks a plain-text IP echo service for the public address.
type HTTPIPResolver struct {
	URL    string       // default: DefaultIPEchoURL
	Client *http.Client // default: 5s timeout
}

// ResolveIP implements IPResolver.
func (h *HTTPIPResolver) ResolveIP(ctx context.Context) (string, error) {
	url := h.URL
	if url == "" {
		url = DefaultIPEchoURL
	}
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", err
	}
	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("GET %s: not an IP address: %q", url, ip)
	}
	return ip, nil
}

// resolveHost applies the localhost rule: "localhost" needs an explicit
// port and is swapped for the public IP, anything else is kept.
func resolveHost(ctx context.Context, host string, ips IPResolver) (string, error) {
	if host == "" {
		return "", configErrorf("host is required")
	}
	if !strings.Contains(host, "localhost") {
		return host, nil
	}

	parts := strings.Split(host, ":")
	if len(parts) != 2 || parts[1] == "" {
		return "", configErrorf("host %q: specify a port when host is localhost", host)
	}

	ip, err := ips.ResolveIP(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve public ip: %w", err)
	}
	return net.JoinHostPort(ip, parts[1]), nil
}
