package competition

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint is one registered solver, addressed by a stable name used in
// logs, metrics, and the competition audit trail.
type Endpoint struct {
	Name string
	URL  string
}

// ParseEndpoint parses a "name|url" solver registration.
func ParseEndpoint(s string) (Endpoint, error) {
	name, rawURL, found := strings.Cut(s, "|")
	if !found {
		return Endpoint{}, fmt.Errorf("solver endpoint %q: expected name|url", s)
	}
	name = strings.TrimSpace(name)
	rawURL = strings.TrimSpace(rawURL)
	if name == "" {
		return Endpoint{}, fmt.Errorf("solver endpoint %q: empty name", s)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Endpoint{}, fmt.Errorf("solver endpoint %q: %w", s, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Endpoint{}, fmt.Errorf("solver endpoint %q: unsupported scheme %q", s, parsed.Scheme)
	}
	if parsed.Host == "" {
		return Endpoint{}, fmt.Errorf("solver endpoint %q: missing host", s)
	}

	return Endpoint{Name: name, URL: rawURL}, nil
}

// ParseEndpoints parses a list of "name|url" registrations and rejects
// duplicate names.
func ParseEndpoints(raw []string) ([]Endpoint, error) {
	endpoints := make([]Endpoint, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		endpoint, err := ParseEndpoint(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[endpoint.Name]; ok {
			return nil, fmt.Errorf("duplicate solver name %q", endpoint.Name)
		}
		seen[endpoint.Name] = struct{}{}
		endpoints = append(endpoints, endpoint)
	}
	return endpoints, nil
}
