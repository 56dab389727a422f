package request

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	errs "followsnap/pkg/errors"
	"followsnap/pkg/instagram"
)

// RequiredHeaders must be present in a captured request. Without them the
// API answers with a login challenge.
var RequiredHeaders = []string{"Cookie", "X-IG-WWW-Claim"}

// skippedHeaders are dropped because the HTTP transport manages them or they
// pin the capture to a single connection
var skippedHeaders = map[string]bool{
	"host":            true,
	"content-length":  true,
	"connection":      true,
	"pragma":          true,
	"cache-control":   true,
	"accept-encoding": true,
	"priority":        true,
}

// RunConfig is everything a run needs to talk to the followers endpoint
type RunConfig struct {
	BaseURL  string
	TargetID string
	Headers  map[string]string
}

// Load reads a raw HTTP request captured from the browser's network tab
func Load(path string) (*RunConfig, error) {
	return LoadWithHost(path, instagram.BaseURL)
}

// LoadWithHost reads a captured request and builds its followers endpoint on host
func LoadWithHost(path, host string) (*RunConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.ErrorTypeConfig, fmt.Sprintf("request file not found: %s", path))
		}
		return nil, errs.Wrap(errs.ErrorTypeConfig, err, "failed to open request file")
	}
	defer file.Close()

	cfg, err := ParseWithHost(file, host)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads a captured request whose endpoint is served by www.instagram.com
func Parse(r io.Reader) (*RunConfig, error) {
	return ParseWithHost(r, instagram.BaseURL)
}

// ParseWithHost reads a captured request and builds its followers endpoint on host.
//
// The first line must be the request line, e.g.
//
//	GET /api/v1/friendships/123456789/followers/?count=12 HTTP/2
//
// Headers follow, one "Name: value" per line, until the first blank line.
func ParseWithHost(r io.Reader, host string) (*RunConfig, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errs.Wrap(errs.ErrorTypeConfig, err, "failed to read request")
		}
		return nil, errs.New(errs.ErrorTypeConfig, "request file is empty")
	}

	requestPath, err := parseRequestLine(scanner.Text())
	if err != nil {
		return nil, err
	}

	targetID, err := extractTargetID(requestPath)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || skippedHeaders[strings.ToLower(name)] {
			continue
		}
		headers[name] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeConfig, err, "failed to read request headers")
	}

	for _, required := range RequiredHeaders {
		if _, ok := headers[required]; !ok {
			return nil, errs.New(errs.ErrorTypeConfig,
				fmt.Sprintf("required header %q not found, capture a complete and fresh request", required))
		}
	}

	return &RunConfig{
		BaseURL:  instagram.GetFollowersEndpoint(host, targetID),
		TargetID: targetID,
		Headers:  headers,
	}, nil
}

// parseRequestLine returns the request path without its query string
func parseRequestLine(line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 || parts[0] != "GET" {
		return "", errs.New(errs.ErrorTypeConfig, "first line must be a request line starting with 'GET /...'")
	}

	path, _, _ := strings.Cut(parts[1], "?")
	if !strings.Contains(path, instagram.FriendshipsPath) {
		return "", errs.New(errs.ErrorTypeConfig,
			fmt.Sprintf("request path %q does not look like the followers API (expected %s)", path, instagram.FriendshipsPath))
	}
	return path, nil
}

// extractTargetID pulls the numeric account id out of /api/v1/friendships/{id}/followers/
func extractTargetID(path string) (string, error) {
	_, rest, _ := strings.Cut(path, instagram.FriendshipsPath)
	id, _, _ := strings.Cut(rest, "/")

	if id == "" || strings.IndexFunc(id, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return "", errs.New(errs.ErrorTypeConfig, fmt.Sprintf("could not extract a numeric target id from %q", path))
	}
	return id, nil
}
