package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// bearerTransport injects a Bearer token into every request when a token is set.
type bearerTransport struct {
	base  http.RoundTripper
	token string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient creates an *http.Client for artifact downloads.
// timeout is the per-request deadline (0 = no timeout).
// token is automatically injected as a Bearer token on every request when non-empty.
func NewHTTPClient(timeout time.Duration, token string) *http.Client {
	token = strings.TrimSpace(token)
	base := http.DefaultTransport
	var transport http.RoundTripper = base
	if token != "" {
		transport = &bearerTransport{base: base, token: token}
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// readArtifact reads at most limit bytes of r and fails with ErrTooLarge
// instead of truncating.
func readArtifact(r io.Reader, name string, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("artifact %q: %w", name, ErrTooLarge)
	}
	return b, nil
}
