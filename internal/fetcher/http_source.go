package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultHTTPPrefix is the path under BaseURL where artifacts are published.
const DefaultHTTPPrefix = "data"

// MaxArtifactBytes bounds how much of a remote artifact is read.
const MaxArtifactBytes = 8 << 20

// HTTPSource downloads artifacts from <BaseURL>/<Prefix>/<name>.
type HTTPSource struct {
	Client  *http.Client
	BaseURL string
	Prefix  string // optional; defaults to DefaultHTTPPrefix
}

func (s *HTTPSource) Get(ctx context.Context, name string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	u, err := s.artifactURL(name)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	logf("GET %s", u)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ArtifactError{Name: name, StatusCode: resp.StatusCode}
	}
	return readArtifact(resp.Body, name, MaxArtifactBytes)
}

func (s *HTTPSource) artifactURL(name string) (string, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if baseURL == "" {
		return "", fmt.Errorf("http source: empty base URL")
	}
	prefix := strings.Trim(strings.TrimSpace(s.Prefix), "/")
	if prefix == "" {
		prefix = DefaultHTTPPrefix
	}
	return url.JoinPath(baseURL, prefix, strings.TrimPrefix(name, "/"))
}
