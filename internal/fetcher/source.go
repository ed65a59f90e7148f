package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Source retrieves a named artifact as raw bytes.
// Implementations must not modify the artifact and must honour ctx.
type Source interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// Kind selects a Source implementation.
type Kind string

const (
	KindFile Kind = "file"
	KindHTTP Kind = "http"
	KindS3   Kind = "s3"
)

// ParseKind normalizes a user supplied source kind. Empty means file.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindFile, nil
	case KindFile, KindHTTP, KindS3:
		return k, nil
	default:
		return "", fmt.Errorf("unsupported source kind %q (expected file|http|s3)", s)
	}
}

// Config describes where artifacts live.
type Config struct {
	Kind Kind

	// file
	Dir string

	// http
	BaseURL string
	Token   string

	// s3 (Prefix is shared with http)
	Bucket string
	Prefix string
	Region string

	Timeout time.Duration
}

// New builds the Source described by cfg.
func New(ctx context.Context, cfg Config) (Source, error) {
	switch cfg.Kind {
	case KindFile, "":
		dir := strings.TrimSpace(cfg.Dir)
		if dir == "" {
			dir = DefaultDir
		}
		return &FileSource{Dir: dir}, nil
	case KindHTTP:
		if strings.TrimSpace(cfg.BaseURL) == "" {
			return nil, fmt.Errorf("http source requires a base URL")
		}
		return &HTTPSource{
			Client:  NewHTTPClient(cfg.Timeout, cfg.Token),
			BaseURL: cfg.BaseURL,
			Prefix:  cfg.Prefix,
		}, nil
	case KindS3:
		return NewS3Source(ctx, cfg.Bucket, cfg.Prefix, cfg.Region)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Kind)
	}
}
