// Package fraudboard is the embeddable entry point: build a metrics source,
// run a load cycle and get back the dashboard view model without the CLI.
package fraudboard

import (
	"context"
	"strings"
	"time"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
	"github.com/idlab-discover/fraudboard-cli/internal/fallback"
	"github.com/idlab-discover/fraudboard-cli/internal/fetcher"
	"github.com/idlab-discover/fraudboard-cli/internal/repository"
)

type (
	ViewModel = dashboard.ViewModel
	Machine   = dashboard.Machine
	Source    = fetcher.Source
	Policy    = dashboard.Policy
)

const (
	PolicyDegrade = dashboard.PolicyDegrade
	PolicyStrict  = dashboard.PolicyStrict
)

// Options configures where artifacts come from and how failures are handled.
type Options struct {
	Source fetcher.Config

	// Artifact names; empty uses performance_metrics.json / pr_curve_data.json.
	MetricsName string
	CurveName   string

	// Timeout bounds each artifact retrieval. Zero uses the repository default.
	Timeout time.Duration

	Policy dashboard.Policy

	// DisableFallback makes every failure end in Failed.
	DisableFallback bool
}

// NewSource builds the artifact source described by opts.Source.
func NewSource(ctx context.Context, opts Options) (Source, error) {
	return fetcher.New(ctx, opts.Source)
}

// NewRepository wraps src with the artifact names and timeout from opts.
func NewRepository(src Source, opts Options) *repository.MetricsRepository {
	repo := repository.New(src)
	if n := strings.TrimSpace(opts.MetricsName); n != "" {
		repo.MetricsName = n
	}
	if n := strings.TrimSpace(opts.CurveName); n != "" {
		repo.CurveName = n
	}
	if opts.Timeout > 0 {
		repo.Timeout = opts.Timeout
	}
	return repo
}

// NewMachine builds a dashboard state machine over the configured source.
// extra options are applied after the ones derived from opts.
func NewMachine(ctx context.Context, opts Options, extra ...dashboard.Option) (*Machine, error) {
	src, err := NewSource(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewMachineFromSource(src, opts, extra...), nil
}

// NewMachineFromSource is NewMachine for a caller supplied source.
func NewMachineFromSource(src Source, opts Options, extra ...dashboard.Option) *Machine {
	mopts := []dashboard.Option{dashboard.WithPolicy(opts.Policy)}
	if opts.DisableFallback {
		mopts = append(mopts, dashboard.WithFallback(nil))
	} else {
		mopts = append(mopts, dashboard.WithFallback(fallback.Static{}))
	}
	mopts = append(mopts, extra...)
	return dashboard.New(NewRepository(src, opts), mopts...)
}

// Load runs a single cycle. The error is only for configuration problems;
// pipeline failures are reported through the view model's status.
func Load(ctx context.Context, opts Options) (ViewModel, error) {
	m, err := NewMachine(ctx, opts)
	if err != nil {
		return ViewModel{}, err
	}
	return m.Load(ctx), nil
}
