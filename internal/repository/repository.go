// Package repository retrieves the two evaluation artifacts (summary metrics
// and precision-recall curve) and validates their shape.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idlab-discover/fraudboard-cli/internal/fetcher"
	"github.com/idlab-discover/fraudboard-cli/internal/results"
)

const (
	DefaultMetricsName = "performance_metrics.json"
	DefaultCurveName   = "pr_curve_data.json"
	DefaultTimeout     = 10 * time.Second
)

// Results is the validated content of both artifacts.
type Results struct {
	Metrics results.PerformanceMetrics
	Curve   results.RawCurveData
}

// MetricsRepository loads evaluation results from a fetcher.Source.
// It performs a single attempt per call; retrying is the caller's decision.
type MetricsRepository struct {
	Source      fetcher.Source
	MetricsName string
	CurveName   string
	// Timeout bounds each retrieval. A retrieval that exceeds it counts as NotFound.
	Timeout time.Duration
}

// New returns a repository with the default artifact names and timeout.
func New(src fetcher.Source) *MetricsRepository {
	return &MetricsRepository{
		Source:      src,
		MetricsName: DefaultMetricsName,
		CurveName:   DefaultCurveName,
		Timeout:     DefaultTimeout,
	}
}

// outcome is the result of retrieving and validating one artifact.
type outcome struct {
	name   string
	label  string
	kind   Kind // zero on success
	detail string
	err    error
}

func (o outcome) failed() bool { return o.kind != 0 }

// FetchResults retrieves both artifacts concurrently and waits for both
// outcomes before reporting.
func (r *MetricsRepository) FetchResults(ctx context.Context) (Results, error) {
	metricsName := nameOr(r.MetricsName, DefaultMetricsName)
	curveName := nameOr(r.CurveName, DefaultCurveName)

	started := time.Now()
	var (
		res  Results
		mOut outcome
		cOut outcome
		g    errgroup.Group
	)

	// Both goroutines always return nil so Wait joins on both outcomes.
	g.Go(func() error {
		mOut = r.load(ctx, metricsName, "metrics", func(raw []byte, payload any) error {
			if err := validate(metricsDocSchema, payload); err != nil {
				return err
			}
			return json.Unmarshal(raw, &res.Metrics)
		})
		return nil
	})
	g.Go(func() error {
		cOut = r.load(ctx, curveName, "curve", func(raw []byte, payload any) error {
			if err := validate(curveDocSchema, payload); err != nil {
				return err
			}
			if err := json.Unmarshal(raw, &res.Curve); err != nil {
				return err
			}
			if n, m := len(res.Curve.Recall), len(res.Curve.Precision); n != m {
				return fmt.Errorf("length mismatch: %d recall values, %d precision values", n, m)
			}
			return nil
		})
		return nil
	})
	_ = g.Wait()

	err := combine(mOut, cOut)
	if err != nil {
		logf(ctx, "fetch failed after %s: %v", time.Since(started).Round(time.Millisecond), err)
		return Results{}, err
	}
	logf(ctx, "fetched %s and %s in %s (%d curve points)",
		metricsName, curveName, time.Since(started).Round(time.Millisecond), len(res.Curve.Recall))
	return res, nil
}

func (r *MetricsRepository) load(ctx context.Context, name, label string, decode func(raw []byte, payload any) error) outcome {
	out := outcome{name: name, label: label}
	if r.Source == nil {
		out.kind = NotFound
		out.detail = fmt.Sprintf("%s artifact %q unavailable: no source configured", label, name)
		return out
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := r.Source.Get(fctx, name)
	if errors.Is(err, fetcher.ErrTooLarge) {
		out.kind = Malformed
		out.err = err
		out.detail = fmt.Sprintf("%s artifact %q is malformed: %v", label, name, err)
		logf(ctx, "%s", out.detail)
		return out
	}
	if err != nil {
		out.kind = NotFound
		out.err = err
		switch {
		case fetcher.IsNotFound(err):
			out.detail = fmt.Sprintf("%s artifact %q not found", label, name)
		case fetcher.IsUnauthorized(err):
			out.detail = fmt.Sprintf("%s artifact %q unavailable: access denied, check --token or the source credentials", label, name)
		case errors.Is(err, context.DeadlineExceeded):
			out.detail = fmt.Sprintf("%s artifact %q not retrieved: timed out after %s", label, name, timeout)
		default:
			out.detail = fmt.Sprintf("%s artifact %q unavailable: %v", label, name, err)
		}
		logf(ctx, "%s", out.detail)
		return out
	}

	canonical, payload, err := normalize(name, raw)
	if err == nil {
		err = decode(canonical, payload)
	}
	if err != nil {
		out.kind = Malformed
		out.err = err
		out.detail = fmt.Sprintf("%s artifact %q is malformed: %v", label, name, err)
		logf(ctx, "%s", out.detail)
	}
	return out
}

func combine(m, c outcome) error {
	switch {
	case !m.failed() && !c.failed():
		return nil
	case m.failed() != c.failed():
		bad, good := m, c
		if c.failed() {
			bad, good = c, m
		}
		return &RepositoryError{
			Kind:     PartialFailure,
			Artifact: bad.name,
			Cause:    bad.kind,
			Detail:   fmt.Sprintf("partial failure: %s (%s artifact loaded)", bad.detail, good.label),
			Err:      bad.err,
		}
	default:
		kind := Malformed
		if m.kind == NotFound || c.kind == NotFound {
			kind = NotFound
		}
		return &RepositoryError{
			Kind:   kind,
			Cause:  kind,
			Detail: strings.Join([]string{m.detail, c.detail}, "; "),
			Err:    errors.Join(m.err, c.err),
		}
	}
}

func nameOr(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
