// Package fallback supplies the synthetic dataset shown when real evaluation
// results cannot be loaded. The values are cosmetic placeholders.
package fallback

import "github.com/idlab-discover/fraudboard-cli/internal/results"

// Provider returns a renderable dataset without doing any I/O.
type Provider interface {
	SyntheticResult() results.Result
}

// Static is the default Provider. It always returns the same dataset.
type Static struct{}

// SyntheticResult returns a fresh copy of the built-in dataset.
func (Static) SyntheticResult() results.Result {
	curve := make(results.Curve, len(syntheticCurve))
	copy(curve, syntheticCurve)
	return results.Result{Metrics: syntheticMetrics, Curve: curve}
}

// Func adapts a plain function to the Provider interface.
type Func func() results.Result

func (f Func) SyntheticResult() results.Result { return f() }

var syntheticMetrics = results.PerformanceMetrics{
	BestThreshold: 0.40,
	Recall:        0.54,
	Precision:     0.54,
	F1Score:       0.542,
}

// sorted by recall
var syntheticCurve = results.Curve{
	{Recall: 0.00, Precision: 1.00},
	{Recall: 0.10, Precision: 0.97},
	{Recall: 0.20, Precision: 0.93},
	{Recall: 0.30, Precision: 0.88},
	{Recall: 0.40, Precision: 0.80},
	{Recall: 0.50, Precision: 0.66},
	{Recall: 0.54, Precision: 0.54},
	{Recall: 0.60, Precision: 0.41},
	{Recall: 0.70, Precision: 0.27},
	{Recall: 0.85, Precision: 0.12},
	{Recall: 1.00, Precision: 0.02},
}
