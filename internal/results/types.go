// Package results holds the evaluation result types shown on the dashboard and
// the transformer that turns raw precision-recall arrays into a plottable curve.
package results

// PerformanceMetrics are the summary statistics of the classifier at its
// chosen operating point. All values are in [0,1].
type PerformanceMetrics struct {
	BestThreshold float64 `json:"best_threshold" yaml:"best_threshold"`
	Recall        float64 `json:"recall" yaml:"recall"`
	Precision     float64 `json:"precision" yaml:"precision"`
	F1Score       float64 `json:"f1_score" yaml:"f1_score"`
}

// RawCurveData is the precision-recall curve as stored in the curve artifact:
// two index-aligned arrays.
type RawCurveData struct {
	Recall    []float64 `json:"recall" yaml:"recall"`
	Precision []float64 `json:"precision" yaml:"precision"`
}

// CurvePoint is one (recall, precision) pair.
type CurvePoint struct {
	Recall    float64 `json:"recall"`
	Precision float64 `json:"precision"`
}

// Curve is a sequence of points ordered by non-decreasing recall.
type Curve []CurvePoint

// Clone returns a copy that does not share the backing array.
func (c Curve) Clone() Curve {
	if c == nil {
		return nil
	}
	out := make(Curve, len(c))
	copy(out, c)
	return out
}

// Recalls returns the x values of the curve.
func (c Curve) Recalls() []float64 {
	xs := make([]float64, len(c))
	for i, p := range c {
		xs[i] = p.Recall
	}
	return xs
}

// Precisions returns the y values of the curve.
func (c Curve) Precisions() []float64 {
	ys := make([]float64, len(c))
	for i, p := range c {
		ys[i] = p.Precision
	}
	return ys
}

// Result is a complete, renderable dataset.
type Result struct {
	Metrics PerformanceMetrics
	Curve   Curve
}
