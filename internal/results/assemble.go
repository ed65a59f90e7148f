package results

import (
	"fmt"
	"sort"
)

// Assemble pairs raw.Recall[i] with raw.Precision[i] and returns the points
// stably sorted by ascending recall. The input is not modified.
func Assemble(raw RawCurveData) (Curve, error) {
	if len(raw.Recall) != len(raw.Precision) {
		return nil, &TransformError{
			Kind: LengthMismatch,
			Detail: fmt.Sprintf("curve length mismatch: %d recall values, %d precision values",
				len(raw.Recall), len(raw.Precision)),
		}
	}
	if len(raw.Recall) == 0 {
		return nil, &TransformError{Kind: Empty, Detail: "curve is empty: no points to plot"}
	}

	curve := make(Curve, len(raw.Recall))
	for i := range raw.Recall {
		curve[i] = CurvePoint{Recall: raw.Recall[i], Precision: raw.Precision[i]}
	}
	sort.SliceStable(curve, func(i, j int) bool { return curve[i].Recall < curve[j].Recall })
	return curve, nil
}
