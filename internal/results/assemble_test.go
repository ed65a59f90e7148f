package results

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestAssemble_SortedInputUnchanged(t *testing.T) {
	raw := RawCurveData{
		Recall:    []float64{0, 0.5, 1.0},
		Precision: []float64{1.0, 0.8, 0.4},
	}
	got, err := Assemble(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Curve{{0, 1.0}, {0.5, 0.8}, {1.0, 0.4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Assemble() = %v, want %v", got, want)
	}
}

func TestAssemble_UnsortedInputIsSorted(t *testing.T) {
	raw := RawCurveData{
		Recall:    []float64{1.0, 0.0, 0.5},
		Precision: []float64{0.4, 1.0, 0.8},
	}
	got, err := Assemble(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Curve{{0, 1.0}, {0.5, 0.8}, {1.0, 0.4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Assemble() = %v, want %v", got, want)
	}
	// input must not be reordered
	if raw.Recall[0] != 1.0 || raw.Precision[0] != 0.4 {
		t.Fatalf("input was mutated: %+v", raw)
	}
}

func TestAssemble_TiesKeepInputOrder(t *testing.T) {
	raw := RawCurveData{
		Recall:    []float64{0.5, 0.2, 0.5, 0.5, 0.2},
		Precision: []float64{0.9, 0.1, 0.8, 0.7, 0.2},
	}
	got, err := Assemble(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Curve{{0.2, 0.1}, {0.2, 0.2}, {0.5, 0.9}, {0.5, 0.8}, {0.5, 0.7}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Assemble() = %v, want %v", got, want)
	}
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawCurveData
		mismatch bool
		empty    bool
	}{
		{"recall longer", RawCurveData{Recall: []float64{0, 0.5, 1}, Precision: []float64{1, 0.8}}, true, false},
		{"precision longer", RawCurveData{Recall: []float64{0}, Precision: []float64{1, 0.8}}, true, false},
		{"one side empty", RawCurveData{Recall: nil, Precision: []float64{1}}, true, false},
		{"both nil", RawCurveData{}, false, true},
		{"both empty", RawCurveData{Recall: []float64{}, Precision: []float64{}}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := Assemble(tt.raw)
			if err == nil {
				t.Fatalf("expected error, got curve %v", curve)
			}
			if curve != nil {
				t.Fatalf("expected nil curve on error, got %v", curve)
			}
			if IsLengthMismatch(err) != tt.mismatch {
				t.Fatalf("IsLengthMismatch = %v, want %v (err=%v)", IsLengthMismatch(err), tt.mismatch, err)
			}
			if IsEmpty(err) != tt.empty {
				t.Fatalf("IsEmpty = %v, want %v (err=%v)", IsEmpty(err), tt.empty, err)
			}
		})
	}
}

func TestAssemble_RandomInputsArePermutationsSortedByRecall(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(40)
		raw := RawCurveData{Recall: make([]float64, n), Precision: make([]float64, n)}
		for i := 0; i < n; i++ {
			// coarse grid so that ties are common
			raw.Recall[i] = float64(rng.Intn(6)) / 5
			raw.Precision[i] = rng.Float64()
		}

		got, err := Assemble(raw)
		if err != nil {
			t.Fatalf("iter %d: unexpected error: %v", iter, err)
		}
		if len(got) != n {
			t.Fatalf("iter %d: len = %d, want %d", iter, len(got), n)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Recall < got[i-1].Recall {
				t.Fatalf("iter %d: recall decreases at %d: %v", iter, i, got)
			}
		}

		// Reference: stable sort of the zipped input gives the exact expected order,
		// which also proves the multiset of pairs is preserved.
		want := make(Curve, n)
		for i := range raw.Recall {
			want[i] = CurvePoint{Recall: raw.Recall[i], Precision: raw.Precision[i]}
		}
		sort.SliceStable(want, func(i, j int) bool { return want[i].Recall < want[j].Recall })
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("iter %d: Assemble() = %v, want %v", iter, got, want)
		}
	}
}

func TestCurve_CloneDoesNotAlias(t *testing.T) {
	c := Curve{{0, 1}, {1, 0.5}}
	cp := c.Clone()
	cp[0].Precision = 0
	if c[0].Precision != 1 {
		t.Fatalf("Clone shares backing array")
	}
	if Curve(nil).Clone() != nil {
		t.Fatalf("Clone of nil should be nil")
	}
}

func TestCurve_Axes(t *testing.T) {
	c := Curve{{0, 1}, {0.5, 0.8}}
	if !reflect.DeepEqual(c.Recalls(), []float64{0, 0.5}) {
		t.Fatalf("Recalls() = %v", c.Recalls())
	}
	if !reflect.DeepEqual(c.Precisions(), []float64{1, 0.8}) {
		t.Fatalf("Precisions() = %v", c.Precisions())
	}
}
