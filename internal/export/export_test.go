package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
	"github.com/idlab-discover/fraudboard-cli/internal/fallback"
	"github.com/idlab-discover/fraudboard-cli/internal/results"
)

func readyVM() dashboard.ViewModel {
	return dashboard.Project(dashboard.Ready{
		Metrics: results.PerformanceMetrics{BestThreshold: 0.35, Recall: 0.81, Precision: 0.64, F1Score: 0.715},
		Curve:   results.Curve{{Recall: 0.2, Precision: 0.9}, {Recall: 0.5, Precision: 0.75}, {Recall: 0.9, Precision: 0.4}},
	})
}

func TestResolveFormat(t *testing.T) {
	tcs := []struct {
		format, path string
		want         Format
		wantErr      bool
	}{
		{"", "out.png", FormatPNG, false},
		{"auto", "card.JSON", FormatJSON, false},
		{"xml", "card.xml", FormatXML, false},
		{" PNG ", "chart.png", FormatPNG, false},
		{"json", "card.xml", "", true},
		{"", "noext", "", true},
		{"svg", "out.svg", "", true},
	}
	for _, tc := range tcs {
		got, err := ResolveFormat(tc.format, tc.path)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("ResolveFormat(%q,%q) = (%q,%v), want (%q, err=%v)", tc.format, tc.path, got, err, tc.want, tc.wantErr)
		}
	}
}

func TestBuildModelCard(t *testing.T) {
	vm := readyVM()
	vm.CycleID = "cycle-1"
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	bom, err := BuildModelCard(vm, ModelCardOptions{ModelName: "xgb-v3", Now: func() time.Time { return fixed }})
	if err != nil {
		t.Fatal(err)
	}
	comp := bom.Metadata.Component
	if comp.Type != cdx.ComponentTypeMachineLearningModel || comp.Name != "xgb-v3" {
		t.Fatalf("component = %+v", comp)
	}
	if bom.Metadata.Timestamp != "2026-01-02T03:04:05Z" {
		t.Fatalf("timestamp = %q", bom.Metadata.Timestamp)
	}
	if !strings.HasPrefix(bom.SerialNumber, "urn:uuid:") {
		t.Fatalf("serial = %q", bom.SerialNumber)
	}

	want := map[string]string{"threshold": "0.35", "recall": "0.81", "precision": "0.64", "f1-score": "0.715"}
	for k, v := range want {
		got, ok := PerformanceMetric(bom, k)
		if !ok || got != v {
			t.Fatalf("metric %s = (%q,%v), want %q", k, got, ok, v)
		}
	}

	props := map[string]string{}
	for _, p := range *comp.Properties {
		props[p.Name] = p.Value
	}
	if props[PropStatus] != "ready" || props[PropCurve] != "3" || props[PropCycleID] != "cycle-1" {
		t.Fatalf("properties = %v", props)
	}
	if _, ok := props[PropWarning]; ok {
		t.Fatalf("ready card must not carry a warning")
	}
}

func TestBuildModelCard_DegradedCarriesWarning(t *testing.T) {
	fb := fallback.Static{}.SyntheticResult()
	vm := dashboard.Project(dashboard.Degraded{Metrics: fb.Metrics, Curve: fb.Curve, Warning: "artifact not found"})

	bom, err := BuildModelCard(vm, ModelCardOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if bom.Metadata.Component.Name != DefaultModelName {
		t.Fatalf("name = %q", bom.Metadata.Component.Name)
	}
	found := false
	for _, p := range *bom.Metadata.Component.Properties {
		if p.Name == PropWarning && p.Value == "artifact not found" {
			found = true
		}
	}
	if !found {
		t.Fatalf("warning property missing")
	}
}

func TestBuildModelCard_FailedHasNothingToExport(t *testing.T) {
	vm := dashboard.Project(dashboard.Failed{Error: "boom"})
	if _, err := BuildModelCard(vm, ModelCardOptions{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestPerformanceMetric_Missing(t *testing.T) {
	if _, ok := PerformanceMetric(nil, "recall"); ok {
		t.Fatal("nil bom")
	}
	if _, ok := PerformanceMetric(cdx.NewBOM(), "recall"); ok {
		t.Fatal("empty bom")
	}
}

func TestParseSpecVersion(t *testing.T) {
	tcs := []struct {
		in   string
		want cdx.SpecVersion
		ok   bool
	}{
		{"", cdx.SpecVersion1_6, true},
		{"1.5", cdx.SpecVersion1_5, true},
		{" 1.6 ", cdx.SpecVersion1_6, true},
		{"1.4", cdx.SpecVersion1_6, false},
		{"nope", cdx.SpecVersion1_6, false},
	}
	for _, tc := range tcs {
		got, err := ParseSpecVersion(tc.in)
		if got != tc.want || (err == nil) != tc.ok {
			t.Fatalf("ParseSpecVersion(%q) = (%v,%v)", tc.in, got, err)
		}
	}
}

func TestWrite_JSONAndXMLRoundTrip(t *testing.T) {
	for _, ext := range []string{"json", "xml"} {
		t.Run(ext, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "card."+ext)
			format, err := Write(readyVM(), p, Options{SpecVersion: "1.5"})
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if string(format) != ext {
				t.Fatalf("format = %q", format)
			}
			bom, err := ReadBOM(p, format)
			if err != nil {
				t.Fatalf("ReadBOM: %v", err)
			}
			if v, ok := PerformanceMetric(bom, "recall"); !ok || v != "0.81" {
				t.Fatalf("recall = (%q,%v)", v, ok)
			}
		})
	}
}

func TestWrite_PNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "curve.png")
	if _, err := Write(readyVM(), p, Options{Chart: ChartOptions{Width: 400, Height: 300}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("size = %v", b)
	}
}

func TestRenderCurvePNG_SinglePoint(t *testing.T) {
	vm := readyVM()
	vm.Curve = results.Curve{{Recall: 0.5, Precision: 0.5}}
	var buf bytes.Buffer
	if err := RenderCurvePNG(&buf, vm, ChartOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty output")
	}
}

func TestRenderCurvePNG_EmptyCurve(t *testing.T) {
	vm := dashboard.Project(dashboard.Failed{Error: "x"})
	if err := RenderCurvePNG(&bytes.Buffer{}, vm, ChartOptions{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestToolVersion(t *testing.T) {
	origV, origC, origRead := Version, Commit, readBuildInfo
	t.Cleanup(func() { Version, Commit, readBuildInfo = origV, origC, origRead })

	Version = "v1.2.3"
	if got := ToolVersion(); got != "v1.2.3" {
		t.Fatalf("got %q", got)
	}

	Version = ""
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, true
	}
	if got := ToolVersion(); got != "v0.4.0" {
		t.Fatalf("got %q", got)
	}

	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	Commit = "abc123"
	if got := ToolVersion(); got != "commit-abc123" {
		t.Fatalf("got %q", got)
	}
	Commit = ""
	if got := ToolVersion(); got != "devel" {
		t.Fatalf("got %q", got)
	}
}

func TestValidateModelCard(t *testing.T) {
	good, err := BuildModelCard(readyVM(), ModelCardOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if errs := ValidateModelCard(good); len(errs) != 0 {
		t.Fatalf("valid card reported %v", errs)
	}

	outOfRange := readyVM()
	outOfRange.Metrics.Recall = 1.5
	bad, err := BuildModelCard(outOfRange, ModelCardOptions{})
	if err != nil {
		t.Fatal(err)
	}
	errs := ValidateModelCard(bad)
	if len(errs) != 1 || !strings.Contains(errs[0], "recall") {
		t.Fatalf("errs = %v", errs)
	}

	noCard := cdx.NewBOM()
	noCard.Metadata = &cdx.Metadata{Component: &cdx.Component{Name: "m", Type: cdx.ComponentTypeLibrary}}
	if errs := ValidateModelCard(noCard); len(errs) != 2 {
		t.Fatalf("errs = %v", errs)
	}

	if errs := ValidateModelCard(nil); len(errs) != 1 {
		t.Fatalf("nil errs = %v", errs)
	}
}

func TestWrite_RejectsInvalidCard(t *testing.T) {
	vm := readyVM()
	vm.Metrics.F1Score = -0.1
	p := filepath.Join(t.TempDir(), "card.json")
	if _, err := Write(vm, p, Options{}); err == nil || !strings.Contains(err.Error(), "f1-score") {
		t.Fatalf("expected invalid card error, got %v", err)
	}
	if _, err := os.Stat(p); err == nil {
		t.Fatal("invalid card should not be written")
	}
}
