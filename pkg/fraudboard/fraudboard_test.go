package fraudboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
	"github.com/idlab-discover/fraudboard-cli/internal/fetcher"
)

const metricsJSON = `{"best_threshold":0.35,"recall":0.81,"precision":0.64,"f1_score":0.715}`
const curveJSON = `{"recall":[0.9,0.2,0.5],"precision":[0.4,0.9,0.75]}`

func writeArtifacts(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoad_Ready(t *testing.T) {
	dir := writeArtifacts(t, map[string]string{
		"performance_metrics.json": metricsJSON,
		"pr_curve_data.json":       curveJSON,
	})

	vm, err := Load(context.Background(), Options{Source: fetcher.Config{Kind: fetcher.KindFile, Dir: dir}})
	if err != nil {
		t.Fatal(err)
	}
	if vm.Status != dashboard.StatusReady {
		t.Fatalf("status = %s (%s)", vm.Status, vm.Warning)
	}
	if vm.Metrics.Recall != 0.81 || len(vm.Curve) != 3 || vm.Curve[0].Recall != 0.2 {
		t.Fatalf("unexpected view model %+v", vm)
	}
}

func TestLoad_CustomNames(t *testing.T) {
	dir := writeArtifacts(t, map[string]string{
		"m.json": metricsJSON,
		"c.json": curveJSON,
	})
	vm, err := Load(context.Background(), Options{
		Source:      fetcher.Config{Dir: dir},
		MetricsName: "m.json",
		CurveName:   "c.json",
		Timeout:     time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	if vm.Status != dashboard.StatusReady {
		t.Fatalf("status = %s (%s)", vm.Status, vm.Warning)
	}
}

func TestLoad_MissingArtifactsDegrade(t *testing.T) {
	vm, err := Load(context.Background(), Options{Source: fetcher.Config{Dir: t.TempDir()}})
	if err != nil {
		t.Fatal(err)
	}
	if vm.Status != dashboard.StatusDegraded || vm.Warning == "" {
		t.Fatalf("got %+v", vm)
	}
}

func TestLoad_StrictAndNoFallback(t *testing.T) {
	for name, opts := range map[string]Options{
		"strict":      {Policy: PolicyStrict},
		"no fallback": {DisableFallback: true},
	} {
		t.Run(name, func(t *testing.T) {
			opts.Source = fetcher.Config{Dir: t.TempDir()}
			vm, err := Load(context.Background(), opts)
			if err != nil {
				t.Fatal(err)
			}
			if vm.Status != dashboard.StatusFailed || vm.Error == "" {
				t.Fatalf("got %+v", vm)
			}
		})
	}
}

func TestLoad_BadSourceConfig(t *testing.T) {
	if _, err := Load(context.Background(), Options{Source: fetcher.Config{Kind: fetcher.KindHTTP}}); err == nil {
		t.Fatal("http source without base URL should fail")
	}
}

func TestNewMachineFromSource_ExtraOptions(t *testing.T) {
	var reports []dashboard.Report
	src := &fetcher.MemorySource{Artifacts: map[string][]byte{
		"performance_metrics.json": []byte(metricsJSON),
		"pr_curve_data.json":       []byte(curveJSON),
	}}
	m := NewMachineFromSource(src, Options{}, dashboard.WithObserver(func(r dashboard.Report) { reports = append(reports, r) }))
	vm := m.Load(context.Background())
	if vm.Status != dashboard.StatusReady || len(reports) != 1 {
		t.Fatalf("status=%s reports=%d", vm.Status, len(reports))
	}
}
