package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idlab-discover/fraudboard-cli/internal/apperr"
	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
	"github.com/idlab-discover/fraudboard-cli/internal/fetcher"
	"github.com/idlab-discover/fraudboard-cli/internal/repository"
)

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// resetViper restores flags and overrides so tests sharing rootCmd stay independent.
func resetViper(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		resetFlags(rootCmd.PersistentFlags())
		for _, c := range rootCmd.Commands() {
			resetFlags(c.Flags())
		}
		for _, k := range []string{
			"source.kind", "source.dir", "source.base-url", "source.bucket",
			"fetch.timeout", "show.policy", "show.log-level", "show.plain", "show.json",
			"show.fail-on-degraded", "export.output", "export.yes", "export.format",
		} {
			viper.Set(k, nil)
		}
	})
}

func TestReadLogLevel(t *testing.T) {
	resetViper(t)

	viper.Set("show.log-level", "")
	if got, err := readLogLevel("show"); err != nil || got != "standard" {
		t.Fatalf("default = (%q,%v)", got, err)
	}
	viper.Set("show.log-level", " DEBUG ")
	if got, err := readLogLevel("show"); err != nil || got != "debug" {
		t.Fatalf("debug = (%q,%v)", got, err)
	}
	viper.Set("show.log-level", "loud")
	if _, err := readLogLevel("show"); !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}
}

func TestReadOptions(t *testing.T) {
	resetViper(t)

	opts, err := readOptions("show")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Source.Kind != fetcher.KindFile || opts.Timeout != repository.DefaultTimeout || opts.Policy != dashboard.PolicyDegrade {
		t.Fatalf("defaults = %+v", opts)
	}

	viper.Set("show.policy", "strict")
	viper.Set("fetch.timeout", 3)
	opts, err = readOptions("show")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Policy != dashboard.PolicyStrict || opts.Timeout.Seconds() != 3 {
		t.Fatalf("overrides = %+v", opts)
	}

	tcs := []struct {
		key, value string
	}{
		{"source.kind", "ftp"},
		{"show.policy", "lenient"},
	}
	for _, tc := range tcs {
		viper.Set(tc.key, tc.value)
		if _, err := readOptions("show"); !apperr.IsUser(err) {
			t.Fatalf("%s=%s: expected user error, got %v", tc.key, tc.value, err)
		}
		viper.Set(tc.key, nil)
	}

	viper.Set("show.policy", nil)
	viper.Set("source.kind", "http")
	if _, err := readOptions("show"); !apperr.IsUser(err) {
		t.Fatalf("http without base url: %v", err)
	}
	viper.Set("source.kind", "s3")
	if _, err := readOptions("show"); !apperr.IsUser(err) {
		t.Fatalf("s3 without bucket: %v", err)
	}
}

func writeArtifacts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"performance_metrics.json": `{"best_threshold":0.35,"recall":0.81,"precision":0.64,"f1_score":0.715}`,
		"pr_curve_data.json":       `{"recall":[0.9,0.2,0.5],"precision":[0.4,0.9,0.75]}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestShow_JSON(t *testing.T) {
	resetViper(t)
	dir := writeArtifacts(t)

	out, err := runRoot(t, "show", "--json", "--data-dir", dir)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var vm dashboard.ViewModel
	if err := json.Unmarshal([]byte(out), &vm); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if vm.Status != dashboard.StatusReady || vm.Metrics.Recall != 0.81 || len(vm.Curve) != 3 {
		t.Fatalf("got %+v", vm)
	}
}

func TestShow_FailOnDegraded(t *testing.T) {
	resetViper(t)

	out, err := runRoot(t, "show", "--plain", "--fail-on-degraded", "--data-dir", t.TempDir())
	if !errors.Is(err, ErrDegraded) {
		t.Fatalf("expected ErrDegraded, got %v", err)
	}
	if !strings.Contains(out, "status: degraded") {
		t.Fatalf("plain output = %q", out)
	}
}

func TestExport_RequiresOutput(t *testing.T) {
	resetViper(t)
	if _, err := runRoot(t, "export", "--output", ""); !apperr.IsUser(err) {
		t.Fatalf("expected user error, got %v", err)
	}
}

func TestExport_ModelCard(t *testing.T) {
	resetViper(t)
	dir := writeArtifacts(t)
	outPath := filepath.Join(t.TempDir(), "card.json")

	if _, err := runRoot(t, "export", "-o", outPath, "--yes", "--log-level", "quiet", "--data-dir", dir); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"machine-learning-model"`) {
		t.Fatalf("model card missing component type:\n%s", data)
	}
}

func TestConfirmOverwrite_MissingFile(t *testing.T) {
	ok, err := confirmOverwrite(filepath.Join(t.TempDir(), "new.png"))
	if err != nil || !ok {
		t.Fatalf("missing file should not prompt: (%v,%v)", ok, err)
	}
}
