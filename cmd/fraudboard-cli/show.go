package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/fraudboard-cli/internal/apperr"
	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
	"github.com/idlab-discover/fraudboard-cli/internal/ui"
)

// ErrDegraded is returned by show --fail-on-degraded when fallback data was shown.
var ErrDegraded = errors.New("dashboard is not showing real results")

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Run one load cycle and print the result",
	Long:  "Loads the metrics and curve once and prints the dashboard as a styled report, plain tables (--plain) or JSON (--json).",
	RunE: func(cmd *cobra.Command, args []string) error {
		plain := viper.GetBool("show.plain")
		asJSON := viper.GetBool("show.json")
		if plain && asJSON {
			return apperr.User("--plain and --json are mutually exclusive")
		}

		level, err := readLogLevel("show")
		if err != nil {
			return err
		}
		quiet := level == "quiet" || plain || asJSON

		m, err := newMachine(cmd.Context(), "show")
		if err != nil {
			return err
		}

		out := cmd.ErrOrStderr()
		if quiet {
			out = nil
		}
		spin := ui.NewInlineSpinner(out, ui.LoadingText)
		spin.Start()
		vm := m.Load(cmd.Context())
		spin.Stop(vm.Status == dashboard.StatusReady, fmt.Sprintf("Load cycle finished: %s", vm.Status))

		report := ui.NewReportUI(cmd.OutOrStdout(), quiet)
		switch {
		case asJSON:
			err = report.PrintJSON(vm)
		case plain:
			err = report.PrintPlain(vm)
		default:
			report.PrintReport(vm)
		}
		if err != nil {
			return err
		}

		if vm.Status == dashboard.StatusFailed {
			return fmt.Errorf("load failed: %s", vm.Error)
		}
		if vm.Status == dashboard.StatusDegraded && viper.GetBool("show.fail-on-degraded") {
			return fmt.Errorf("%w: %s", ErrDegraded, vm.Warning)
		}
		return nil
	},
}

var (
	showPolicy         string
	showLogLevel       string
	showPlain          bool
	showJSON           bool
	showFailOnDegraded bool
)

func init() {
	showCmd.Flags().StringVar(&showPolicy, "policy", "", "Failure policy: degrade|strict (default degrade)")
	showCmd.Flags().StringVar(&showLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Print plain tables (no styling)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the view model as JSON")
	showCmd.Flags().BoolVar(&showFailOnDegraded, "fail-on-degraded", false, "Exit non-zero when fallback data is shown")

	// Bind all flags to viper for config file support
	viper.BindPFlag("show.policy", showCmd.Flags().Lookup("policy"))
	viper.BindPFlag("show.log-level", showCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("show.plain", showCmd.Flags().Lookup("plain"))
	viper.BindPFlag("show.json", showCmd.Flags().Lookup("json"))
	viper.BindPFlag("show.fail-on-degraded", showCmd.Flags().Lookup("fail-on-degraded"))
}
