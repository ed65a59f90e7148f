package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/fraudboard-cli/internal/apperr"
	"github.com/idlab-discover/fraudboard-cli/internal/ui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive performance dashboard",
	Long:  "Runs a load cycle and shows the metrics and precision-recall curve full screen. Press r to refresh and q to quit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := viper.GetDuration("dashboard.refresh-interval")
		if interval < 0 {
			return apperr.Userf("invalid --refresh-interval %s", interval)
		}
		if interval > 0 && interval < time.Second {
			return apperr.Userf("--refresh-interval must be at least 1s, got %s", interval)
		}

		m, err := newMachine(cmd.Context(), "dashboard")
		if err != nil {
			return err
		}
		return ui.RunDashboard(cmd.Context(), m, interval)
	},
}

var (
	dashboardPolicy          string
	dashboardLogLevel        string
	dashboardRefreshInterval time.Duration
)

func init() {
	dashboardCmd.Flags().StringVar(&dashboardPolicy, "policy", "", "Failure policy: degrade|strict (default degrade)")
	dashboardCmd.Flags().StringVar(&dashboardLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	dashboardCmd.Flags().DurationVar(&dashboardRefreshInterval, "refresh-interval", 0, "Reload automatically at this interval (0 disables)")

	// Bind all flags to viper for config file support
	viper.BindPFlag("dashboard.policy", dashboardCmd.Flags().Lookup("policy"))
	viper.BindPFlag("dashboard.log-level", dashboardCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("dashboard.refresh-interval", dashboardCmd.Flags().Lookup("refresh-interval"))
}
