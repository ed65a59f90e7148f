package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/fraudboard-cli/internal/export"
	"github.com/idlab-discover/fraudboard-cli/internal/ui"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fraudboard",
	Short: "Fraud model performance dashboard",
	Long:  longDescription,

	SilenceUsage: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
	},

	// When invoked without a subcommand, show help (with banner) instead of
	// printing a plain usage output.
	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var (
	cfgFile string
	noColor bool

	sourceKind    string
	sourceDir     string
	sourceBaseURL string
	sourceToken   string
	sourceBucket  string
	sourcePrefix  string
	sourceRegion  string
	metricsName   string
	curveName     string
	fetchTimeout  int
)

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	rootCmd.Version = v
	if export.Version == "" {
		export.Version = v
	}
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fraudboard.yaml or ./config/defaults.yaml)")
	pf.BoolVar(&noColor, "no-color", false, "Disable ANSI colors in log output")

	pf.StringVar(&sourceKind, "source", "", "Artifact source: file|http|s3 (default file)")
	pf.StringVar(&sourceDir, "data-dir", "", "Directory holding the artifacts for the file source (default ./data)")
	pf.StringVar(&sourceBaseURL, "base-url", "", "Base URL for the http source")
	pf.StringVar(&sourceToken, "token", "", "Bearer token for the http source")
	pf.StringVar(&sourceBucket, "bucket", "", "Bucket for the s3 source")
	pf.StringVar(&sourcePrefix, "prefix", "", "Key prefix (s3) or path prefix (http, default data)")
	pf.StringVar(&sourceRegion, "region", "", "AWS region for the s3 source")
	pf.StringVar(&metricsName, "metrics-artifact", "", "Metrics artifact name (default performance_metrics.json)")
	pf.StringVar(&curveName, "curve-artifact", "", "Curve artifact name (default pr_curve_data.json)")
	pf.IntVar(&fetchTimeout, "timeout", 0, "Per-artifact retrieval timeout in seconds (default 10)")

	viper.BindPFlag("source.kind", pf.Lookup("source"))
	viper.BindPFlag("source.dir", pf.Lookup("data-dir"))
	viper.BindPFlag("source.base-url", pf.Lookup("base-url"))
	viper.BindPFlag("source.token", pf.Lookup("token"))
	viper.BindPFlag("source.bucket", pf.Lookup("bucket"))
	viper.BindPFlag("source.prefix", pf.Lookup("prefix"))
	viper.BindPFlag("source.region", pf.Lookup("region"))
	viper.BindPFlag("artifacts.metrics", pf.Lookup("metrics-artifact"))
	viper.BindPFlag("artifacts.curve", pf.Lookup("curve-artifact"))
	viper.BindPFlag("fetch.timeout", pf.Lookup("timeout"))

	// Ensure `--help` (and help subcommands) show the banner consistently.
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(dashboardCmd, showCmd, serveCmd, exportCmd)
}

func initConfig() {
	// Environment variables override config values, e.g.
	// source.base-url -> FRAUDBOARD_SOURCE_BASE_URL
	viper.SetEnvPrefix("FRAUDBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	ui.Init(noColor)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		cobra.CheckErr(viper.ReadInConfig())
		reportConfigUsed()
		return
	}

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.AddConfigPath("./config")

	// Try .fraudboard first
	viper.SetConfigName(".fraudboard")
	err = viper.ReadInConfig()

	// If not found, try defaults.yaml
	notFound := &viper.ConfigFileNotFoundError{}
	if err != nil && errors.As(err, notFound) {
		viper.SetConfigName("defaults")
		err = viper.ReadInConfig()
	}

	switch {
	case err != nil && !errors.As(err, notFound):
		cobra.CheckErr(err)
	case err != nil:
		// The config file is optional, we shouldn't exit when the config is not found
	default:
		reportConfigUsed()
	}
}

func reportConfigUsed() {
	configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
	fmt.Fprintln(os.Stderr, configMsg)
}

const longDescription = "Fraud model performance dashboard. Loads evaluation metrics and the precision-recall curve from a file, HTTP or S3 source and falls back to a reference dataset when they cannot be shown."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderGradientBanner(ui.BannerASCII) + "\n" + longDescription
}
