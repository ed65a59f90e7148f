package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/fraudboard-cli/internal/apperr"
	"github.com/idlab-discover/fraudboard-cli/internal/server"
	"github.com/idlab-discover/fraudboard-cli/internal/telemetry"
	"github.com/idlab-discover/fraudboard-cli/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard state over HTTP",
	Long:  "Starts an HTTP service exposing GET /api/dashboard, POST /api/refresh, GET /metrics and GET /healthz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := viper.GetDuration("serve.refresh-interval")
		if interval < 0 {
			return apperr.Userf("invalid --refresh-interval %s", interval)
		}

		if err := telemetry.Register(prometheus.DefaultRegisterer); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		m, err := newMachine(ctx, "serve")
		if err != nil {
			return err
		}

		srv, err := server.New(server.Config{
			Address:         viper.GetString("serve.addr"),
			RefreshInterval: interval,
			GracefulTimeout: viper.GetDuration("serve.graceful-timeout"),
		}, m, prometheus.DefaultGatherer)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		level, _ := readLogLevel("serve")
		if level != "quiet" {
			cmd.PrintErrln(ui.FormatStatus("success", "Serving on "+ui.Highlight.Render("http://"+srv.Address())+"  "+ui.FormatKeyValue("policy", m.Policy().String())))
		}

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		if level != "quiet" {
			cmd.PrintErrln(ui.FormatStatus("info", "Shutting down"))
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.GracefulTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	},
}

var (
	serveAddr            string
	servePolicy          string
	serveLogLevel        string
	serveRefreshInterval time.Duration
	serveGracefulTimeout time.Duration
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "Listen address")
	serveCmd.Flags().StringVar(&servePolicy, "policy", "", "Failure policy: degrade|strict (default degrade)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	serveCmd.Flags().DurationVar(&serveRefreshInterval, "refresh-interval", 0, "Reload automatically at this interval (0 disables)")
	serveCmd.Flags().DurationVar(&serveGracefulTimeout, "graceful-timeout", 10*time.Second, "Time allowed for in-flight requests on shutdown")

	// Bind all flags to viper for config file support
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("serve.policy", serveCmd.Flags().Lookup("policy"))
	viper.BindPFlag("serve.log-level", serveCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("serve.refresh-interval", serveCmd.Flags().Lookup("refresh-interval"))
	viper.BindPFlag("serve.graceful-timeout", serveCmd.Flags().Lookup("graceful-timeout"))
}
