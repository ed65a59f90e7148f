package cmd

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/idlab-discover/fraudboard-cli/internal/apperr"
	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
	"github.com/idlab-discover/fraudboard-cli/internal/export"
	"github.com/idlab-discover/fraudboard-cli/internal/fetcher"
	"github.com/idlab-discover/fraudboard-cli/internal/repository"
	"github.com/idlab-discover/fraudboard-cli/internal/server"
	"github.com/idlab-discover/fraudboard-cli/internal/telemetry"
	"github.com/idlab-discover/fraudboard-cli/pkg/fraudboard"
)

// readLogLevel returns the validated <command>.log-level value.
func readLogLevel(command string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString(command + ".log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
}

// wireLogging enables the package loggers in debug mode.
func wireLogging(level string, w io.Writer) {
	if level != "debug" {
		w = nil
	}
	fetcher.SetLogger(w)
	repository.SetLogger(w)
	dashboard.SetLogger(w)
	export.SetLogger(w)
	server.SetLogger(w)
}

// readOptions assembles pipeline options from config, env and flags.
func readOptions(command string) (fraudboard.Options, error) {
	kind, err := fetcher.ParseKind(viper.GetString("source.kind"))
	if err != nil {
		return fraudboard.Options{}, apperr.User(err.Error())
	}
	policy, err := dashboard.ParsePolicy(viper.GetString(command + ".policy"))
	if err != nil {
		return fraudboard.Options{}, apperr.User(err.Error())
	}

	timeout := time.Duration(viper.GetInt("fetch.timeout")) * time.Second
	if timeout <= 0 {
		timeout = repository.DefaultTimeout
	}

	opts := fraudboard.Options{
		Source: fetcher.Config{
			Kind:    kind,
			Dir:     viper.GetString("source.dir"),
			BaseURL: viper.GetString("source.base-url"),
			Token:   viper.GetString("source.token"),
			Bucket:  viper.GetString("source.bucket"),
			Prefix:  viper.GetString("source.prefix"),
			Region:  viper.GetString("source.region"),
			Timeout: timeout,
		},
		MetricsName: viper.GetString("artifacts.metrics"),
		CurveName:   viper.GetString("artifacts.curve"),
		Timeout:     timeout,
		Policy:      policy,
	}

	switch kind {
	case fetcher.KindHTTP:
		if strings.TrimSpace(opts.Source.BaseURL) == "" {
			return opts, apperr.User("the http source requires --base-url (or source.base-url)")
		}
	case fetcher.KindS3:
		if strings.TrimSpace(opts.Source.Bucket) == "" {
			return opts, apperr.User("the s3 source requires --bucket (or source.bucket)")
		}
	}
	return opts, nil
}

// newMachine builds the state machine for a command with telemetry attached.
func newMachine(ctx context.Context, command string) (*dashboard.Machine, error) {
	level, err := readLogLevel(command)
	if err != nil {
		return nil, err
	}
	wireLogging(level, os.Stderr)

	opts, err := readOptions(command)
	if err != nil {
		return nil, err
	}
	return fraudboard.NewMachine(ctx, opts, dashboard.WithObserver(telemetry.Observer()))
}
