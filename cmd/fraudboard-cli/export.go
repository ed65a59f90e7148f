package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/fraudboard-cli/internal/apperr"
	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
	"github.com/idlab-discover/fraudboard-cli/internal/export"
	"github.com/idlab-discover/fraudboard-cli/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the curve chart or a CycloneDX model card",
	Long:  "Runs one load cycle and writes the precision-recall curve as PNG or the metrics as a CycloneDX model card (json/xml).",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath := viper.GetString("export.output")
		if outputPath == "" {
			return apperr.User("--output is required")
		}
		format, err := export.ResolveFormat(viper.GetString("export.format"), outputPath)
		if err != nil {
			return apperr.User(err.Error())
		}
		if format != export.FormatPNG {
			if _, err := export.ParseSpecVersion(viper.GetString("export.spec")); err != nil {
				return apperr.User(err.Error())
			}
		}

		level, err := readLogLevel("export")
		if err != nil {
			return err
		}
		quiet := level == "quiet"

		if !viper.GetBool("export.yes") {
			ok, err := confirmOverwrite(outputPath)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.ErrCancelled
			}
		}

		m, err := newMachine(cmd.Context(), "export")
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

		if vm.Status == dashboard.StatusFailed {
			return fmt.Errorf("load failed: %s", vm.Error)
		}

		if _, err := export.Write(vm, outputPath, export.Options{
			Format:      string(format),
			SpecVersion: viper.GetString("export.spec"),
			ModelName:   viper.GetString("export.model-name"),
			Chart: export.ChartOptions{
				Width:  viper.GetInt("export.width"),
				Height: viper.GetInt("export.height"),
			},
		}); err != nil {
			return err
		}

		if !quiet {
			msg := fmt.Sprintf("Wrote %s %s", format, ui.Highlight.Render(outputPath))
			if vm.Status == dashboard.StatusDegraded {
				cmd.PrintErrln(ui.FormatStatus("warning", msg+ui.Warning.Render(" (fallback data: "+vm.Warning+")")))
			} else {
				cmd.PrintErrln(ui.FormatStatus("success", msg))
			}
		}
		return nil
	},
}

// confirmOverwrite asks before replacing an existing file.
func confirmOverwrite(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, err
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite " + path + "?").
				Description("The file already exists.").
				Value(&confirm).
				Affirmative("Yes").
				Negative("No"),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, apperr.ErrCancelled
		}
		return false, err
	}
	return confirm, nil
}

var (
	exportOutput    string
	exportFormat    string
	exportSpec      string
	exportModelName string
	exportPolicy    string
	exportLogLevel  string
	exportWidth     int
	exportHeight    int
	exportYes       bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (.png, .json or .xml)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: png|json|xml|auto")
	exportCmd.Flags().StringVar(&exportSpec, "spec", "", "CycloneDX spec version for json/xml: 1.5|1.6 (default 1.6)")
	exportCmd.Flags().StringVar(&exportModelName, "model-name", "", "Model component name in the model card")
	exportCmd.Flags().StringVar(&exportPolicy, "policy", "", "Failure policy: degrade|strict (default degrade)")
	exportCmd.Flags().StringVar(&exportLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	exportCmd.Flags().IntVar(&exportWidth, "width", 800, "PNG width in pixels")
	exportCmd.Flags().IntVar(&exportHeight, "height", 500, "PNG height in pixels")
	exportCmd.Flags().BoolVarP(&exportYes, "yes", "y", false, "Overwrite without asking")

	// Bind all flags to viper for config file support
	viper.BindPFlag("export.output", exportCmd.Flags().Lookup("output"))
	viper.BindPFlag("export.format", exportCmd.Flags().Lookup("format"))
	viper.BindPFlag("export.spec", exportCmd.Flags().Lookup("spec"))
	viper.BindPFlag("export.model-name", exportCmd.Flags().Lookup("model-name"))
	viper.BindPFlag("export.policy", exportCmd.Flags().Lookup("policy"))
	viper.BindPFlag("export.log-level", exportCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("export.width", exportCmd.Flags().Lookup("width"))
	viper.BindPFlag("export.height", exportCmd.Flags().Lookup("height"))
	viper.BindPFlag("export.yes", exportCmd.Flags().Lookup("yes"))
}
