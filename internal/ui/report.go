package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
)

// ReportUI prints a single dashboard view model for the show command.
type ReportUI struct {
	writer io.Writer
	quiet  bool
	width  int
}

// NewReportUI creates a report printer. In quiet mode only the plain and
// JSON outputs are written.
func NewReportUI(w io.Writer, quiet bool) *ReportUI {
	return &ReportUI{writer: w, quiet: quiet, width: 120}
}

// PrintReport renders the styled dashboard.
func (r *ReportUI) PrintReport(vm dashboard.ViewModel) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.writer, renderDashboard(vm, r.width, 60, 14))
}

// renderDashboard is shared by the report printer and the interactive model.
func renderDashboard(vm dashboard.ViewModel, width, plotWidth, plotHeight int) string {
	var b strings.Builder
	b.WriteString(Title.Render(DashboardTitle))
	b.WriteString("  ")
	b.WriteString(StatusBadge(vm.Status, vm.Refreshing))
	b.WriteString("\n")
	b.WriteString(Subtitle.Render(DashboardSubtitle))
	b.WriteString("\n\n")

	switch vm.Status {
	case dashboard.StatusLoading, "":
		b.WriteString(Dim.Render(LoadingText))
		return b.String()
	case dashboard.StatusFailed:
		b.WriteString(ErrorBox.Render(GetCrossMark() + " " + vm.Error))
		return b.String()
	}

	if vm.Warning != "" {
		b.WriteString(WarningBox.Render(GetWarnMark() + " Showing fallback data: " + vm.Warning))
		b.WriteString("\n\n")
	}
	if vm.Metrics != nil {
		b.WriteString(renderCards(StatCards(*vm.Metrics), width))
		b.WriteString("\n\n")
	}
	b.WriteString(RenderCurve(vm.Curve, plotWidth, plotHeight))

	if !vm.UpdatedAt.IsZero() {
		b.WriteString("\n\n")
		b.WriteString(FormatKeyValue("updated", vm.UpdatedAt.Format(time.RFC3339)))
		b.WriteString(Muted.Render(" · "))
		b.WriteString(FormatKeyValue("cycle", shortID(vm.CycleID)))
	}
	return b.String()
}

// StatusBadge renders the status label shown next to the title.
func StatusBadge(s dashboard.Status, refreshing bool) string {
	var out string
	switch s {
	case dashboard.StatusReady:
		out = BadgeReady.Render("● ready")
	case dashboard.StatusDegraded:
		out = BadgeDegraded.Render("● degraded")
	case dashboard.StatusFailed:
		out = BadgeFailed.Render("● failed")
	default:
		out = BadgeLoading.Render("○ loading")
	}
	if refreshing {
		out += " " + Dim.Render("(refreshing)")
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}

// PrintPlain writes the metrics and curve as borderless tables.
func (r *ReportUI) PrintPlain(vm dashboard.ViewModel) error {
	fmt.Fprintf(r.writer, "status: %s\n", vm.Status)
	if vm.Warning != "" {
		fmt.Fprintf(r.writer, "warning: %s\n", vm.Warning)
	}
	if vm.Error != "" {
		fmt.Fprintf(r.writer, "error: %s\n", vm.Error)
	}
	if vm.Metrics == nil {
		return nil
	}
	fmt.Fprintln(r.writer)

	cards := StatCards(*vm.Metrics)
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{c.Title, c.Value})
	}
	if err := renderTable(r.writer, []string{"Metric", "Value"}, rows); err != nil {
		return err
	}

	if len(vm.Curve) == 0 {
		return nil
	}
	fmt.Fprintln(r.writer)
	points := make([][]string, 0, len(vm.Curve))
	for _, p := range vm.Curve {
		points = append(points, []string{fmt.Sprintf("%.4f", p.Recall), fmt.Sprintf("%.4f", p.Precision)})
	}
	return renderTable(r.writer, []string{"Recall", "Precision"}, points)
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// PrintJSON writes the view model as indented JSON.
func (r *ReportUI) PrintJSON(vm dashboard.ViewModel) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(vm)
}
