package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
)

const ChartTitle = "Precision-Recall Curve"

// ChartOptions sizes the rendered chart. Zero values use the defaults.
type ChartOptions struct {
	Width  int
	Height int
}

var curveColor = drawing.ColorFromHex("2F81F7")

// unitTicks labels both axes 0.0 .. 1.0.
func unitTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 11)
	for i := 0; i <= 10; i++ {
		v := float64(i) / 10
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.1f", v)})
	}
	return ticks
}

// RenderCurvePNG draws the precision-recall curve as a filled area chart.
func RenderCurvePNG(w io.Writer, vm dashboard.ViewModel, opts ChartOptions) error {
	if len(vm.Curve) == 0 {
		return errors.New("nothing to export: curve is empty")
	}
	xs := vm.Curve.Recalls()
	ys := vm.Curve.Precisions()
	if len(xs) == 1 {
		// a single point has no extent; draw it as a flat segment
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 500
	}

	unit := &chart.ContinuousRange{Min: 0, Max: 1}
	name := "Precision"
	if vm.Status == dashboard.StatusDegraded {
		name = "Precision (fallback data)"
	}

	ch := chart.Chart{
		Title:      ChartTitle,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Recall", Range: unit, Ticks: unitTicks()},
		YAxis:      chart.YAxis{Name: "Precision", Range: unit, Ticks: unitTicks()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: curveColor,
					StrokeWidth: 2,
					FillColor:   curveColor.WithAlpha(96),
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
