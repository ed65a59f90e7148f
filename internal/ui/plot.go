package ui

import (
	"fmt"
	"strings"

	"github.com/idlab-discover/fraudboard-cli/internal/results"
)

const (
	plotEmpty = ' '
	plotFill  = '░'
	plotEdge  = '•'
)

// plotGrid rasterises the area under a recall-sorted curve onto a
// width x height grid. Row 0 is precision 1.0, the last row precision 0.0.
func plotGrid(curve results.Curve, width, height int) [][]rune {
	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(plotEmpty), width))
	}
	if len(curve) == 0 || width < 2 || height < 2 {
		return grid
	}

	for c := 0; c < width; c++ {
		x := float64(c) / float64(width-1)
		y, ok := precisionAt(curve, x, 0.5/float64(width-1))
		if !ok {
			continue
		}
		level := int(y*float64(height-1) + 0.5)
		top := height - 1 - level
		grid[top][c] = plotEdge
		for r := top + 1; r < height; r++ {
			grid[r][c] = plotFill
		}
	}
	return grid
}

// precisionAt interpolates linearly between the points around recall x.
// Points within tol of x count as hits so a single point is still drawn.
func precisionAt(curve results.Curve, x, tol float64) (float64, bool) {
	first, last := curve[0], curve[len(curve)-1]
	if x < first.Recall-tol || x > last.Recall+tol {
		return 0, false
	}
	if x <= first.Recall {
		return clamp01(first.Precision), true
	}
	if x >= last.Recall {
		return clamp01(last.Precision), true
	}
	for i := 1; i < len(curve); i++ {
		a, b := curve[i-1], curve[i]
		if x > b.Recall {
			continue
		}
		if b.Recall == a.Recall {
			return clamp01(b.Precision), true
		}
		t := (x - a.Recall) / (b.Recall - a.Recall)
		return clamp01(a.Precision + t*(b.Precision-a.Precision)), true
	}
	return clamp01(last.Precision), true
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// RenderCurve draws the precision-recall area chart with labelled axes.
func RenderCurve(curve results.Curve, width, height int) string {
	var b strings.Builder
	b.WriteString(SectionHeader.Render(CurveTitle))
	b.WriteString("\n")

	if len(curve) == 0 {
		b.WriteString(Dim.Render("No curve data"))
		return b.String()
	}

	width = max(width, 11)
	height = max(height, 5)
	grid := plotGrid(curve, width, height)

	b.WriteString(Dim.Render("Precision"))
	b.WriteString("\n")
	for r, row := range grid {
		label := "    "
		switch r {
		case 0:
			label = "1.0 "
		case (height - 1) / 2:
			label = fmt.Sprintf("%.1f ", 1-float64(r)/float64(height-1))
		case height - 1:
			label = "0.0 "
		}
		b.WriteString(Dim.Render(label + "│"))
		b.WriteString(styleRow(row))
		b.WriteString("\n")
	}
	b.WriteString(Dim.Render("    └" + strings.Repeat("─", width)))
	b.WriteString("\n")

	axis := []rune(strings.Repeat(" ", width+2))
	place := func(col int, s string) {
		for i, r := range s {
			if col+i < len(axis) {
				axis[col+i] = r
			}
		}
	}
	place(0, "0.0")
	place((width-1)/2, fmt.Sprintf("%.1f", float64((width-1)/2)/float64(width-1)))
	place(width-1, "1.0")
	b.WriteString(Dim.Render("    " + strings.TrimRight(string(axis), " ")))
	b.WriteString("\n")
	b.WriteString(Dim.Render(strings.Repeat(" ", 4+width/2-3) + "Recall"))
	return b.String()
}

func styleRow(row []rune) string {
	var b strings.Builder
	for _, r := range row {
		switch r {
		case plotFill:
			b.WriteString(CurveFill.Render(string(r)))
		case plotEdge:
			b.WriteString(CurveLine.Render(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
