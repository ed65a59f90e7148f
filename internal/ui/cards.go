package ui

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/idlab-discover/fraudboard-cli/internal/results"
)

// Fixed dashboard copy.
const (
	DashboardTitle    = "Dashboard"
	DashboardSubtitle = "Model Performance Overview"
	LoadingText       = "Loading Results..."
	CurveTitle        = "Precision-Recall Curve"
)

// StatCard is one headline metric.
type StatCard struct {
	Title string
	Value string
}

// StatCards formats the four headline metrics in display order.
func StatCards(m results.PerformanceMetrics) []StatCard {
	return []StatCard{
		{Title: "Optimal Threshold", Value: fmt.Sprintf("%.2f", m.BestThreshold)},
		{Title: "Fraud Recall", Value: fmt.Sprintf("%.1f%%", m.Recall*100)},
		{Title: "Fraud Precision", Value: fmt.Sprintf("%.1f%%", m.Precision*100)},
		{Title: "Fraud F1-Score", Value: fmt.Sprintf("%.2f", m.F1Score)},
	}
}

// renderCards lays the cards out in one row, or two rows when narrow.
func renderCards(cards []StatCard, width int) string {
	boxes := make([]string, len(cards))
	for i, c := range cards {
		boxes[i] = Card.Render(Dim.Render(c.Title) + "\n" + CardValue.Render(c.Value))
	}
	if width > 0 && width < 4*28 && len(boxes) == 4 {
		top := lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], boxes[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, boxes[2], boxes[3])
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}
