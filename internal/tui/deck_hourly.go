package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/chart"
)

var (
	incomingBarStyle = lipgloss.NewStyle().Foreground(ColorPurple).Background(ColorPurple)
	outgoingBarStyle = lipgloss.NewStyle().Foreground(ColorTeal).Background(ColorTeal)
	emptyBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("250"))
)

// renderHourlyDeck renders one direction's 24 hourly buckets as a bar chart
// with an hour axis and a peak/total legend.
func renderHourlyDeck(title string, counts []chart.HourCount, style lipgloss.Style, ctx ViewContext, width, height int, active bool) string {
	status := deckStatus(ctx)
	contentLines := max(1, height-3)

	total, peak, peakHour := 0, 0, ""
	for _, c := range counts {
		total += c.Requests
		if c.Requests > peak {
			peak, peakHour = c.Requests, c.Hour
		}
	}

	var content string
	switch {
	case ctx.DeckLoading:
		content = renderLoadingPlaceholder(width-2, contentLines)
	case total == 0:
		content = helpStyle.Render("No requests recorded")
	default:
		legend := fmt.Sprintf("Total: %d", total)
		if peakHour != "" {
			legend += fmt.Sprintf(" | Peak: %d at %s UTC", peak, peakHour)
		}
		title = title + "  " + labelStyle.Render(legend)
		content = renderHourlyBars(counts, style, width-2, contentLines)
	}
	return renderDeck(title, status, content, width, height, active)
}

// renderHourlyBars draws 24 bars sized to fit width, followed by an axis row.
func renderHourlyBars(counts []chart.HourCount, style lipgloss.Style, width, height int) string {
	chartHeight := max(3, height-1)
	barWidth := max(1, (width-chart.HoursPerDay)/chart.HoursPerDay)
	chartWidth := chart.HoursPerDay * (barWidth + 1)

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)
	for _, c := range counts {
		value := barchart.BarValue{Name: c.Hour, Value: float64(c.Requests), Style: style}
		if c.Requests == 0 {
			value.Style = emptyBarStyle
		}
		bc.Push(barchart.BarData{Label: c.Hour, Values: []barchart.BarValue{value}})
	}
	bc.Draw()

	return lipgloss.JoinVertical(lipgloss.Left, bc.View(), hourAxis(barWidth+1))
}

// hourAxis labels every sixth hour under bars that are step cells apart.
func hourAxis(step int) string {
	var b strings.Builder
	for h := 0; h < chart.HoursPerDay; h += 6 {
		label := fmt.Sprintf("%d", h)
		b.WriteString(padRight(label, step*6))
	}
	return labelStyle.Render(strings.TrimRight(b.String(), " "))
}
