package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/model"
)

var (
	completedBarStyle = lipgloss.NewStyle().Foreground(ColorTeal).Background(ColorTeal)
	pendingBarStyle   = lipgloss.NewStyle().Foreground(ColorPurple).Background(ColorPurple)
	scoreBarStyle     = lipgloss.NewStyle().Foreground(ColorViolet)
)

// AnalyticsPage charts the built-in task throughput and ranking datasets.
type AnalyticsPage struct {
	weeks   []model.WeekTasks
	ranking []model.Score
}

// NewAnalyticsPage creates the analytics page over the bundled datasets.
func NewAnalyticsPage() *AnalyticsPage {
	return &AnalyticsPage{weeks: model.WeeklyTasks, ranking: model.EmployeeRanking}
}

func (p *AnalyticsPage) ID() string    { return PageAnalytics }
func (p *AnalyticsPage) Title() string { return "Analytics" }

func (p *AnalyticsPage) Init() tea.Cmd { return nil }

func (p *AnalyticsPage) Update(tea.Msg) (tea.Cmd, *PageNav) { return nil, nil }

func (p *AnalyticsPage) View(width, height int) string {
	half := max(20, width/2)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		p.renderWeekly(half, height),
		p.renderRanking(width-half, height),
	)
}

// renderWeekly stacks completed tasks under the still-open remainder of
// each week's assignments.
func (p *AnalyticsPage) renderWeekly(width, height int) string {
	inner := max(10, width-2)
	chartHeight := max(3, height-5)
	n := max(1, len(p.weeks))
	barWidth := max(1, (inner-n)/n)

	bc := barchart.New(n*(barWidth+1), chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)
	labels := make([]string, 0, len(p.weeks))
	for _, w := range p.weeks {
		label := strings.TrimPrefix(w.Week, "Week ")
		bc.Push(barchart.BarData{Label: label, Values: []barchart.BarValue{
			{Name: "Completed", Value: float64(w.Completed), Style: completedBarStyle},
			{Name: "Pending", Value: float64(max(0, w.Assigned-w.Completed)), Style: pendingBarStyle},
		}})
		labels = append(labels, padRight(label, barWidth+1))
	}
	bc.Draw()

	legend := completedBarStyle.Render("  ") + " completed  " + pendingBarStyle.Render("  ") + " assigned"
	content := lipgloss.JoinVertical(lipgloss.Left,
		bc.View(),
		labelStyle.Render(strings.Join(labels, "")),
		legend,
	)
	return renderDeck("Tasks per week", "", content, width, height, false)
}

func (p *AnalyticsPage) renderRanking(width, height int) string {
	inner := max(10, width-2)
	nameWidth := 16
	barSpace := max(1, inner-nameWidth-5)

	top := 0
	for _, s := range p.ranking {
		top = max(top, s.Score)
	}
	rows := make([]string, 0, len(p.ranking))
	for _, s := range p.ranking {
		n := 0
		if top > 0 {
			n = s.Score * barSpace / top
		}
		rows = append(rows, fmt.Sprintf("%s %s %d",
			padRight(truncate(s.Name, nameWidth), nameWidth),
			scoreBarStyle.Render(strings.Repeat("█", n)), s.Score))
	}
	return renderDeck("Employee ranking", "", strings.Join(rows, "\n"), width, height, false)
}
