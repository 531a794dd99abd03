package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/poll"
)

// SysInfoPage shows the monitored host's CPU, memory and OS details.
type SysInfoPage struct {
	deps Deps
	info *Binding[model.SysInfo]
}

// NewSysInfoPage creates the system info page.
func NewSysInfoPage(deps Deps) *SysInfoPage {
	src := newSource(
		"sysinfo", "Failed to fetch system info",
		deps.Settings.InventoryInterval, 0,
		deps.API.SysInfoFetch(),
	)
	return &SysInfoPage{
		deps: deps,
		info: NewBinding[model.SysInfo](src, nil, deps.Notifier),
	}
}

func (p *SysInfoPage) ID() string       { return PageSysInfo }
func (p *SysInfoPage) Title() string    { return "System" }
func (p *SysInfoPage) Loading() bool    { return p.info.Loading() }
func (p *SysInfoPage) HelpText() string { return "r refresh" }

func (p *SysInfoPage) Init() tea.Cmd {
	p.info.Start(p.deps.ctx())
	return nil
}

func (p *SysInfoPage) Leave() { p.info.Stop() }

// Info returns the latest system info, if any.
func (p *SysInfoPage) Info() (model.SysInfo, bool) {
	items := p.info.Items()
	if len(items) == 0 {
		return model.SysInfo{}, false
	}
	return items[0], true
}

func (p *SysInfoPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case poll.Snapshot[model.SysInfo]:
		p.info.Apply(msg)
	case tea.KeyMsg:
		if key.Matches(msg, keys.Refresh) {
			p.info.Source().Refresh()
		}
	}
	return nil, nil
}

func (p *SysInfoPage) View(width, height int) string {
	ctx := p.info.Context(width, height)
	info, ok := p.Info()
	var body string
	switch {
	case ok:
		body = renderSysInfo(info, width-2)
	case ctx.DeckLoading:
		body = renderLoadingPlaceholder(width-2, height-3)
	default:
		body = helpStyle.Render("No system info")
	}
	return renderDeck("System info", deckStatus(ctx), body, width, height, true)
}

func renderSysInfo(info model.SysInfo, width int) string {
	h := info.HostInfo
	m := info.MemoryInfo
	field := func(label, value string) string {
		return labelStyle.Render(padRight(label, 14)) + value
	}

	lines := []string{
		deckTitleStyle.Render("Host"),
		field("Hostname", h.Hostname),
		field("Platform", strings.TrimSpace(fmt.Sprintf("%s %s (%s)", h.Platform, h.PlatformVersion, h.OS))),
		field("Kernel", strings.TrimSpace(h.KernelVersion+" "+h.KernelArch)),
		field("Uptime", (time.Duration(info.Uptime) * time.Second).String()),
		field("Processes", fmt.Sprintf("%d", h.Procs)),
		"",
		deckTitleStyle.Render("Memory"),
		field("Used", fmt.Sprintf("%s / %s (%.2f%%)", humanize.IBytes(m.Used), humanize.IBytes(m.Total), m.UsedPercent)),
		field("", usageBar(m.UsedPercent, max(10, width-16))),
		field("Available", humanize.IBytes(m.Available)),
		field("Swap", fmt.Sprintf("%s free of %s", humanize.IBytes(m.SwapFree), humanize.IBytes(m.SwapTotal))),
		"",
		deckTitleStyle.Render(fmt.Sprintf("CPU (%d)", len(info.CPUInfo))),
	}
	for _, c := range info.CPUInfo {
		lines = append(lines, field(fmt.Sprintf("#%d", c.CPU), fmt.Sprintf("%s %.0f MHz", c.ModelName, c.Mhz)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func usageBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(width, filled))
	style := lipgloss.NewStyle().Foreground(ColorGreen)
	switch {
	case percent >= 90:
		style = style.Foreground(ColorRed)
	case percent >= 70:
		style = style.Foreground(ColorYellow)
	}
	return style.Render(strings.Repeat("█", filled)) + labelStyle.Render(strings.Repeat("░", width-filled))
}
