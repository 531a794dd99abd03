package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syncflow/dashboard/internal/assistant"
)

type chatReplyMsg struct {
	msg assistant.Message
	err error
}

var (
	userBubbleStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorBlue).
			Padding(0, 1)

	aiBubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("252")).
			Padding(0, 1)
)

// ChatPage is a transcript with the assistant and an input line.
type ChatPage struct {
	deps     Deps
	input    textinput.Model
	vp       viewport.Model
	thinking bool
	width    int
}

// NewChatPage creates the assistant chat page.
func NewChatPage(deps Deps) *ChatPage {
	input := textinput.New()
	input.Placeholder = "Ask anything..."
	input.CharLimit = 2000
	return &ChatPage{
		deps:  deps,
		input: input,
		vp:    viewport.New(80, 10),
	}
}

func (p *ChatPage) ID() string           { return PageChat }
func (p *ChatPage) Title() string        { return "Chat" }
func (p *ChatPage) CapturingInput() bool { return p.input.Focused() }

func (p *ChatPage) HelpText() string {
	if p.input.Focused() {
		return "enter send  esc leave input"
	}
	return "i type  ↑/↓ scroll"
}

// Thinking reports whether a reply is pending.
func (p *ChatPage) Thinking() bool { return p.thinking }

func (p *ChatPage) Init() tea.Cmd {
	p.refresh()
	return p.input.Focus()
}

func (p *ChatPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		p.thinking = false
		p.refresh()
		if msg.err != nil {
			return setStatus("Assistant unavailable"), nil
		}
	case tea.KeyMsg:
		if p.input.Focused() {
			return p.updateInput(msg), nil
		}
		switch {
		case msg.String() == "i", key.Matches(msg, keys.Enter):
			return p.input.Focus(), nil
		case key.Matches(msg, keys.Up):
			p.vp.SetYOffset(p.vp.YOffset - 1)
		case key.Matches(msg, keys.Down):
			p.vp.SetYOffset(p.vp.YOffset + 1)
		case key.Matches(msg, keys.End):
			p.vp.GotoBottom()
		}
	}
	return nil, nil
}

func (p *ChatPage) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		p.input.Blur()
		return nil
	case key.Matches(msg, keys.Submit):
		if p.thinking || p.deps.Chat == nil {
			return nil
		}
		text := p.input.Value()
		if !p.deps.Chat.Submit(text) {
			return nil
		}
		p.input.SetValue("")
		p.thinking = true
		p.refresh()
		chat, ctx := p.deps.Chat, p.deps.ctx()
		return func() tea.Msg {
			reply, err := chat.Reply(ctx, text)
			return chatReplyMsg{msg: reply, err: err}
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// refresh re-renders the transcript and scrolls to the newest message.
func (p *ChatPage) refresh() {
	if p.deps.Chat == nil {
		p.vp.SetContent(helpStyle.Render("Assistant not configured"))
		return
	}
	width := max(20, p.vp.Width)
	bubbleWidth := max(10, width*3/4)

	var lines []string
	for _, m := range p.deps.Chat.Messages() {
		if m.Sender == assistant.SenderUser {
			bubble := userBubbleStyle.MaxWidth(bubbleWidth).Render(wrapText(m.Text, bubbleWidth-2))
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		} else {
			lines = append(lines, aiBubbleStyle.MaxWidth(bubbleWidth).Render(wrapText(m.Text, bubbleWidth-2)))
		}
		lines = append(lines, "")
	}
	if p.thinking {
		lines = append(lines, helpStyle.Render("thinking..."))
	}
	if len(lines) == 0 {
		lines = append(lines, helpStyle.Render("No messages yet"))
	}
	p.vp.SetContent(strings.Join(lines, "\n"))
	p.vp.GotoBottom()
}

func (p *ChatPage) View(width, height int) string {
	vpHeight := max(1, height-5)
	if p.vp.Width != width-2 || p.vp.Height != vpHeight {
		p.vp.Width, p.vp.Height = width-2, vpHeight
		p.refresh()
	}
	p.input.Width = max(10, width-6)

	transcript := renderDeck("Assistant", "", p.vp.View(), width, height-3, false)
	input := sectionStyle.Width(width - 2).Render(p.input.View())
	if p.input.Focused() {
		input = activeSectionStyle.Width(width - 2).Render(p.input.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, transcript, input)
}

// wrapText breaks s into lines no wider than width cells.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
