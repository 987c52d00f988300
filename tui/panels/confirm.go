package panels

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/poketrade/tui/styles"
)

// ConfirmPanel asks a yes/no question and reports the answer once.
type ConfirmPanel struct {
	prompt string
	active bool
	width  int
}

func NewConfirmPanel() *ConfirmPanel {
	return &ConfirmPanel{}
}

// Ask shows a new question.
func (p *ConfirmPanel) Ask(prompt string) {
	p.prompt = prompt
	p.active = true
}

// Dismiss hides the question without answering it.
func (p *ConfirmPanel) Dismiss() {
	p.prompt = ""
	p.active = false
}

func (p *ConfirmPanel) Active() bool { return p.active }

func (p *ConfirmPanel) Prompt() string { return p.prompt }

func (p *ConfirmPanel) Update(msg tea.Msg) (*ConfirmPanel, tea.Cmd) {
	if !p.active {
		return p, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(keyMsg, keyYes):
		p.Dismiss()
		return p, emit(ConfirmResultMsg{Confirmed: true})
	case key.Matches(keyMsg, keyNo):
		p.Dismiss()
		return p, emit(ConfirmResultMsg{Confirmed: false})
	}
	return p, nil
}

func (p *ConfirmPanel) View() string {
	if !p.active {
		return ""
	}
	hint := styles.StatusBarKeyStyle.Render("y") + styles.StatusBarDescStyle.Render(" yes  ") +
		styles.StatusBarKeyStyle.Render("n") + styles.StatusBarDescStyle.Render(" no")
	return styles.PromptStyle.Render(lipgloss.JoinVertical(lipgloss.Left, p.prompt, hint))
}

func (p *ConfirmPanel) SetSize(width, height int) {
	p.width = width
}
