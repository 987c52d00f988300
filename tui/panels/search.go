package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/trade/view"
	"github.com/zappabad/poketrade/internal/trainer"
	"github.com/zappabad/poketrade/tui/styles"
)

// TrainerSearchPanel finds a trainer to propose a trade to.
type TrainerSearchPanel struct {
	input         textinput.Model
	inList        bool
	me            trainer.ID
	results       []trainer.ListItem
	searched      bool
	busy          bool
	err           string
	selectedIndex int
	focused       bool
	width         int
	height        int
}

func NewTrainerSearchPanel(me trainer.ID) *TrainerSearchPanel {
	input := textinput.New()
	input.Placeholder = "login"
	input.CharLimit = 64
	input.Width = 24
	input.Focus()
	return &TrainerSearchPanel{input: input, me: me}
}

func (p *TrainerSearchPanel) Init() tea.Cmd {
	return textinput.Blink
}

// SetResults ends a search. The session trainer is never offered as a target.
func (p *TrainerSearchPanel) SetResults(items []trainer.ListItem, err error) {
	p.busy = false
	p.searched = true
	p.selectedIndex = 0
	if err != nil {
		p.results = nil
		p.err = api.Message(err)
		return
	}
	p.err = ""
	p.results = p.results[:0]
	for _, it := range items {
		if it.ID != p.me {
			p.results = append(p.results, it)
		}
	}
	if len(p.results) > 0 {
		p.inList = true
		p.input.Blur()
	}
}

func (p *TrainerSearchPanel) Results() []trainer.ListItem { return p.results }

func (p *TrainerSearchPanel) Busy() bool { return p.busy }

func (p *TrainerSearchPanel) Update(msg tea.Msg) (*TrainerSearchPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keyBack):
			return p, emit(NavigateMsg{Route: view.DirectoryRoute()})
		case key.Matches(keyMsg, keyTab):
			p.toggleList()
			return p, nil
		case p.inList:
			return p, p.updateList(keyMsg)
		case key.Matches(keyMsg, keyEnter):
			return p, p.submit()
		}
	}

	if p.inList {
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *TrainerSearchPanel) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keyUp):
		if p.selectedIndex > 0 {
			p.selectedIndex--
		}
	case key.Matches(msg, keyDown):
		if p.selectedIndex < len(p.results)-1 {
			p.selectedIndex++
		}
	case key.Matches(msg, keyEnter):
		if p.selectedIndex < len(p.results) {
			return emit(NavigateMsg{Route: view.ComposeRoute(p.results[p.selectedIndex].ID)})
		}
	}
	return nil
}

func (p *TrainerSearchPanel) toggleList() {
	if p.inList || len(p.results) == 0 {
		p.inList = false
		p.input.Focus()
		return
	}
	p.inList = true
	p.input.Blur()
}

func (p *TrainerSearchPanel) submit() tea.Cmd {
	if p.busy {
		return nil
	}
	p.busy = true
	p.err = ""
	return emit(SearchTrainersMsg{Params: trainer.SearchParams{Login: strings.TrimSpace(p.input.Value())}})
}

func (p *TrainerSearchPanel) View() string {
	var content strings.Builder

	inputStyle := styles.InputStyle
	if p.focused && !p.inList {
		inputStyle = styles.FocusedInputStyle
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		styles.LabelStyle.Width(10).Render("Login"), inputStyle.Render(p.input.View())))
	content.WriteString("\n\n")

	switch {
	case p.busy:
		content.WriteString(styles.MutedStyle.Render("Searching..."))
	case p.err != "":
		content.WriteString(renderError(p.err))
	case p.searched && len(p.results) == 0:
		content.WriteString(styles.MutedStyle.Render("No trainers found."))
	default:
		for i, it := range p.results {
			row := fmt.Sprintf("#%-5d %-20s %s", it.ID, it.DisplayName(), it.Login)
			style := styles.RowStyle
			if p.inList && i == p.selectedIndex && p.focused {
				style = styles.SelectedRowStyle
			}
			content.WriteString(style.Render(row))
			if i < len(p.results)-1 {
				content.WriteString("\n")
			}
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("Find a trainer", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(max(p.width-2, 0)).Render(panel)
}

func (p *TrainerSearchPanel) SetFocus(focused bool) {
	p.focused = focused
	if focused && !p.inList {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

func (p *TrainerSearchPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
