package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trade/view"
	"github.com/zappabad/poketrade/tui/styles"
)

// DetailPanel shows one trade. The receiver of an open proposition gets
// accept/decline actions guarded by a confirmation prompt.
type DetailPanel struct {
	detail  *view.Detail
	confirm *ConfirmPanel
	focused bool
	width   int
	height  int
}

func NewDetailPanel(d *view.Detail) *DetailPanel {
	return &DetailPanel{detail: d, confirm: NewConfirmPanel()}
}

func (p *DetailPanel) Detail() *view.Detail { return p.detail }

// Confirming reports whether a prompt is on screen.
func (p *DetailPanel) Confirming() bool { return p.confirm.Active() }

func (p *DetailPanel) Init() tea.Cmd {
	return nil
}

func (p *DetailPanel) Update(msg tea.Msg) (*DetailPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case ConfirmResultMsg:
		return p, p.resolve(msg.Confirmed)

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		if p.confirm.Active() {
			var cmd tea.Cmd
			p.confirm, cmd = p.confirm.Update(msg)
			return p, cmd
		}

		switch {
		case key.Matches(msg, keyBack):
			return p, emit(NavigateMsg{Route: view.DirectoryRoute()})
		case key.Matches(msg, keyReload):
			if p.detail.State() == view.DetailUpdating {
				return p, nil
			}
			return p, emit(NavigateMsg{Route: view.DetailRoute(p.detail.ID())})
		case key.Matches(msg, keyAccept):
			p.ask(trade.StatusAccepted)
		case key.Matches(msg, keyDecline):
			p.ask(trade.StatusDeclined)
		}
	}
	return p, nil
}

func (p *DetailPanel) ask(decision trade.Status) {
	prompt, err := p.detail.RequestResponse(decision)
	if err != nil {
		return
	}
	p.confirm.Ask(prompt)
}

func (p *DetailPanel) resolve(confirmed bool) tea.Cmd {
	if !confirmed {
		p.detail.Cancel()
		return nil
	}
	id, req, err := p.detail.Confirm()
	if err != nil {
		return nil
	}
	return emit(RespondMsg{Gen: p.detail.Generation(), TradeID: id, Request: req})
}

func (p *DetailPanel) View() string {
	var content strings.Builder

	d := p.detail
	t := d.Trade()
	switch {
	case d.State() == view.DetailLoading:
		content.WriteString(styles.MutedStyle.Render("Loading trade..."))
		content.WriteString("\n")
	case t == nil:
	default:
		content.WriteString(styles.LabelStyle.Render("Status: "))
		content.WriteString(styles.RenderStatus(t.Status))
		content.WriteString("\n\n")

		colWidth := max((p.width-8)/2, 24)
		left := p.renderSide(trade.SideOffered, colWidth)
		right := p.renderSide(trade.SideWanted, colWidth)
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
		content.WriteString("\n\n")
	}

	switch {
	case p.confirm.Active():
		content.WriteString(p.confirm.View())
	case d.State() == view.DetailUpdating:
		content.WriteString(styles.MutedStyle.Render("Sending answer..."))
	case d.ShowsActions():
		content.WriteString(styles.StatusBarKeyStyle.Render("a"))
		content.WriteString(styles.StatusBarDescStyle.Render(" accept  "))
		content.WriteString(styles.StatusBarKeyStyle.Render("d"))
		content.WriteString(styles.StatusBarDescStyle.Render(" decline"))
	}
	if msg := d.Err(); msg != "" {
		content.WriteString("\n")
		content.WriteString(renderError(msg))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("Trade #%d", d.ID()), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(max(p.width-2, 0)).Render(panel)
}

func (p *DetailPanel) renderSide(side trade.Side, width int) string {
	var b strings.Builder

	label := "Sender"
	if side == trade.SideWanted {
		label = "Receiver"
	}
	b.WriteString(styles.HeaderStyle.Render(label + ": " + p.detail.Name(side)))

	resolved, loaded := p.detail.Creatures(side)
	switch {
	case !loaded:
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render("Loading Pokémon..."))
	case len(resolved) == 0:
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render("(nothing)"))
	default:
		for _, r := range resolved {
			b.WriteString("\n")
			b.WriteString(FormatResolved(r))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (p *DetailPanel) SetFocus(focused bool) {
	p.focused = focused
}

func (p *DetailPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.confirm.SetSize(width, height)
}
