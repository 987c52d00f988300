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

// ComposerPanel edits a proposal: six offered slots on the left, six wanted
// slots on the right.
type ComposerPanel struct {
	composer *view.Composer
	side     trade.Side
	slot     int
	focused  bool
	width    int
	height   int
}

func NewComposerPanel(c *view.Composer) *ComposerPanel {
	return &ComposerPanel{composer: c}
}

func (p *ComposerPanel) Composer() *view.Composer { return p.composer }

// Cursor returns the highlighted side and slot.
func (p *ComposerPanel) Cursor() (trade.Side, int) { return p.side, p.slot }

func (p *ComposerPanel) Init() tea.Cmd {
	return nil
}

func (p *ComposerPanel) Update(msg tea.Msg) (*ComposerPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, keyBack):
		return p, emit(NavigateMsg{Route: view.DirectoryRoute()})
	case key.Matches(keyMsg, keyLeft):
		p.side = trade.SideOffered
	case key.Matches(keyMsg, keyRight):
		p.side = trade.SideWanted
	case key.Matches(keyMsg, keyUp):
		if p.slot > 0 {
			p.slot--
		}
	case key.Matches(keyMsg, keyDown):
		if p.slot < trade.SlotCap-1 {
			p.slot++
		}
	case key.Matches(keyMsg, keyEnter):
		req, err := p.composer.OpenPicker(p.side, p.slot)
		if err != nil {
			return p, nil
		}
		return p, emit(OpenPickerMsg{Request: req})
	case key.Matches(keyMsg, keyRemove):
		p.composer.Remove(p.side, p.slot)
	case key.Matches(keyMsg, keySubmit):
		req, err := p.composer.PrepareSubmit()
		if err != nil {
			return p, nil
		}
		return p, emit(SubmitTradeMsg{Request: req})
	}
	return p, nil
}

func (p *ComposerPanel) View() string {
	var content strings.Builder

	c := p.composer
	content.WriteString(styles.LabelStyle.Render("Trade with: "))
	if id, ok := c.ReceiverID(); ok {
		content.WriteString(fmt.Sprintf("%s (#%d)", c.ReceiverName(), id))
	} else {
		content.WriteString(styles.MutedStyle.Render("nobody"))
	}
	content.WriteString("\n\n")

	switch c.State() {
	case view.ComposerLoading:
		content.WriteString(styles.MutedStyle.Render("Loading trainer..."))
		content.WriteString("\n")
	case view.ComposerUnavailable:
	default:
		colWidth := max((p.width-8)/2, 24)
		left := p.renderSide(trade.SideOffered, "You offer", colWidth)
		right := p.renderSide(trade.SideWanted, "You want", colWidth)
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
		content.WriteString("\n")
	}

	switch c.State() {
	case view.ComposerSubmitting:
		content.WriteString(styles.MutedStyle.Render("Sending proposal..."))
		if n := c.Held(); n > 0 {
			content.WriteString(styles.MutedStyle.Render(fmt.Sprintf(" (%d pick(s) wait for the result)", n)))
		}
	case view.ComposerDone:
		content.WriteString(styles.SuccessStyle.Render("✓ Trade proposed"))
	default:
		content.WriteString(renderError(c.Err()))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("New trade", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(max(p.width-2, 0)).Render(panel)
}

func (p *ComposerPanel) renderSide(side trade.Side, label string, width int) string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render(label))
	b.WriteString("\n")

	slots := p.composer.Slots(side)
	for i := range trade.SlotCap {
		line := fmt.Sprintf("%d. ", i+1)
		if cr, ok := slots.At(i); ok {
			line += FormatCreature(cr)
		} else {
			line += styles.MutedStyle.Render("(empty)")
		}

		style := styles.RowStyle
		if p.focused && p.side == side && p.slot == i {
			style = styles.SelectedRowStyle
		}
		b.WriteString(style.Width(width).Render(line))
		if i < trade.SlotCap-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (p *ComposerPanel) SetFocus(focused bool) {
	p.focused = focused
}

func (p *ComposerPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
