package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trade/view"
	"github.com/zappabad/poketrade/tui/styles"
)

// PickerPanel lists a trainer's creatures for one composer slot. Creatures
// already on that side are shown but cannot be chosen.
type PickerPanel struct {
	request view.PickerRequest
	picker  *view.Picker
	loading bool
	err     string
	focused bool
	width   int
	height  int
}

// NewPickerPanel opens the picker in its loading state.
func NewPickerPanel(req view.PickerRequest) *PickerPanel {
	return &PickerPanel{request: req, loading: true}
}

// SetPool fills the picker once the pool arrived.
func (p *PickerPanel) SetPool(pool []creature.ListItem, err error) {
	p.loading = false
	if err != nil {
		p.err = api.Message(err)
		return
	}
	p.picker = view.NewPicker(p.request, pool)
}

func (p *PickerPanel) Request() view.PickerRequest { return p.request }

func (p *PickerPanel) Loading() bool { return p.loading }

func (p *PickerPanel) Err() string { return p.err }

// Picker exposes the loaded selection model, nil while loading.
func (p *PickerPanel) Picker() *view.Picker { return p.picker }

func (p *PickerPanel) Init() tea.Cmd {
	return nil
}

func (p *PickerPanel) Update(msg tea.Msg) (*PickerPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, keyBack):
		return p, emit(PickerClosedMsg{})
	case p.picker == nil:
		return p, nil
	case key.Matches(keyMsg, keyUp):
		p.picker.Move(-1)
	case key.Matches(keyMsg, keyDown):
		p.picker.Move(1)
	case key.Matches(keyMsg, keyEnter):
		id, err := p.picker.ChooseCurrent()
		if err != nil {
			p.err = err.Error()
			return p, nil
		}
		p.err = ""
		return p, emit(PickMsg{Side: p.request.Side, Slot: p.request.Slot, ID: id})
	}
	return p, nil
}

func (p *PickerPanel) View() string {
	var content strings.Builder

	switch {
	case p.loading:
		content.WriteString(styles.MutedStyle.Render("Loading Pokémon..."))
	case p.picker == nil:
	case len(p.picker.Options()) == 0:
		content.WriteString(styles.MutedStyle.Render("This trainer has no Pokémon."))
	default:
		for i, opt := range p.picker.Options() {
			line := FormatListItem(opt.Item)
			style := styles.RowStyle
			switch {
			case opt.Disabled:
				style = styles.DisabledRowStyle
				line += " (selected)"
			case i == p.picker.Cursor() && p.focused:
				style = styles.SelectedRowStyle
			}
			content.WriteString(style.Render(line))
			content.WriteString("\n")
		}
	}

	if p.err != "" {
		content.WriteString("\n")
		content.WriteString(renderError(p.err))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(p.title(), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(max(p.width-2, 0)).Render(panel)
}

func (p *PickerPanel) title() string {
	verb := "Offer"
	if p.request.Side == trade.SideWanted {
		verb = "Request"
	}
	return fmt.Sprintf("%s: slot %d", verb, p.request.Slot+1)
}

func (p *PickerPanel) SetFocus(focused bool) {
	p.focused = focused
}

func (p *PickerPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
