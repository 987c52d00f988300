package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/poketrade/internal/trade"
	"github.com/zappabad/poketrade/internal/trade/view"
	"github.com/zappabad/poketrade/internal/trainer"
	"github.com/zappabad/poketrade/tui/styles"
)

// DirectoryPanel lists the session trainer's trades one page at a time.
type DirectoryPanel struct {
	directory     *view.Directory
	me            trainer.ID
	selectedIndex int
	focused       bool
	width         int
	height        int
}

func NewDirectoryPanel(d *view.Directory, me trainer.ID) *DirectoryPanel {
	return &DirectoryPanel{directory: d, me: me}
}

func (p *DirectoryPanel) Directory() *view.Directory { return p.directory }

// SelectedTrade returns the highlighted row.
func (p *DirectoryPanel) SelectedTrade() (trade.ListItem, bool) {
	items := p.directory.Items()
	if p.selectedIndex >= 0 && p.selectedIndex < len(items) {
		return items[p.selectedIndex], true
	}
	return trade.ListItem{}, false
}

// PageLoaded resets the cursor after a new page arrived.
func (p *DirectoryPanel) PageLoaded() {
	p.selectedIndex = 0
}

func (p *DirectoryPanel) Init() tea.Cmd {
	return nil
}

func (p *DirectoryPanel) Update(msg tea.Msg) (*DirectoryPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}

	reload := emit(ReloadDirectoryMsg{})
	switch {
	case key.Matches(keyMsg, keyUp):
		if p.selectedIndex > 0 {
			p.selectedIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if p.selectedIndex < len(p.directory.Items())-1 {
			p.selectedIndex++
		}
	case key.Matches(keyMsg, keyEnter):
		if item, ok := p.SelectedTrade(); ok {
			return p, emit(NavigateMsg{Route: view.DetailRoute(item.ID)})
		}
	case key.Matches(keyMsg, keyFilter):
		p.directory.CycleStatus()
		return p, reload
	case key.Matches(keyMsg, keyOrder):
		p.directory.ToggleOrder()
		return p, reload
	case key.Matches(keyMsg, keyNext):
		if p.directory.Next() {
			return p, reload
		}
	case key.Matches(keyMsg, keyPrev):
		if p.directory.Prev() {
			return p, reload
		}
	case key.Matches(keyMsg, keyReload):
		return p, reload
	case key.Matches(keyMsg, keyNew):
		return p, emit(NavigateMsg{Route: view.Route{Kind: view.RouteTrainerSearch}})
	case key.Matches(keyMsg, keyLogout):
		return p, emit(LogoutMsg{})
	}
	return p, nil
}

func (p *DirectoryPanel) View() string {
	var content strings.Builder

	params := p.directory.Params()
	content.WriteString(styles.LabelStyle.Render("Status: "))
	content.WriteString(styles.RenderStatus(params.Status))
	content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("   Order: %s   Page: %d", params.OrderBy, params.Page+1)))
	content.WriteString("\n\n")

	header := fmt.Sprintf("%-8s %-12s %-10s %s", "Trade", "Status", "Direction", "Trainer")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	items := p.directory.Items()
	switch {
	case p.directory.Loading():
		content.WriteString(styles.MutedStyle.Render("Loading trades..."))
	case len(items) == 0 && p.directory.Err() == "":
		content.WriteString(styles.MutedStyle.Render("No trades yet. Press t to propose one."))
	}

	if !p.directory.Loading() {
		for i, item := range items {
			direction, other := "sent", item.Receiver.ID
			if item.Receiver.ID == p.me {
				direction, other = "received", item.Sender.ID
			}
			row := fmt.Sprintf("#%-7d %-12s %-10s #%d", item.ID, item.Status, direction, other)

			style := styles.StatusStyle(item.Status)
			if i == p.selectedIndex && p.focused {
				style = styles.SelectedRowStyle
			}
			content.WriteString(style.Render(row))
			if i < len(items)-1 {
				content.WriteString("\n")
			}
		}
	}

	if msg := p.directory.Err(); msg != "" {
		content.WriteString("\n")
		content.WriteString(renderError(msg))
	}

	var pager []string
	if p.directory.CanPrev() {
		pager = append(pager, "[ prev")
	}
	if p.directory.CanNext() {
		pager = append(pager, "] next")
	}
	if len(pager) > 0 {
		content.WriteString("\n\n")
		content.WriteString(styles.MutedStyle.Render(strings.Join(pager, "   ")))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("My trades", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(max(p.width-2, 0)).Render(panel)
}

func (p *DirectoryPanel) SetFocus(focused bool) {
	p.focused = focused
}

func (p *DirectoryPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
