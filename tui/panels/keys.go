package panels

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyUp       = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown     = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyLeft     = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "offered"))
	keyRight    = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "wanted"))
	keyEnter    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	keyBack     = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	keyTab      = key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field"))
	keyFieldNav = key.NewBinding(key.WithKeys("up", "down"))
	keyRemove   = key.NewBinding(key.WithKeys("x", "backspace", "delete"), key.WithHelp("x", "remove"))
	keySubmit   = key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "submit"))
	keyAccept   = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept"))
	keyDecline  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "decline"))
	keyYes      = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes"))
	keyNo       = key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no"))
	keyNext     = key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next page"))
	keyPrev     = key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev page"))
	keyFilter   = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status"))
	keyOrder    = key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "order"))
	keyNew      = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new trade"))
	keyReload   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	keyLogout   = key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout"))
)

// emit wraps a message in a command.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Help lists the bindings a screen shows in the status bar.
type Help []key.Binding

var (
	DirectoryHelp = Help{keyUp, keyEnter, keyFilter, keyOrder, keyNext, keyPrev, keyNew, keyReload, keyLogout}
	DetailHelp    = Help{keyAccept, keyDecline, keyReload, keyBack}
	ComposerHelp  = Help{keyLeft, keyRight, keyUp, keyEnter, keyRemove, keySubmit, keyBack}
	PickerHelp    = Help{keyUp, keyDown, keyEnter, keyBack}
	SearchHelp    = Help{keyTab, keyEnter, keyBack}
	LoginHelp     = Help{keyTab, keyEnter}
	ConfirmHelp   = Help{keyYes, keyNo}
)
