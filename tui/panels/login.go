package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/poketrade/tui/styles"
)

type loginField int

const (
	fieldLogin loginField = iota
	fieldPassword
)

// LoginPanel collects credentials.
type LoginPanel struct {
	loginInput    textinput.Model
	passwordInput textinput.Model
	current       loginField

	busy    bool
	err     string
	focused bool
	width   int
	height  int
}

func NewLoginPanel() *LoginPanel {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 64
	loginInput.Width = 24

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 128
	passwordInput.Width = 24
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '•'

	p := &LoginPanel{loginInput: loginInput, passwordInput: passwordInput}
	p.loginInput.Focus()
	return p
}

func (p *LoginPanel) Init() tea.Cmd {
	return textinput.Blink
}

func (p *LoginPanel) Update(msg tea.Msg) (*LoginPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keyTab, keyFieldNav):
			p.toggleField()
			return p, nil

		case key.Matches(msg, keyEnter):
			if p.busy {
				return p, nil
			}
			if p.current == fieldLogin {
				p.toggleField()
				return p, nil
			}
			return p, p.submit()
		}
	}

	var cmd tea.Cmd
	if p.current == fieldLogin {
		p.loginInput, cmd = p.loginInput.Update(msg)
	} else {
		p.passwordInput, cmd = p.passwordInput.Update(msg)
	}
	return p, cmd
}

func (p *LoginPanel) toggleField() {
	if p.current == fieldLogin {
		p.current = fieldPassword
		p.loginInput.Blur()
		p.passwordInput.Focus()
		return
	}
	p.current = fieldLogin
	p.passwordInput.Blur()
	p.loginInput.Focus()
}

func (p *LoginPanel) submit() tea.Cmd {
	login := strings.TrimSpace(p.loginInput.Value())
	password := p.passwordInput.Value()
	if login == "" || password == "" {
		p.err = "Login and password are required"
		return nil
	}
	p.err = ""
	p.busy = true
	return emit(LoginSubmitMsg{Login: login, Password: password})
}

// SetResult ends a login attempt. An empty message means success.
func (p *LoginPanel) SetResult(errMsg string) {
	p.busy = false
	p.err = errMsg
	if errMsg != "" {
		p.passwordInput.SetValue("")
	}
}

func (p *LoginPanel) Busy() bool { return p.busy }

func (p *LoginPanel) Err() string { return p.err }

func (p *LoginPanel) View() string {
	var content strings.Builder

	content.WriteString(p.renderField("Login", fieldLogin, p.loginInput.View()))
	content.WriteString("\n")
	content.WriteString(p.renderField("Password", fieldPassword, p.passwordInput.View()))
	content.WriteString("\n\n")

	if p.busy {
		content.WriteString(styles.MutedStyle.Render("Signing in..."))
	} else {
		content.WriteString(renderError(p.err))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("Sign in", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(max(p.width-2, 0)).Render(panel)
}

func (p *LoginPanel) renderField(label string, field loginField, input string) string {
	labelStyle := styles.LabelStyle
	inputStyle := styles.InputStyle
	if p.current == field && p.focused {
		labelStyle = labelStyle.Foreground(styles.PrimaryColor)
		inputStyle = styles.FocusedInputStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, labelStyle.Width(10).Render(label), inputStyle.Render(input))
}

func (p *LoginPanel) SetFocus(focused bool) {
	p.focused = focused
	if !focused {
		p.loginInput.Blur()
		p.passwordInput.Blur()
		return
	}
	if p.current == fieldLogin {
		p.loginInput.Focus()
	} else {
		p.passwordInput.Focus()
	}
}

func (p *LoginPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
