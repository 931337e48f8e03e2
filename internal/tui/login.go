package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/talkincode/flowershop/internal/auth"
)

const (
	loginField = iota
	passwordField
)

type loginScreen struct {
	sess *session
	form *form
}

func newLoginScreen(sess *session) *loginScreen {
	f := newForm("Логин", "Пароль")
	f.fields[passwordField].input.EchoMode = textinput.EchoPassword
	f.fields[passwordField].input.EchoCharacter = '•'
	return &loginScreen{sess: sess, form: f}
}

func (s *loginScreen) Title() string { return "Вход" }

func (s *loginScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *loginScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.form.Tick(msg)
	}
	switch key.String() {
	case "enter":
		if s.form.focused() == loginField {
			s.form.move(1)
			return s, nil
		}
		return s, s.signIn()
	case "ctrl+g":
		return s, func() tea.Msg { return loginMsg{user: auth.Guest} }
	case "esc":
		return s, tea.Quit
	}
	return s, s.form.Update(key)
}

func (s *loginScreen) signIn() tea.Cmd {
	login, password := s.form.value(loginField), s.form.value(passwordField)
	sess := s.sess
	return func() tea.Msg {
		id, err := sess.Auth.Authenticate(sess.ctx, login, password)
		if err != nil {
			return failure(describe(err))
		}
		return loginMsg{user: *id}
	}
}

func (s *loginScreen) View() string {
	box := boxStyle.Render(titleStyle.Render("Вход в систему") + "\n\n" + s.form.View() +
		helpLine("enter", "войти", "tab", "следующее поле", "ctrl+g", "войти как гость", "esc", "выход"))
	return lipgloss.Place(s.sess.width, s.sess.height-1, lipgloss.Center, lipgloss.Center, box)
}
