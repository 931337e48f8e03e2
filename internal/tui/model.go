// Package tui is the terminal front end: login, catalog, product editor,
// orders and order editor screens.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/flowershop/internal/auth"
	"github.com/talkincode/flowershop/internal/catalog"
	"github.com/talkincode/flowershop/internal/domain"
	"github.com/talkincode/flowershop/internal/orders"
)

const appTitle = "Цветочный магазин"

// Services the screens work with
type Services struct {
	Auth      *auth.Service
	Catalog   *catalog.Service
	Orders    *orders.Service
	ExportDir string
}

// session state shared by all screens
type session struct {
	Services
	ctx    context.Context
	user   auth.Identity
	width  int
	height int
}

type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	Title() string
}

// Messages
type openMsg struct{ s screen }

type backMsg struct{}

type loginMsg struct{ user auth.Identity }

type logoutMsg struct{}

type noticeMsg Notice

type confirmMsg struct{ dialog *ConfirmationDialog }

// Model is the root Bubbletea model. Screens are kept on a stack, closing one
// reloads the one below.
type Model struct {
	sess    *session
	stack   []screen
	notice  *Notice
	confirm *ConfirmationDialog
}

func New(ctx context.Context, svc Services) Model {
	sess := &session{Services: svc, ctx: ctx, user: auth.Guest, width: 100, height: 30}
	return Model{sess: sess, stack: []screen{newLoginScreen(sess)}}
}

func (m Model) top() screen {
	return m.stack[len(m.stack)-1]
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.top().Init()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.sess.width = msg.Width
		m.sess.height = msg.Height
		return m, nil

	case openMsg:
		m.stack = append(m.stack, msg.s)
		return m, msg.s.Init()

	case backMsg:
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m, m.top().Init()

	case loginMsg:
		m.sess.user = msg.user
		m.stack = []screen{newCatalogScreen(m.sess)}
		return m, m.top().Init()

	case logoutMsg:
		zap.L().Info("logout", zap.String("user", m.sess.user.FullName))
		m.sess.user = auth.Guest
		m.stack = []screen{newLoginScreen(m.sess)}
		return m, m.top().Init()

	case noticeMsg:
		n := Notice(msg)
		m.notice = &n
		return m, nil

	case confirmMsg:
		m.confirm = msg.dialog
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.notice != nil {
			switch msg.String() {
			case "enter", "esc", " ", "q":
				m.notice = nil
			}
			return m, nil
		}
		if m.confirm != nil {
			done, cmd := m.confirm.Update(msg)
			if done {
				m.confirm = nil
			}
			return m, cmd
		}
	}

	s, cmd := m.top().Update(msg)
	m.stack[len(m.stack)-1] = s
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	s := m.top()
	who := m.sess.user.Title()
	left := appTitle + " | " + s.Title()
	gap := m.sess.width - lipgloss.Width(left) - lipgloss.Width(who) - 2
	if gap < 1 {
		gap = 1
	}
	bar := topBarStyle.Width(m.sess.width).Render(left + lipgloss.NewStyle().Width(gap).Render("") + who)

	body := s.View()
	switch {
	case m.notice != nil:
		body = lipgloss.Place(m.sess.width, m.sess.height-1, lipgloss.Center, lipgloss.Center, m.notice.View())
	case m.confirm != nil:
		body = lipgloss.Place(m.sess.width, m.sess.height-1, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, body)
}

// Run starts the terminal UI and blocks until the user quits
func Run(ctx context.Context, svc Services) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Commands
func open(s screen) tea.Cmd {
	return func() tea.Msg { return openMsg{s: s} }
}

func back() tea.Msg {
	return backMsg{}
}

func notify(title, message string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{Title: title, Message: message} }
}

func fail(err error) tea.Cmd {
	text := describe(err)
	return func() tea.Msg { return failure(text) }
}

func failure(text string) noticeMsg {
	return noticeMsg{Title: "Ошибка", Message: text, IsError: true}
}

func confirm(title, message string, onConfirm tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		return confirmMsg{dialog: NewConfirmationDialog(title, message, onConfirm)}
	}
}

// describe turns service errors into something a shop assistant can act on
func describe(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, auth.ErrAccessDenied):
		return "Недостаточно прав для этого действия"
	case errors.Is(err, auth.ErrNotFound):
		return "Неверный логин или пароль"
	case errors.Is(err, catalog.ErrDuplicate):
		return "Товар с таким артикулом уже существует"
	case errors.Is(err, catalog.ErrInUse):
		return "Товар присутствует в заказе, удаление невозможно"
	case errors.Is(err, catalog.ErrNotFound):
		return "Товар не найден"
	case errors.Is(err, orders.ErrDuplicate):
		return "Заказ с таким номером уже существует"
	case errors.Is(err, orders.ErrNotFound):
		return "Заказ не найден"
	}
	zap.L().Error("action failed", zap.Error(err))
	return "Ошибка базы данных: " + err.Error()
}
