package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/talkincode/flowershop/internal/auth"
	"github.com/talkincode/flowershop/internal/orders"
)

type ordersLoadedMsg struct{ rows []orders.Row }

type ordersScreen struct {
	sess   *session
	rows   []orders.Row
	cursor int
}

func newOrdersScreen(sess *session) *ordersScreen {
	return &ordersScreen{sess: sess}
}

func (s *ordersScreen) Title() string { return "Заказы" }

func (s *ordersScreen) Init() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		rows, err := sess.Orders.List(sess.ctx)
		if err != nil {
			return failure(describe(err))
		}
		return ordersLoadedMsg{rows: rows}
	}
}

func (s *ordersScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		s.rows = msg.rows
		if s.cursor >= len(s.rows) {
			s.cursor = len(s.rows) - 1
		}
		if s.cursor < 0 {
			s.cursor = 0
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.rows)-1 {
				s.cursor++
			}
		case "a":
			if err := s.sess.user.Require(auth.EditOrder); err != nil {
				return s, fail(err)
			}
			return s, open(newOrderScreen(s.sess, nil))
		case "enter", "e":
			if err := s.sess.user.Require(auth.EditOrder); err != nil {
				return s, fail(err)
			}
			if len(s.rows) > 0 {
				return s, s.edit(s.rows[s.cursor].ID)
			}
		case "esc":
			return s, back
		}
	}
	return s, nil
}

func (s *ordersScreen) edit(id int64) tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		d, err := sess.Orders.Get(sess.ctx, id)
		if err != nil {
			return failure(describe(err))
		}
		return openMsg{s: newOrderScreen(sess, d)}
	}
}

func (s *ordersScreen) View() string {
	if len(s.rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("\nЗаказов нет\n"),
			helpLine("a", "добавить", "esc", "назад"))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("№", "Статус", "Дата заказа", "Дата доставки", "Пункт выдачи", "Клиент", "Код").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == s.cursor:
				return cellStyle.Reverse(true)
			}
			return cellStyle
		})
	for _, r := range s.rows {
		t.Row(strconv.FormatInt(r.ID, 10), r.Status, r.OrderDate, r.DeliveryDate,
			r.PickupAddress, r.ClientName, strconv.Itoa(r.PickupCode))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Render(),
		helpLine("↑/↓", "выбор", "enter", "изменить", "a", "добавить", "esc", "назад"))
}
