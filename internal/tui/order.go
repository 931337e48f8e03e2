package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/talkincode/flowershop/internal/domain"
	"github.com/talkincode/flowershop/internal/orders"
)

// order editor fields
const (
	oID = iota
	oStatus
	oOrderDate
	oDeliveryDate
	oPickup
	oClient
	oCode
	oComposition
)

type pickupPointsMsg struct{ points []domain.PickupPoint }

type orderSavedMsg struct{ res *orders.Result }

type orderDeletedMsg struct{ id int64 }

type orderScreen struct {
	sess   *session
	form   *form
	isNew  bool
	id     int64
	pickup int64
	points []domain.PickupPoint
}

func newOrderScreen(sess *session, d *orders.Detail) *orderScreen {
	f := newForm("Номер заказа", "Статус", "Дата заказа", "Дата доставки", "Пункт выдачи",
		"ФИО клиента", "Код получения", "Состав (артикул, кол-во, ...)")
	f.selector(oPickup, []string{}, 0)
	s := &orderScreen{sess: sess, form: f, isNew: d == nil}
	if d == nil {
		today := time.Now().Format("2006-01-02")
		f.set(oStatus, "Новый")
		f.set(oOrderDate, today)
		f.set(oDeliveryDate, today)
		return s
	}

	s.id = d.Order.ID
	s.pickup = d.Order.PickupPointID
	v := orders.FormOf(d)
	f.set(oID, v.ID)
	f.set(oStatus, v.Status)
	f.set(oOrderDate, v.OrderDate)
	f.set(oDeliveryDate, v.DeliveryDate)
	f.set(oClient, v.ClientName)
	f.set(oCode, v.PickupCode)
	f.set(oComposition, v.Composition)
	return s
}

func (s *orderScreen) Title() string {
	if s.isNew {
		return "Новый заказ"
	}
	return "Заказ №" + strconv.FormatInt(s.id, 10)
}

func (s *orderScreen) Init() tea.Cmd {
	sess := s.sess
	return tea.Batch(textinput.Blink, func() tea.Msg {
		points, err := sess.Orders.PickupPoints(sess.ctx)
		if err != nil {
			return failure(describe(err))
		}
		return pickupPointsMsg{points: points}
	})
}

func (s *orderScreen) values() orders.Form {
	f := s.form
	v := orders.Form{
		ID:           f.value(oID),
		Status:       f.value(oStatus),
		OrderDate:    f.value(oOrderDate),
		DeliveryDate: f.value(oDeliveryDate),
		ClientName:   f.value(oClient),
		PickupCode:   f.value(oCode),
		Composition:  f.value(oComposition),
	}
	if c := f.choice(oPickup); c < len(s.points) {
		v.PickupPointID = s.points[c].ID
	}
	return v
}

func (s *orderScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pickupPointsMsg:
		s.points = msg.points
		addresses := make([]string, 0, len(msg.points))
		choice := 0
		for i, p := range msg.points {
			addresses = append(addresses, p.Address)
			if p.ID == s.pickup {
				choice = i
			}
		}
		s.form.selector(oPickup, addresses, choice)
		return s, nil

	case orderSavedMsg:
		text := "Заказ №" + strconv.FormatInt(msg.res.Order.ID, 10) + " сохранён"
		if len(msg.res.Warnings) > 0 {
			text += "\n\n" + strings.Join(msg.res.Warnings, "\n")
			return s, tea.Batch(back, func() tea.Msg {
				return noticeMsg{Title: "Сохранено с предупреждениями", Message: text}
			})
		}
		return s, tea.Batch(back, notify("Сохранено", text))

	case orderDeletedMsg:
		return s, tea.Batch(back, notify("Удалено", "Заказ №"+strconv.FormatInt(msg.id, 10)+" удалён"))

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, back
		case "ctrl+s":
			return s, s.save()
		case "ctrl+d":
			if s.isNew {
				return s, nil
			}
			return s, confirm("Удаление заказа", "Удалить "+strings.ToLower(s.Title())+"?", s.delete())
		}
		return s, s.form.Update(msg)
	}
	return s, s.form.Tick(msg)
}

func (s *orderScreen) save() tea.Cmd {
	sess, form, isNew := s.sess, s.values(), s.isNew
	return func() tea.Msg {
		res, err := sess.Orders.Save(sess.ctx, form, isNew)
		if err != nil {
			return failure(describe(err))
		}
		return orderSavedMsg{res: res}
	}
}

func (s *orderScreen) delete() tea.Cmd {
	sess, id := s.sess, s.id
	return func() tea.Msg {
		if err := sess.Orders.Delete(sess.ctx, id); err != nil {
			return failure(describe(err))
		}
		return orderDeletedMsg{id: id}
	}
}

func (s *orderScreen) View() string {
	keys := []string{"tab", "следующее поле", "←/→", "пункт выдачи", "ctrl+s", "сохранить"}
	if !s.isNew {
		keys = append(keys, "ctrl+d", "удалить")
	}
	keys = append(keys, "esc", "назад")
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.Title()),
		"",
		s.form.View(),
		mutedStyle.Render("Даты в формате ГГГГ-ММ-ДД"),
		helpLine(keys...),
	)
}
