package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/talkincode/flowershop/internal/catalog"
	"github.com/talkincode/flowershop/internal/domain"
)

// product editor fields
const (
	pArticle = iota
	pName
	pCategory
	pDescription
	pManufacturer
	pSupplier
	pUnit
	pCost
	pDiscount
	pMaxDiscount
	pQuantity
	pImage
)

type productSavedMsg struct{ article string }

type productDeletedMsg struct{ article string }

type imageAttachedMsg struct{ path string }

type productScreen struct {
	sess    *session
	form    *form
	article string
	isNew   bool
}

func newProductScreen(sess *session, p *domain.Product) *productScreen {
	f := newForm("Артикул", "Наименование", "Категория", "Описание", "Производитель",
		"Поставщик", "Единица измерения", "Цена", "Скидка, %", "Макс. скидка, %", "Количество на складе", "Изображение")
	s := &productScreen{sess: sess, form: f, isNew: p == nil}
	if p == nil {
		f.set(pUnit, "шт.")
		f.set(pDiscount, "0")
		f.set(pMaxDiscount, "0")
		f.set(pQuantity, "0")
		return s
	}

	s.article = p.Article
	v := catalog.FormOf(p)
	for i, val := range []string{v.Article, v.Name, v.Category, v.Description, v.Manufacturer,
		v.Supplier, v.Unit, v.Cost, v.Discount, v.MaxDiscount, v.Quantity, v.ImagePath} {
		f.set(i, val)
	}
	f.lock(pArticle)
	return s
}

func (s *productScreen) Title() string {
	if s.isNew {
		return "Новый товар"
	}
	return "Товар " + s.article
}

func (s *productScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *productScreen) values() catalog.Form {
	f := s.form
	return catalog.Form{
		Article:      f.value(pArticle),
		Name:         f.value(pName),
		Unit:         f.value(pUnit),
		Cost:         f.value(pCost),
		MaxDiscount:  f.value(pMaxDiscount),
		Manufacturer: f.value(pManufacturer),
		Supplier:     f.value(pSupplier),
		Category:     f.value(pCategory),
		Discount:     f.value(pDiscount),
		Quantity:     f.value(pQuantity),
		Description:  f.value(pDescription),
		ImagePath:    f.value(pImage),
	}
}

func (s *productScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case productSavedMsg:
		return s, tea.Batch(back, notify("Сохранено", "Товар "+msg.article+" сохранён"))
	case productDeletedMsg:
		return s, tea.Batch(back, notify("Удалено", "Товар "+msg.article+" удалён"))
	case imageAttachedMsg:
		s.form.set(pImage, msg.path)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, back
		case "ctrl+s":
			return s, s.save()
		case "ctrl+o":
			return s, s.attach()
		case "ctrl+d":
			if s.isNew {
				return s, nil
			}
			return s, confirm("Удаление товара", "Удалить товар "+s.article+"?", s.delete())
		}
		return s, s.form.Update(msg)
	}
	return s, s.form.Tick(msg)
}

func (s *productScreen) save() tea.Cmd {
	sess, form, isNew, article := s.sess, s.values(), s.isNew, s.article
	return func() tea.Msg {
		p, err := sess.Catalog.Save(sess.ctx, form, isNew, article)
		if err != nil {
			return failure(describe(err))
		}
		return productSavedMsg{article: p.Article}
	}
}

// attach copies the file named in the image field into the image store
func (s *productScreen) attach() tea.Cmd {
	sess, src := s.sess, s.form.value(pImage)
	return func() tea.Msg {
		rel, err := sess.Catalog.AttachImage(src)
		if err != nil {
			return failure("Не удалось скопировать изображение: " + err.Error())
		}
		return imageAttachedMsg{path: rel}
	}
}

func (s *productScreen) delete() tea.Cmd {
	sess, article := s.sess, s.article
	return func() tea.Msg {
		if err := sess.Catalog.Delete(sess.ctx, article); err != nil {
			return failure(describe(err))
		}
		return productDeletedMsg{article: article}
	}
}

func (s *productScreen) View() string {
	keys := []string{"tab", "следующее поле", "ctrl+o", "прикрепить изображение", "ctrl+s", "сохранить"}
	if !s.isNew {
		keys = append(keys, "ctrl+d", "удалить")
	}
	keys = append(keys, "esc", "назад")
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.Title()),
		"",
		s.form.View(),
		mutedStyle.Render("Для изображения укажите путь к файлу и нажмите ctrl+o"),
		helpLine(keys...),
	)
}
