package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/talkincode/flowershop/internal/auth"
	"github.com/talkincode/flowershop/internal/catalog"
)

// catalogLoadedMsg carries the filter it was loaded for
type catalogLoadedMsg struct {
	filter    catalog.Filter
	rows      []catalog.Row
	suppliers []string
}

type catalogScreen struct {
	sess      *session
	rows      []catalog.Row
	suppliers []string
	supplier  string
	sort      catalog.Sort
	search    textinput.Model
	searching bool
	cursor    int
	offset    int
}

func newCatalogScreen(sess *session) *catalogScreen {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "артикул, название, описание..."
	in.Width = 32
	return &catalogScreen{
		sess:      sess,
		suppliers: []string{catalog.AllSuppliers},
		supplier:  catalog.AllSuppliers,
		search:    in,
	}
}

func (s *catalogScreen) Title() string { return "Каталог товаров" }

func (s *catalogScreen) Init() tea.Cmd {
	return s.load()
}

func (s *catalogScreen) filter() catalog.Filter {
	return catalog.Filter{Supplier: s.supplier, Search: s.search.Value(), Sort: s.sort}
}

func (s *catalogScreen) load() tea.Cmd {
	sess, f := s.sess, s.filter()
	return func() tea.Msg {
		rows, err := sess.Catalog.List(sess.ctx, f)
		if err != nil {
			return failure(describe(err))
		}
		suppliers, err := sess.Catalog.Suppliers(sess.ctx)
		if err != nil {
			return failure(describe(err))
		}
		return catalogLoadedMsg{filter: f, rows: rows, suppliers: suppliers}
	}
}

func (s *catalogScreen) selected() *catalog.Row {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	return &s.rows[s.cursor]
}

func (s *catalogScreen) nextSupplier() {
	for i, name := range s.suppliers {
		if name == s.supplier {
			s.supplier = s.suppliers[(i+1)%len(s.suppliers)]
			return
		}
	}
	s.supplier = catalog.AllSuppliers
}

func (s *catalogScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.filter != s.filter() {
			// superseded by a later keystroke
			return s, nil
		}
		s.rows = msg.rows
		s.suppliers = append([]string{catalog.AllSuppliers}, msg.suppliers...)
		s.moveCursor(0)
		return s, nil

	case tea.KeyMsg:
		if s.searching {
			switch msg.String() {
			case "enter", "esc", "down":
				s.searching = false
				s.search.Blur()
				return s, nil
			}
			before := s.search.Value()
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			if s.search.Value() != before {
				s.cursor = 0
				return s, tea.Batch(cmd, s.load())
			}
			return s, cmd
		}

		user := s.sess.user
		switch msg.String() {
		case "/":
			s.searching = true
			return s, s.search.Focus()
		case "s":
			s.nextSupplier()
			return s, s.load()
		case "o":
			s.sort = s.sort.Next()
			return s, s.load()
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "pgup":
			s.moveCursor(-s.pageSize())
		case "pgdown":
			s.moveCursor(s.pageSize())
		case "a":
			if err := user.Require(auth.EditProduct); err != nil {
				return s, fail(err)
			}
			return s, open(newProductScreen(s.sess, nil))
		case "enter", "e":
			if err := user.Require(auth.EditProduct); err != nil {
				return s, fail(err)
			}
			if r := s.selected(); r != nil {
				p := r.Product
				return s, open(newProductScreen(s.sess, &p))
			}
		case "z":
			if err := user.Require(auth.ViewOrders); err != nil {
				return s, fail(err)
			}
			return s, open(newOrdersScreen(s.sess))
		case "x":
			if err := user.Require(auth.ExportCatalog); err != nil {
				return s, fail(err)
			}
			return s, s.export()
		case "esc", "l":
			return s, func() tea.Msg { return logoutMsg{} }
		case "q":
			return s, tea.Quit
		}
		return s, nil
	}
	if s.searching {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *catalogScreen) export() tea.Cmd {
	rows, dir := s.rows, s.sess.ExportDir
	return func() tea.Msg {
		path := filepath.Join(dir, "catalog-"+time.Now().Format("20060102-150405")+".csv")
		if err := writeExport(path, rows); err != nil {
			zap.L().Error("catalog export", zap.String("path", path), zap.Error(err))
			return failure("Не удалось сохранить файл: " + err.Error())
		}
		zap.L().Info("catalog exported", zap.String("path", path), zap.Int("rows", len(rows)))
		return noticeMsg{Title: "Экспорт", Message: fmt.Sprintf("Выгружено товаров: %d\n%s", len(rows), path)}
	}
}

func writeExport(path string, rows []catalog.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create export dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create export file")
	}
	if err := catalog.ExportCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *catalogScreen) pageSize() int {
	if n := s.sess.height - 9; n > 3 {
		return n
	}
	return 3
}

func (s *catalogScreen) moveCursor(delta int) {
	s.cursor += delta
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	page := s.pageSize()
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+page {
		s.offset = s.cursor - page + 1
	}
	if s.offset > len(s.rows) {
		s.offset = 0
	}
}

func (s *catalogScreen) View() string {
	search := s.search.View()
	if !s.searching && s.search.Value() == "" {
		search = mutedStyle.Render("нажмите /")
	}
	status := fmt.Sprintf("Поиск: %s   Поставщик: %s   Сортировка по количеству: %s   Найдено: %d",
		search, s.supplier, s.sort, len(s.rows))

	var body string
	if len(s.rows) == 0 {
		body = mutedStyle.Render("\nТовары не найдены\n")
	} else {
		body = s.table()
	}

	help := helpLine("↑/↓", "выбор", "/", "поиск", "s", "поставщик", "o", "сортировка",
		"enter", "изменить", "a", "добавить", "z", "заказы", "x", "экспорт", "esc", "выход из учётной записи", "q", "закрыть")
	legend := largeDiscountStyle.Render("скидка > 15%") + " " + outOfStockStyle.Render("нет на складе")
	return lipgloss.JoinVertical(lipgloss.Left, status, body, legend, help)
}

func (s *catalogScreen) table() string {
	end := s.offset + s.pageSize()
	if end > len(s.rows) {
		end = len(s.rows)
	}
	window := s.rows[s.offset:end]

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("Артикул", "Наименование", "Категория", "Поставщик", "Цена", "Скидка", "Итого", "Остаток").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			r := window[row]
			style := cellStyle
			switch {
			case r.OutOfStock:
				style = outOfStockStyle
			case r.LargeDiscount:
				style = largeDiscountStyle
			}
			if s.offset+row == s.cursor {
				style = style.Reverse(true)
			}
			return style
		})
	for _, r := range window {
		t.Row(r.Article, r.Name, r.Category, r.Supplier,
			decimal.NewFromFloat(r.Cost).StringFixed(2),
			strconv.Itoa(r.Discount)+"%",
			r.FinalPrice.StringFixed(2),
			strconv.Itoa(r.Quantity)+" "+r.Unit)
	}
	return t.Render()
}
