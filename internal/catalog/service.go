// Package catalog lists, edits and exports products.
package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/talkincode/flowershop/internal/assets"
	"github.com/talkincode/flowershop/internal/domain"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrDuplicate = errors.New("product with this article already exists")
	ErrInUse     = errors.New("product is part of an order")
)

// AllSuppliers selector value meaning no supplier filter
const AllSuppliers = "Все поставщики"

// Sort order of the catalog by stock quantity
type Sort int

const (
	SortNone Sort = iota
	SortAsc
	SortDesc
)

// Next cycles none, ascending, descending
func (s Sort) Next() Sort {
	return (s + 1) % 3
}

func (s Sort) String() string {
	switch s {
	case SortAsc:
		return "по возрастанию"
	case SortDesc:
		return "по убыванию"
	}
	return "без сортировки"
}

type Filter struct {
	Supplier string
	Search   string
	Sort     Sort
}

// Form the product editor fields as typed
type Form struct {
	Article      string
	Name         string
	Unit         string
	Cost         string
	MaxDiscount  string
	Manufacturer string
	Supplier     string
	Category     string
	Discount     string
	Quantity     string
	Description  string
	ImagePath    string
}

// FormOf fills a form from a stored product
func FormOf(p *domain.Product) Form {
	f := Form{
		Article:      p.Article,
		Name:         p.Name,
		Unit:         p.Unit,
		Cost:         decimal.NewFromFloat(p.Cost).StringFixed(2),
		MaxDiscount:  strconv.Itoa(p.MaxDiscount),
		Manufacturer: p.Manufacturer,
		Supplier:     p.Supplier,
		Category:     p.Category,
		Discount:     strconv.Itoa(p.Discount),
		Quantity:     strconv.Itoa(p.Quantity),
		Description:  p.Description,
	}
	if p.ImagePath != nil {
		f.ImagePath = *p.ImagePath
	}
	return f
}

type Service struct {
	db     *gorm.DB
	assets *assets.Store
}

func NewService(db *gorm.DB, store *assets.Store) *Service {
	return &Service{db: db, assets: store}
}

// List products by article, narrowed by filter. The search text matches any
// of the descriptive columns ignoring case.
func (s *Service) List(ctx context.Context, f Filter) ([]Row, error) {
	query := s.db.WithContext(ctx).Model(&domain.Product{})
	if f.Supplier != "" && f.Supplier != AllSuppliers {
		query = query.Where("supplier = ?", f.Supplier)
	}
	switch f.Sort {
	case SortAsc:
		query = query.Order("quantity ASC").Order("article")
	case SortDesc:
		query = query.Order("quantity DESC").Order("article")
	default:
		query = query.Order("article")
	}

	var products []domain.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "query products")
	}

	needle := fold(strings.TrimSpace(f.Search))
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		if needle != "" && !matches(p, needle) {
			continue
		}
		rows = append(rows, NewRow(p))
	}
	return rows, nil
}

// sqlite LOWER only folds ASCII, Cyrillic text is compared here instead.
func fold(s string) string {
	return cases.Fold().String(s)
}

func matches(p domain.Product, needle string) bool {
	for _, field := range []string{p.Article, p.Name, p.Description, p.Category, p.Manufacturer, p.Supplier} {
		if strings.Contains(fold(field), needle) {
			return true
		}
	}
	return false
}

// Suppliers distinct supplier names, sorted
func (s *Service) Suppliers(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&domain.Product{}).
		Distinct("supplier").
		Where("supplier <> ''").
		Pluck("supplier", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "query suppliers")
	}
	sort.Strings(names)
	return names, nil
}

func (s *Service) Get(ctx context.Context, article string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("article = ?", article).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query product")
	}
	return &p, nil
}

// Save validates the form and creates or updates the product. On update the
// stored article is kept whatever the form says.
func (s *Service) Save(ctx context.Context, f Form, isNew bool, article string) (*domain.Product, error) {
	p, err := f.product()
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	if isNew {
		if p.Article == "" {
			return nil, domain.Invalid("article", "артикул не указан")
		}
		var count int64
		if err := db.Model(&domain.Product{}).Where("article = ?", p.Article).Count(&count).Error; err != nil {
			return nil, errors.Wrap(err, "check article")
		}
		if count > 0 {
			return nil, ErrDuplicate
		}
		if err := s.image(p); err != nil {
			return nil, err
		}
		if err := db.Create(p).Error; err != nil {
			return nil, errors.Wrap(err, "create product")
		}
		zap.L().Info("product created", zap.String("article", p.Article))
		return p, nil
	}

	current, err := s.Get(ctx, article)
	if err != nil {
		return nil, err
	}
	p.Article = current.Article
	if err := s.image(p); err != nil {
		return nil, err
	}
	if err := db.Save(p).Error; err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	zap.L().Info("product updated", zap.String("article", p.Article))
	return p, nil
}

// image keeps the product image inside the image directory. A file picked
// from elsewhere is copied in first.
func (s *Service) image(p *domain.Product) error {
	if p.ImagePath == nil {
		return nil
	}
	src := *p.ImagePath
	rel, ok := s.assets.Rel(src)
	if !ok {
		var err error
		if rel, err = s.assets.Put(src); err != nil {
			zap.L().Warn("product image not copied", zap.String("article", p.Article), zap.String("src", src), zap.Error(err))
			return domain.Invalid("image", "файл изображения не найден или не может быть скопирован")
		}
	}
	p.ImagePath = &rel
	return nil
}

// DefaultUnit used when the unit field is left empty
const DefaultUnit = "шт."

func (f Form) product() (*domain.Product, error) {
	p := &domain.Product{
		Article:      strings.TrimSpace(f.Article),
		Name:         strings.TrimSpace(f.Name),
		Unit:         strings.TrimSpace(f.Unit),
		Manufacturer: strings.TrimSpace(f.Manufacturer),
		Supplier:     strings.TrimSpace(f.Supplier),
		Category:     strings.TrimSpace(f.Category),
		Description:  strings.TrimSpace(f.Description),
	}
	if p.Name == "" {
		return nil, domain.Invalid("name", "наименование не указано")
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}

	cost, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(f.Cost), ",", "."))
	if err != nil {
		return nil, domain.Invalid("cost", "цена должна быть числом")
	}
	if cost.IsNegative() {
		return nil, domain.Invalid("cost", "цена не может быть отрицательной")
	}
	p.Cost = cost.InexactFloat64()

	if p.Quantity, err = strconv.Atoi(strings.TrimSpace(f.Quantity)); err != nil {
		return nil, domain.Invalid("quantity", "количество должно быть целым числом")
	}
	if p.Quantity < 0 {
		return nil, domain.Invalid("quantity", "количество не может быть отрицательным")
	}
	if p.Discount, err = percent("discount", f.Discount); err != nil {
		return nil, err
	}
	if p.MaxDiscount, err = percent("max_discount", f.MaxDiscount); err != nil {
		return nil, err
	}
	if path := strings.TrimSpace(f.ImagePath); path != "" {
		p.ImagePath = &path
	}
	return p, nil
}

func percent(field, text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, domain.Invalid(field, "скидка должна быть целым числом")
	}
	if v < 0 || v > 100 {
		return 0, domain.Invalid(field, "скидка должна быть от 0 до 100")
	}
	return v, nil
}

// AttachImage copies src into the product image directory and returns the
// path to put into the form.
func (s *Service) AttachImage(src string) (string, error) {
	rel, err := s.assets.Put(src)
	if err != nil {
		zap.L().Warn("attach image", zap.String("src", src), zap.Error(err))
		return "", err
	}
	return rel, nil
}

// Delete removes an unreferenced product and, best effort, its image.
func (s *Service) Delete(ctx context.Context, article string) error {
	p, err := s.Get(ctx, article)
	if err != nil {
		return err
	}
	db := s.db.WithContext(ctx)

	var refs int64
	if err := db.Model(&domain.OrderProduct{}).Where("product_article = ?", article).Count(&refs).Error; err != nil {
		return errors.Wrap(err, "check order lines")
	}
	if refs > 0 {
		return ErrInUse
	}

	if err := db.Where("article = ?", article).Delete(&domain.Product{}).Error; err != nil {
		return errors.Wrap(err, "delete product")
	}
	if p.ImagePath != nil {
		s.assets.Remove(*p.ImagePath)
	}
	zap.L().Info("product deleted", zap.String("article", article))
	return nil
}
