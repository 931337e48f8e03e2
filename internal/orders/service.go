// Package orders lists and edits orders together with their line items.
package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/flowershop/internal/domain"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrDuplicate = errors.New("order with this number already exists")
)

// Row one line of the orders table
type Row struct {
	ID            int64
	Status        string
	OrderDate     string
	DeliveryDate  string
	PickupAddress string
	ClientName    string
	PickupCode    int
}

// Detail an order with its line items
type Detail struct {
	Order domain.Order
	Lines []domain.OrderProduct
}

func (d *Detail) Composition() string {
	items := make([]domain.LineItem, 0, len(d.Lines))
	for _, l := range d.Lines {
		items = append(items, domain.LineItem{Article: l.ProductArticle, Quantity: l.Quantity})
	}
	return domain.FormatComposition(items)
}

// Form the order editor fields as typed
type Form struct {
	ID            string
	Status        string
	OrderDate     string
	DeliveryDate  string
	PickupPointID int64
	ClientName    string
	PickupCode    string
	Composition   string
}

// FormOf fills a form from a stored order
func FormOf(d *Detail) Form {
	f := Form{
		ID:            strconv.FormatInt(d.Order.ID, 10),
		Status:        d.Order.Status,
		OrderDate:     d.Order.OrderDate,
		DeliveryDate:  d.Order.DeliveryDate,
		PickupPointID: d.Order.PickupPointID,
		PickupCode:    strconv.Itoa(d.Order.PickupCode),
		Composition:   d.Composition(),
	}
	if d.Order.ClientName != nil {
		f.ClientName = *d.Order.ClientName
	}
	return f
}

// Result of a successful save. Warnings name line items that were left out.
type Result struct {
	Order    domain.Order
	Created  bool
	Lines    []domain.OrderProduct
	Warnings []string
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List every order with its pickup address, by id
func (s *Service) List(ctx context.Context) ([]Row, error) {
	var orders []domain.Order
	err := s.db.WithContext(ctx).Preload("PickupPoint").Order("id").Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		r := Row{
			ID:           o.ID,
			Status:       o.Status,
			OrderDate:    o.OrderDate,
			DeliveryDate: o.DeliveryDate,
			PickupCode:   o.PickupCode,
		}
		if o.PickupPoint != nil {
			r.PickupAddress = o.PickupPoint.Address
		}
		if o.ClientName != nil {
			r.ClientName = *o.ClientName
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (s *Service) PickupPoints(ctx context.Context) ([]domain.PickupPoint, error) {
	var points []domain.PickupPoint
	err := s.db.WithContext(ctx).Order("id").Find(&points).Error
	return points, errors.Wrap(err, "query pickup points")
}

func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	db := s.db.WithContext(ctx)
	var d Detail
	err := db.Preload("PickupPoint").Where("id = ?", id).First(&d.Order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query order")
	}
	if err := db.Where("order_id = ?", id).Order("product_article").Find(&d.Lines).Error; err != nil {
		return nil, errors.Wrap(err, "query order lines")
	}
	return &d, nil
}

// Save validates the form and stores the order. A new order must not reuse an
// existing number. When editing, an existing number is updated in place and its
// line items are replaced by the submitted ones; a number that is not taken yet
// is inserted as a new order.
func (s *Service) Save(ctx context.Context, f Form, isNew bool) (*Result, error) {
	o, items, err := f.order()
	if err != nil {
		return nil, err
	}

	res := &Result{Order: *o}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Order{}).Where("id = ?", o.ID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "check order id")
		}
		exists := count > 0
		if isNew && exists {
			return ErrDuplicate
		}

		if exists {
			if err := tx.Save(o).Error; err != nil {
				return errors.Wrap(err, "update order")
			}
			if err := tx.Where("order_id = ?", o.ID).Delete(&domain.OrderProduct{}).Error; err != nil {
				return errors.Wrap(err, "clear order lines")
			}
		} else {
			if err := tx.Create(o).Error; err != nil {
				return errors.Wrap(err, "create order")
			}
			res.Created = true
		}

		for _, it := range items {
			var n int64
			if err := tx.Model(&domain.Product{}).Where("article = ?", it.Article).Count(&n).Error; err != nil {
				return errors.Wrap(err, "check product")
			}
			if n == 0 {
				res.Warnings = append(res.Warnings, fmt.Sprintf("товар %s не найден и не добавлен в заказ", it.Article))
				continue
			}
			line := domain.OrderProduct{OrderID: o.ID, ProductArticle: it.Article, Quantity: it.Quantity}
			if err := tx.Create(&line).Error; err != nil {
				return errors.Wrapf(err, "insert line %s", it.Article)
			}
			res.Lines = append(res.Lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, w := range res.Warnings {
		zap.L().Warn("order line skipped", zap.Int64("order_id", o.ID), zap.String("reason", w))
	}
	zap.L().Info("order saved", zap.Int64("id", o.ID), zap.Bool("created", res.Created), zap.Int("lines", len(res.Lines)))
	return res, nil
}

// Delete removes the order; its line items go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{})
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "delete order")
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	zap.L().Info("order deleted", zap.Int64("id", id))
	return nil
}

func (f Form) order() (*domain.Order, []domain.LineItem, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(f.ID), 10, 64)
	if err != nil {
		return nil, nil, domain.Invalid("id", "номер заказа должен быть целым числом")
	}
	o := &domain.Order{
		ID:            id,
		Status:        strings.TrimSpace(f.Status),
		OrderDate:     strings.TrimSpace(f.OrderDate),
		DeliveryDate:  strings.TrimSpace(f.DeliveryDate),
		PickupPointID: f.PickupPointID,
	}
	if o.Status == "" {
		return nil, nil, domain.Invalid("status", "статус не указан")
	}
	if !isDate(o.OrderDate) {
		return nil, nil, domain.Invalid("order_date", "дата заказа должна быть в формате ГГГГ-ММ-ДД")
	}
	if !isDate(o.DeliveryDate) {
		return nil, nil, domain.Invalid("delivery_date", "дата доставки должна быть в формате ГГГГ-ММ-ДД")
	}
	if o.PickupPointID <= 0 {
		return nil, nil, domain.Invalid("pickup_point", "пункт выдачи не выбран")
	}
	if o.PickupCode, err = strconv.Atoi(strings.TrimSpace(f.PickupCode)); err != nil {
		return nil, nil, domain.Invalid("pickup_code", "код получения должен быть целым числом")
	}
	if client := strings.TrimSpace(f.ClientName); client != "" {
		o.ClientName = &client
	}

	// one line per article, repeated articles add up
	var items []domain.LineItem
	index := map[string]int{}
	for _, it := range domain.ParseComposition(f.Composition) {
		if it.Quantity <= 0 {
			continue
		}
		if i, ok := index[it.Article]; ok {
			items[i].Quantity += it.Quantity
			continue
		}
		index[it.Article] = len(items)
		items = append(items, it)
	}
	return o, items, nil
}

// isDate accepts exactly three dash separated integers
func isDate(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return false
		}
	}
	return true
}
