// Package importer fills a fresh store from the four spreadsheet sources.
package importer

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/flowershop/internal/assets"
	"github.com/talkincode/flowershop/internal/domain"
)

// Sources spreadsheet file paths
type Sources struct {
	Users        string
	Products     string
	PickupPoints string
	Orders       string
}

// Result per-source counters
type Result struct {
	Source   string `json:"source"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

func (r *Result) skip(row int, reason string, fields ...zap.Field) {
	r.Skipped++
	zap.L().Warn("import row skipped",
		append([]zap.Field{
			zap.String("source", r.Source),
			zap.Int("row", row),
			zap.String("reason", reason),
		}, fields...)...)
}

type Report struct {
	Users        Result `json:"users"`
	Products     Result `json:"products"`
	PickupPoints Result `json:"pickup_points"`
	Orders       Result `json:"orders"`
}

// Results in import order
func (r *Report) Results() []Result {
	return []Result{r.Users, r.Products, r.PickupPoints, r.Orders}
}

type Importer struct {
	db        *gorm.DB
	assets    *assets.Store
	imagesDir string
}

// New images referenced by the product sheet are looked up in imagesDir.
func New(db *gorm.DB, store *assets.Store, imagesDir string) *Importer {
	return &Importer{db: db, assets: store, imagesDir: imagesDir}
}

// Run imports every source in dependency order. A source that cannot be read is
// reported in the returned error but does not stop the remaining sources.
func (im *Importer) Run(ctx context.Context, src Sources) (*Report, error) {
	var (
		report Report
		errs   error
		err    error
	)
	report.Users, err = im.ImportUsers(ctx, src.Users)
	errs = multierr.Append(errs, err)
	report.Products, err = im.ImportProducts(ctx, src.Products)
	errs = multierr.Append(errs, err)
	report.PickupPoints, err = im.ImportPickupPoints(ctx, src.PickupPoints)
	errs = multierr.Append(errs, err)
	report.Orders, err = im.ImportOrders(ctx, src.Orders)
	errs = multierr.Append(errs, err)

	for _, r := range report.Results() {
		zap.L().Info("import finished",
			zap.String("source", r.Source),
			zap.Int("imported", r.Imported),
			zap.Int("skipped", r.Skipped))
	}
	return &report, errs
}

// ImportUsers columns: role, full name, login, password.
func (im *Importer) ImportUsers(ctx context.Context, path string) (Result, error) {
	res := Result{Source: filepath.Base(path)}
	db := im.db.WithContext(ctx)

	rows, err := readRows(path)
	if err == nil {
		for i, row := range rows {
			if i == 0 {
				continue
			}
			roleName, fio := cellValue(row, 0), cellValue(row, 1)
			login, password := cellValue(row, 2), cellValue(row, 3)
			if roleName == "" || fio == "" || login == "" || password == "" {
				res.skip(i+1, "missing mandatory field")
				continue
			}

			role, err := ensureRole(db, roleName)
			if err != nil {
				res.skip(i+1, "role", zap.Error(err))
				continue
			}
			surname, name, patronymic := domain.SplitFullName(fio)
			user := domain.User{
				Surname:    surname,
				Name:       name,
				Patronymic: patronymic,
				Login:      login,
				Password:   password,
				RoleID:     role.ID,
			}
			if err := db.Create(&user).Error; err != nil {
				res.skip(i+1, "insert", zap.String("login", login), zap.Error(err))
				continue
			}
			res.Imported++
		}
	}

	for _, name := range []string{domain.RoleClient, domain.RoleGuest} {
		if _, rerr := ensureRole(db, name); rerr != nil {
			err = multierr.Append(err, errors.Wrapf(rerr, "ensure role %s", name))
		}
	}
	return res, err
}

func ensureRole(db *gorm.DB, name string) (*domain.Role, error) {
	var role domain.Role
	if err := db.Where(domain.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// ImportProducts columns: article, name, unit, cost, max discount, manufacturer,
// supplier, category, discount, quantity, description, image file name.
func (im *Importer) ImportProducts(ctx context.Context, path string) (Result, error) {
	res := Result{Source: filepath.Base(path)}
	rows, err := readRows(path)
	if err != nil {
		return res, err
	}
	db := im.db.WithContext(ctx)

	for i, row := range rows {
		if i == 0 {
			continue
		}
		article := cellValue(row, 0)
		if article == "" {
			res.skip(i+1, "missing article")
			continue
		}

		p := domain.Product{
			Article:      article,
			Name:         cellValue(row, 1),
			Unit:         cellValue(row, 2),
			Manufacturer: cellValue(row, 5),
			Supplier:     cellValue(row, 6),
			Category:     cellValue(row, 7),
			Description:  cellValue(row, 10),
		}
		var perr error
		p.Cost, perr = toFloat(cellValue(row, 3))
		if perr == nil {
			p.MaxDiscount, perr = toInt(cellValue(row, 4))
		}
		if perr == nil {
			p.Discount, perr = toInt(cellValue(row, 8))
		}
		if perr == nil {
			p.Quantity, perr = toInt(cellValue(row, 9))
		}
		if perr != nil {
			res.skip(i+1, "bad number", zap.String("article", article), zap.Error(perr))
			continue
		}

		if image := cellValue(row, 11); image != "" {
			rel, ok, err := im.assets.ImportIfAbsent(filepath.Join(im.imagesDir, image))
			switch {
			case err != nil:
				zap.L().Warn("product image not copied", zap.String("article", article), zap.Error(err))
			case ok:
				p.ImagePath = &rel
			}
		}

		if err := db.Create(&p).Error; err != nil {
			res.skip(i+1, "insert", zap.String("article", article), zap.Error(err))
			continue
		}
		res.Imported++
	}
	return res, nil
}

// ImportPickupPoints one address per row in the first column. The sheet has no header.
func (im *Importer) ImportPickupPoints(ctx context.Context, path string) (Result, error) {
	res := Result{Source: filepath.Base(path)}
	rows, err := readRows(path)
	if err != nil {
		return res, err
	}
	db := im.db.WithContext(ctx)

	for i, row := range rows {
		addr := cellValue(row, 0)
		if addr == "" {
			res.skip(i+1, "empty address")
			continue
		}
		if err := db.Create(&domain.PickupPoint{Address: addr}).Error; err != nil {
			res.skip(i+1, "insert", zap.Error(err))
			continue
		}
		res.Imported++
	}
	return res, nil
}

// ImportOrders columns: id, composition, order date, delivery date, pickup point id,
// client full name, pickup code, status.
func (im *Importer) ImportOrders(ctx context.Context, path string) (Result, error) {
	res := Result{Source: filepath.Base(path)}
	rows, err := readRows(path)
	if err != nil {
		return res, err
	}
	db := im.db.WithContext(ctx)

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rawID := cellValue(row, 0)
		if rawID == "" {
			res.skip(i+1, "missing order id")
			continue
		}

		var (
			o    domain.Order
			perr error
			id   int
		)
		id, perr = toInt(rawID)
		o.ID = int64(id)
		if perr == nil {
			var pp int
			pp, perr = toInt(cellValue(row, 4))
			o.PickupPointID = int64(pp)
		}
		if perr == nil {
			o.PickupCode, perr = toInt(cellValue(row, 6))
		}
		if perr != nil {
			res.skip(i+1, "bad number", zap.String("id", rawID), zap.Error(perr))
			continue
		}
		o.OrderDate = normalizeDate(cellValue(row, 2))
		o.DeliveryDate = normalizeDate(cellValue(row, 3))
		if client := cellValue(row, 5); client != "" {
			o.ClientName = &client
		}
		o.Status = cellValue(row, 7)

		if err := db.Create(&o).Error; err != nil {
			res.skip(i+1, "insert", zap.Int64("id", o.ID), zap.Error(err))
			continue
		}
		res.Imported++

		for _, it := range domain.ParseComposition(cellValue(row, 1)) {
			var n int64
			if err := db.Model(&domain.Product{}).Where("article = ?", it.Article).Count(&n).Error; err != nil || n == 0 {
				zap.L().Warn("order line skipped, unknown product",
					zap.Int64("order_id", o.ID), zap.String("article", it.Article))
				continue
			}
			line := domain.OrderProduct{OrderID: o.ID, ProductArticle: it.Article, Quantity: it.Quantity}
			if err := db.Create(&line).Error; err != nil {
				zap.L().Warn("order line skipped",
					zap.Int64("order_id", o.ID), zap.String("article", it.Article), zap.Error(err))
			}
		}
	}
	return res, nil
}
