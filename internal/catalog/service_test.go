package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/flowershop/internal/assets"
	"github.com/talkincode/flowershop/internal/domain"
	"github.com/talkincode/flowershop/internal/testutil"
)

func newService(t *testing.T) (*Service, string) {
	root := t.TempDir()
	db := testutil.OpenDB(t)
	return NewService(db, assets.NewStore(root, filepath.Join(root, "assets", "products"))), root
}

func articles(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Article)
	}
	return out
}

func validForm(article string) Form {
	return Form{
		Article:      article,
		Name:         "Тюльпан",
		Unit:         "шт.",
		Cost:         "120,50",
		MaxDiscount:  "25",
		Manufacturer: "Голландия",
		Supplier:     "Флора",
		Category:     "Цветы",
		Discount:     "5",
		Quantity:     "10",
		Description:  "Жёлтый тюльпан",
	}
}

func TestFinalPrice(t *testing.T) {
	assert.Equal(t, "80.00", FinalPrice(100, 20).StringFixed(2))
	assert.Equal(t, "100.00", FinalPrice(100, 0).StringFixed(2))
	assert.Equal(t, "329.64", FinalPrice(346.99, 5).StringFixed(2))
	assert.Equal(t, "0.00", FinalPrice(59, 100).StringFixed(2))
	// halves round away from zero on the exact decimal value
	assert.Equal(t, "5.03", FinalPrice(10.05, 50).StringFixed(2))
	assert.Equal(t, "0.01", FinalPrice(0.01, 50).StringFixed(2))
	assert.Equal(t, "0.08", FinalPrice(0.15, 50).StringFixed(2))
}

func TestNewRow(t *testing.T) {
	r := NewRow(*testutil.Product("A1", 100, 20, 0))
	assert.True(t, r.OutOfStock)
	assert.True(t, r.LargeDiscount)
	assert.Equal(t, "80.00", r.FinalPrice.StringFixed(2))

	r = NewRow(*testutil.Product("A2", 100, 15, 3))
	assert.False(t, r.OutOfStock)
	assert.False(t, r.LargeDiscount)
}

func TestList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	rose := testutil.Product("B2", 100, 0, 5)
	lily := testutil.Product("A1", 200, 0, 1)
	lily.Name = "Лилия Белая"
	lily.Supplier = "Садовод"
	peony := testutil.Product("C3", 300, 0, 9)
	peony.Description = "ПИОН махровый"
	testutil.Seed(t, svc.db, rose, lily, peony)

	rows, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2", "C3"}, articles(rows))

	rows, err = svc.List(ctx, Filter{Supplier: "Садовод"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, articles(rows))

	rows, err = svc.List(ctx, Filter{Supplier: AllSuppliers, Sort: SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"C3", "B2", "A1"}, articles(rows))

	rows, err = svc.List(ctx, Filter{Sort: SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2", "C3"}, articles(rows))

	rows, err = svc.List(ctx, Filter{Search: "лилия"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, articles(rows))

	rows, err = svc.List(ctx, Filter{Search: " пион "})
	require.NoError(t, err)
	assert.Equal(t, []string{"C3"}, articles(rows))

	rows, err = svc.List(ctx, Filter{Search: "b2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B2"}, articles(rows))

	rows, err = svc.List(ctx, Filter{Search: "флора", Supplier: "Садовод"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSuppliers(t *testing.T) {
	svc, _ := newService(t)
	a := testutil.Product("A1", 1, 0, 1)
	a.Supplier = "Цветы России"
	b := testutil.Product("A2", 1, 0, 1)
	c := testutil.Product("A3", 1, 0, 1)
	c.Supplier = "Агро"
	testutil.Seed(t, svc.db, a, b, c)

	names, err := svc.Suppliers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Агро", "Флора", "Цветы России"}, names)
}

func TestSave_Create(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	p, err := svc.Save(ctx, validForm("T100"), true, "")
	require.NoError(t, err)
	assert.Equal(t, 120.5, p.Cost)
	assert.Nil(t, p.ImagePath)

	rows, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"T100"}, articles(rows))

	_, err = svc.Save(ctx, validForm("T100"), true, "")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSave_Validation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	cases := map[string]func(f *Form){
		"article":      func(f *Form) { f.Article = " " },
		"name":         func(f *Form) { f.Name = "" },
		"cost":         func(f *Form) { f.Cost = "дорого" },
		"cost ":        func(f *Form) { f.Cost = "-1" },
		"quantity":     func(f *Form) { f.Quantity = "1.5" },
		"quantity ":    func(f *Form) { f.Quantity = "-2" },
		"discount":     func(f *Form) { f.Discount = "101" },
		"max_discount": func(f *Form) { f.MaxDiscount = "x" },
	}
	for field, mutate := range cases {
		f := validForm("V1")
		mutate(&f)
		_, err := svc.Save(ctx, f, true, "")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, field)
	}

	var count int64
	require.NoError(t, svc.db.Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSave_UpdateKeepsArticle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	testutil.Seed(t, svc.db, testutil.Product("A1", 100, 0, 5))

	f := validForm("CHANGED")
	f.Quantity = "0"
	p, err := svc.Save(ctx, f, false, "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", p.Article)

	got, err := svc.Get(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Тюльпан", got.Name)
	assert.Equal(t, 0, got.Quantity)

	_, err = svc.Get(ctx, "CHANGED")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Save(ctx, f, false, "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttachImage(t *testing.T) {
	svc, root := newService(t)
	src := filepath.Join(t.TempDir(), "rose.png")
	require.NoError(t, os.WriteFile(src, []byte("png"), 0o644))

	rel, err := svc.AttachImage(src)
	require.NoError(t, err)
	assert.Equal(t, "assets/products/rose.png", rel)
	assert.FileExists(t, filepath.Join(root, "assets", "products", "rose.png"))

	_, err = svc.AttachImage(filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	svc, root := newService(t)
	ctx := context.Background()

	img := filepath.Join(root, "assets", "products", "free.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(img), 0o755))
	require.NoError(t, os.WriteFile(img, []byte("jpg"), 0o644))
	rel := "assets/products/free.jpg"

	used := testutil.Product("USED", 100, 0, 5)
	free := testutil.Product("FREE", 100, 0, 5)
	free.ImagePath = &rel
	point := &domain.PickupPoint{Address: "ул. Садовая, 1"}
	testutil.Seed(t, svc.db, used, free, point)
	testutil.Seed(t, svc.db,
		&domain.Order{ID: 1, OrderDate: "2024-03-01", DeliveryDate: "2024-03-05", PickupPointID: point.ID, PickupCode: 901, Status: "Новый"},
		&domain.OrderProduct{OrderID: 1, ProductArticle: "USED", Quantity: 2},
	)

	assert.ErrorIs(t, svc.Delete(ctx, "USED"), ErrInUse)
	_, err := svc.Get(ctx, "USED")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "FREE"))
	_, err = svc.Get(ctx, "FREE")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoFileExists(t, img)

	assert.ErrorIs(t, svc.Delete(ctx, "FREE"), ErrNotFound)
}

func TestSave_ImageFromElsewhereIsCopied(t *testing.T) {
	svc, root := newService(t)
	ctx := context.Background()
	own := filepath.Join(t.TempDir(), "own-photo.jpg")
	require.NoError(t, os.WriteFile(own, []byte("jpg"), 0o644))

	f := validForm("P1")
	f.ImagePath = own
	p, err := svc.Save(ctx, f, true, "")
	require.NoError(t, err)
	require.NotNil(t, p.ImagePath)
	assert.Equal(t, "assets/products/own-photo.jpg", *p.ImagePath)
	assert.FileExists(t, filepath.Join(root, "assets", "products", "own-photo.jpg"))

	// the stored path is kept on a later save
	f = FormOf(p)
	_, err = svc.Save(ctx, f, false, "P1")
	require.NoError(t, err)
	got, err := svc.Get(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "assets/products/own-photo.jpg", *got.ImagePath)

	require.NoError(t, svc.Delete(ctx, "P1"))
	assert.FileExists(t, own)
	assert.NoFileExists(t, filepath.Join(root, "assets", "products", "own-photo.jpg"))
}

func TestSave_ImageNotFound(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, path := range []string{
		filepath.Join(t.TempDir(), "absent.jpg"),
		"../../absent.jpg",
	} {
		f := validForm("P1")
		f.ImagePath = path
		_, err := svc.Save(ctx, f, true, "")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, path)
		assert.Equal(t, "image", verr.Field)
	}
	_, err := svc.Get(ctx, "P1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_LeavesFilesOutsideImageDir(t *testing.T) {
	svc, root := newService(t)
	ctx := context.Background()
	own := filepath.Join(t.TempDir(), "own-photo.jpg")
	require.NoError(t, os.WriteFile(own, []byte("jpg"), 0o644))
	db := filepath.Join(root, "flowershop.db")
	require.NoError(t, os.WriteFile(db, []byte("db"), 0o644))

	escape := "assets/products/../../flowershop.db"
	a := testutil.Product("A1", 1, 0, 1)
	a.ImagePath = &own
	b := testutil.Product("B2", 1, 0, 1)
	b.ImagePath = &escape
	testutil.Seed(t, svc.db, a, b)

	require.NoError(t, svc.Delete(ctx, "A1"))
	require.NoError(t, svc.Delete(ctx, "B2"))
	assert.FileExists(t, own)
	assert.FileExists(t, db)
}

func TestSave_DefaultUnit(t *testing.T) {
	svc, _ := newService(t)
	f := validForm("U1")
	f.Unit = "  "
	p, err := svc.Save(context.Background(), f, true, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultUnit, p.Unit)
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []Row{NewRow(*testutil.Product("A1", 100, 20, 3))}
	require.NoError(t, ExportCSV(&buf, rows))
	assert.Equal(t,
		"article,name,category,supplier,cost,discount,final_price,quantity\n"+
			"A1,Роза A1,Цветы,Флора,100.00,20,80.00,3\n",
		buf.String())
}
