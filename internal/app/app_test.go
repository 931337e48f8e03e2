package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/flowershop/config"
	"github.com/talkincode/flowershop/internal/app"
	"github.com/talkincode/flowershop/internal/domain"
	"github.com/talkincode/flowershop/internal/testutil"
)

func newConfig(t *testing.T) *config.AppConfig {
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Logger.FileEnable = false
	return &cfg
}

func writeSources(t *testing.T, cfg *config.AppConfig) {
	require.NoError(t, os.MkdirAll(cfg.GetImportDir(), 0o755))
	testutil.WriteSheet(t, cfg.GetImportPath(cfg.Import.Users), [][]interface{}{
		{"Роль сотрудника", "ФИО", "Логин", "Пароль"},
		{"Администратор", "Никифорова Весения Николаевна", "admin@mail.ru", "2L6KZG"},
	})
	testutil.WriteSheet(t, cfg.GetImportPath(cfg.Import.Products), [][]interface{}{
		{"Артикул", "Наименование", "Ед. изм.", "Стоимость", "Макс. скидка", "Производитель", "Поставщик", "Категория", "Скидка", "Кол-во", "Описание", "Изображение"},
		{"А112Т4", "Роза", "шт.", 120, 30, "Сад", "Флора", "Цветы", 5, 12, "Красная", ""},
	})
	testutil.WriteSheet(t, cfg.GetImportPath(cfg.Import.PickupPoints), [][]interface{}{
		{"420151, г. Лесной, ул. Вишневая, 32"},
	})
	testutil.WriteSheet(t, cfg.GetImportPath(cfg.Import.Orders), [][]interface{}{
		{"Номер заказа", "Состав заказа", "Дата заказа", "Дата доставки", "Пункт выдачи", "ФИО клиента", "Код", "Статус"},
		{1, "А112Т4, 2", "27.02.2024", "2024-03-05", 1, "", 901, "Новый"},
	})
}

func TestBootstrap_FreshStoreOnly(t *testing.T) {
	cfg := newConfig(t)
	writeSources(t, cfg)

	a := app.NewApplication(cfg)
	require.NoError(t, a.Init(false))
	assert.True(t, a.IsFresh())

	report, err := a.Bootstrap()
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Users.Imported)
	assert.Equal(t, 1, report.Products.Imported)
	assert.Equal(t, 1, report.PickupPoints.Imported)
	assert.Equal(t, 1, report.Orders.Imported)
	assert.DirExists(t, cfg.GetAssetsDir())
	a.Release()

	again := app.NewApplication(cfg)
	require.NoError(t, again.Init(false))
	defer again.Release()
	assert.False(t, again.IsFresh())

	report, err = again.Bootstrap()
	require.NoError(t, err)
	assert.Nil(t, report)

	var products int64
	require.NoError(t, again.DB().Model(&domain.Product{}).Count(&products).Error)
	assert.Equal(t, int64(1), products)
}

func TestImportAgainSkipsExistingRows(t *testing.T) {
	cfg := newConfig(t)
	writeSources(t, cfg)

	a := app.NewApplication(cfg)
	require.NoError(t, a.Init(false))
	var ctx app.AppContext = a
	defer ctx.Release()

	_, err := ctx.Bootstrap()
	require.NoError(t, err)

	report, err := ctx.Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Users.Imported)
	assert.Equal(t, 1, report.Users.Skipped)
	assert.Equal(t, 1, report.Products.Skipped)
	assert.Equal(t, 1, report.Orders.Skipped)

	var users int64
	require.NoError(t, ctx.DB().Model(&domain.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, cfg, ctx.Config())
	assert.NotNil(t, ctx.Assets())
}

func TestBootstrap_MissingSourcesStillCreatesSchema(t *testing.T) {
	cfg := newConfig(t)

	a := app.NewApplication(cfg)
	require.NoError(t, a.Init(false))
	defer a.Release()

	report, err := a.Bootstrap()
	assert.Error(t, err)
	require.NotNil(t, report)
	assert.Zero(t, report.Products.Imported)
	for _, table := range domain.Tables {
		assert.True(t, a.DB().Migrator().HasTable(table))
	}
}

func TestOpenDatabase_UnsupportedType(t *testing.T) {
	_, err := app.OpenDatabase(config.DBConfig{Type: "postgresql"}, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.Seed(t, db, testutil.Product("A1", 10, 0, 1))

	err := db.Create(&domain.OrderProduct{OrderID: 42, ProductArticle: "A1", Quantity: 1}).Error
	assert.Error(t, err)

	err = db.Create(&domain.Order{ID: 1, OrderDate: "2024-01-01", DeliveryDate: "2024-01-02", PickupPointID: 7, PickupCode: 1, Status: "Новый"}).Error
	assert.Error(t, err)
}

func TestCheckConstraints(t *testing.T) {
	db := testutil.OpenDB(t)

	assert.Error(t, db.Create(testutil.Product("NEG", -1, 0, 1)).Error)
	assert.Error(t, db.Create(testutil.Product("DISC", 1, 101, 1)).Error)
	assert.Error(t, db.Create(testutil.Product("QTY", 1, 0, -1)).Error)
	assert.NoError(t, db.Create(testutil.Product("OK", 0, 100, 0)).Error)
}

func TestInitDbRecreatesSchema(t *testing.T) {
	cfg := newConfig(t)
	a := app.NewApplication(cfg)
	require.NoError(t, a.Init(false))
	defer a.Release()
	require.NoError(t, a.MigrateDB(false))
	testutil.Seed(t, a.DB(), testutil.Product("A1", 10, 0, 1))

	require.NoError(t, a.InitDb())
	var n int64
	require.NoError(t, a.DB().Model(&domain.Product{}).Count(&n).Error)
	assert.Zero(t, n)
}
