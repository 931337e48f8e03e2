package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "trade.db", cfg.Database.Name)
	assert.Equal(t, "user_import.xlsx", cfg.Import.Users)
	assert.Equal(t, filepath.Join(".", "assets", "products"), cfg.GetAssetsDir())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "flowershop.yml")
	body := []byte("system:\n  workdir: " + dir + "\ndatabase:\n  name: shop.db\nlogger:\n  mode: production\n")
	require.NoError(t, os.WriteFile(cfile, body, 0o644))

	t.Setenv("FLOWERSHOP_IMPORT_DIR", "sources")
	t.Setenv("FLOWERSHOP_DEBUG", "true")

	cfg, err := LoadConfig(cfile)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "shop.db"), cfg.GetDBPath())
	assert.Equal(t, filepath.Join(dir, "sources", "orders_import.xlsx"), cfg.GetImportPath(cfg.Import.Orders))
	assert.Equal(t, "production", cfg.Logger.Mode)
	assert.True(t, cfg.System.Debug)
	// defaults not mentioned in the file survive
	assert.Equal(t, "products_import.xlsx", cfg.Import.Products)
}

func TestLoadConfig_DoesNotMutateDefaults(t *testing.T) {
	t.Setenv("FLOWERSHOP_DB_NAME", "other.db")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "trade.db", DefaultAppConfig.Database.Name)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfile, []byte("system: [unclosed"), 0o644))
	_, err := LoadConfig(cfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse "+cfile)
}
