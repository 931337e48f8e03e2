package config

import (
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "flowershop.yml"

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// DBConfig database configuration
type DBConfig struct {
	Type  string `yaml:"type"`
	Name  string `yaml:"name"`
	Debug bool   `yaml:"debug"`
}

// ImportConfig spreadsheet sources used on first run
type ImportConfig struct {
	Dir          string `yaml:"dir"`
	Users        string `yaml:"users"`
	Products     string `yaml:"products"`
	PickupPoints string `yaml:"pickup_points"`
	Orders       string `yaml:"orders"`
}

// AssetsConfig product image storage
type AssetsConfig struct {
	ProductsDir string `yaml:"products_dir"`
}

// LogConfig logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system"`
	Database DBConfig     `yaml:"database"`
	Import   ImportConfig `yaml:"import"`
	Assets   AssetsConfig `yaml:"assets"`
	Logger   LogConfig    `yaml:"logger"`
}

func (c *AppConfig) workdir() string {
	if c.System.Workdir == "" {
		return "."
	}
	return c.System.Workdir
}

// resolve joins p onto the workdir unless p is already absolute.
func (c *AppConfig) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.workdir(), p)
}

// GetRootDir application root, image paths are stored relative to it
func (c *AppConfig) GetRootDir() string {
	return c.workdir()
}

func (c *AppConfig) GetDBPath() string {
	return c.resolve(c.Database.Name)
}

func (c *AppConfig) GetImportDir() string {
	return c.resolve(c.Import.Dir)
}

func (c *AppConfig) GetImportPath(name string) string {
	return filepath.Join(c.GetImportDir(), name)
}

func (c *AppConfig) GetAssetsDir() string {
	return c.resolve(c.Assets.ProductsDir)
}

func (c *AppConfig) GetLogPath() string {
	return c.resolve(c.Logger.Filename)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Flowershop",
		Location: "Europe/Moscow",
		Workdir:  ".",
		Debug:    false,
	},
	Database: DBConfig{
		Type:  "sqlite",
		Name:  "trade.db",
		Debug: false,
	},
	Import: ImportConfig{
		Dir:          "import_data",
		Users:        "user_import.xlsx",
		Products:     "products_import.xlsx",
		PickupPoints: "pickup_points_import.xlsx",
		Orders:       "orders_import.xlsx",
	},
	Assets: AssetsConfig{
		ProductsDir: path.Join("assets", "products"),
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   path.Join("logs", "flowershop.log"),
	},
}

func defaultCopy() *AppConfig {
	cfg := *DefaultAppConfig
	return &cfg
}

// LoadConfig reads cfile (or flowershop.yml in the working directory) on top of the
// defaults and applies environment overrides. A missing file is not an error.
func LoadConfig(cfile string) (*AppConfig, error) {
	if cfile == "" {
		cfile = DefaultConfigFile
	}
	cfg := defaultCopy()

	data, err := os.ReadFile(cfile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse %s", cfile)
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(err, "read %s", cfile)
	}

	setEnvValue("FLOWERSHOP_WORKDIR", &cfg.System.Workdir)
	setEnvValue("FLOWERSHOP_DB_NAME", &cfg.Database.Name)
	setEnvValue("FLOWERSHOP_IMPORT_DIR", &cfg.Import.Dir)
	setEnvValue("FLOWERSHOP_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("FLOWERSHOP_DEBUG", &cfg.System.Debug)
	return cfg, nil
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	if b, err := strconv.ParseBool(evalue); err == nil {
		*val = b
	}
}
