package app

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/talkincode/flowershop/config"
	"github.com/talkincode/flowershop/internal/assets"
	"github.com/talkincode/flowershop/internal/domain"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	assets    *assets.Store
	fresh     bool
}

// Ensure Application implements all interfaces
var (
	_ DBProvider     = (*Application)(nil)
	_ ConfigProvider = (*Application)(nil)
	_ AssetsProvider = (*Application)(nil)
	_ AppContext     = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Assets() *assets.Store {
	return a.assets
}

// Init sets up logging and opens the store. consoleLog is turned off while the
// full-screen UI owns the terminal so log lines only reach the log file.
func (a *Application) Init(consoleLog bool) error {
	cfg := a.appConfig
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := a.initLogger(consoleLog); err != nil {
		return err
	}

	a.assets = assets.NewStore(cfg.GetRootDir(), cfg.GetAssetsDir())

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	dbPath := cfg.GetDBPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return errors.Wrap(err, "create database dir")
	}
	_, statErr := os.Stat(dbPath)
	a.fresh = os.IsNotExist(statErr)
	a.gormDB, err = OpenDatabase(cfg.Database, dbPath)
	if err != nil {
		return err
	}
	zap.S().Infof("Database connection successful, type: %s, file: %s, new: %v", cfg.Database.Type, dbPath, a.fresh)
	return nil
}

func (a *Application) initLogger(consoleLog bool) error {
	cfg := a.appConfig
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	if cfg.System.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	var cores []zapcore.Core
	if cfg.Logger.FileEnable {
		logPath := cfg.GetLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return errors.Wrap(err, "create log dir")
		}
		lumberJackLogger := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lumberJackLogger),
			zapConfig.Level,
		))
	}
	if consoleLog {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stderr),
			zapConfig.Level,
		))
	}

	logger := zap.NewNop()
	if len(cores) > 0 {
		logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// MigrateDB creates the tables. A panic inside the migrator is turned into an error.
func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			if err2, ok := err1.(error); ok {
				err = err2
			} else {
				err = errors.Errorf("migrate: %v", err1)
			}
			zap.S().Error(err.Error())
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return Migrate(db)
}

// Migrate creates the schema on db
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.Migrator().AutoMigrate(domain.Tables...), "migrate schema")
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(reversed(domain.Tables)...)
}

func (a *Application) InitDb() error {
	a.DropAll()
	return a.MigrateDB(false)
}

func reversed(tables []interface{}) []interface{} {
	out := make([]interface{}, len(tables))
	for i, t := range tables {
		out[len(tables)-1-i] = t
	}
	return out
}

// Release releases application resources
func (a *Application) Release() {
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
