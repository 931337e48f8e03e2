package app

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talkincode/flowershop/config"
)

// zapWriter routes gorm's SQL log through zap
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	zap.S().Debugf(format, args...)
}

// OpenDatabase opens the sqlite store at path with foreign keys enforced.
// A single connection is kept, the application has one active session.
func OpenDatabase(cfg config.DBConfig, path string) (*gorm.DB, error) {
	switch cfg.Type {
	case "", "sqlite":
	default:
		return nil, errors.Errorf("unsupported database type: %s", cfg.Type)
	}

	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(zapWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", path)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "database handle")
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
