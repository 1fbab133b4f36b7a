package main

import (
	"fmt"
	"os"

	"github.com/GunarsK-portfolio/inventory-service/internal/database"
	"github.com/spf13/pflag"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogLevel lets --database-log-level take a name instead of a number.
type gormLogLevel logger.LogLevel

func (l *gormLogLevel) String() string {
	switch logger.LogLevel(*l) {
	case logger.Info:
		return "info"
	case logger.Warn:
		return "warn"
	case logger.Error:
		return "error"
	case logger.Silent:
		return "silent"
	}
	return "warn"
}

func (l *gormLogLevel) Set(v string) error {
	switch v {
	case "info":
		*l = gormLogLevel(logger.Info)
	case "warn":
		*l = gormLogLevel(logger.Warn)
	case "error":
		*l = gormLogLevel(logger.Error)
	case "silent":
		*l = gormLogLevel(logger.Silent)
	default:
		return fmt.Errorf("unknown gorm log level: %s", v)
	}
	return nil
}

func (l *gormLogLevel) Type() string {
	return "logLevel"
}

// DatabaseFlags contains the set of flags needed to open the inventory database.
type DatabaseFlags struct {
	Driver   string
	DSN      string
	LogLevel gormLogLevel
}

func NewDatabaseFlags() *DatabaseFlags {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "postgres"
	}
	return &DatabaseFlags{
		Driver:   driver,
		DSN:      os.Getenv("DATABASE_URL"),
		LogLevel: gormLogLevel(logger.Warn),
	}
}

func (f *DatabaseFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Driver, "database-driver", f.Driver, "Database driver (postgres or sqlite)")
	fs.StringVar(&f.DSN, "database-dsn", f.DSN, "Database DSN, or file path for sqlite")
	fs.Var(&f.LogLevel, "database-log-level", "gorm database log level")
}

func (f *DatabaseFlags) Connect() (*gorm.DB, error) {
	if f.DSN == "" {
		return nil, fmt.Errorf("--database-dsn or DATABASE_URL is required")
	}
	return database.Connect(f.Driver, f.DSN, logger.LogLevel(f.LogLevel))
}
