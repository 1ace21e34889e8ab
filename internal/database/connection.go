package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/thereayou/memorylane/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrUnknownDriver   = errors.New("unknown database driver")
	ErrMissingDSN      = errors.New("DATABASE_URL is not set")
	ErrMigrationFailed = errors.New("failed to migrate")
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	if dsn == "" {
		return nil, ErrMissingDSN
	}

	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Connect opens the database for the named driver and migrates the schema.
func Connect(driver, dsn string, opts ...Option) (*Database, error) {
	dial, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	d := NewDatabase(nil, opts...)
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.NewSlogLogger(d.logger, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	d.db = db

	if err := d.Migrate(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Database) Migrate() error {
	err := d.db.AutoMigrate(
		&models.User{},
		&models.Memory{},
		&models.Friend{},
		&models.Group{},
		&models.GroupMember{},
		&models.Notification{},
		&models.Comment{},
	)
	if err != nil {
		d.logger.Error("schema migration failed", "error", err)
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

