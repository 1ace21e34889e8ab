// Package database is the relational storage.Storage built on gorm. Every
// operation that touches more than one row runs inside db.Transaction, and
// notifications are published only after their transaction commits.
package database

import (
	"errors"
	"log/slog"

	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
	"gorm.io/gorm"
)

type Database struct {
	db        *gorm.DB
	publisher storage.Publisher
	logger    *slog.Logger
}

var _ storage.Storage = (*Database)(nil)

type Option func(*Database)

func WithPublisher(p storage.Publisher) Option {
	return func(d *Database) {
		d.publisher = p
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Database) {
		d.logger = l
	}
}

func NewDatabase(db *gorm.DB, opts ...Option) *Database {
	d := &Database{db: db, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Database) publish(notifications ...models.Notification) {
	if d.publisher == nil {
		return
	}
	for _, n := range notifications {
		d.publisher.Publish(n)
	}
}

// translate maps gorm errors onto the storage sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrConflict
	default:
		return err
	}
}

func deleted(result *gorm.DB) error {
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
