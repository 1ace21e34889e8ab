package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/thereayou/memorylane/internal/storage"
	"github.com/thereayou/memorylane/internal/storage/storagetest"
)

func openTestDatabase(t *testing.T, opts ...Option) *Database {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	d, err := Connect("sqlite", dsn, opts...)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		t.Fatalf("DB() error = %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return d
}

func TestDatabaseConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T, pub storage.Publisher) storage.Storage {
		return openTestDatabase(t, WithPublisher(pub))
	})
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		driver string
		dsn    string
	}{
		{name: "unknown driver", driver: "oracle", dsn: "x"},
		{name: "missing dsn", driver: "postgres", dsn: ""},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Connect(testCase.driver, testCase.dsn); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
