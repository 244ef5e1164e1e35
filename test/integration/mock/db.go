package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/finance-tracker/companion/config"
	infradb "github.com/finance-tracker/companion/internal/infra/db"
	"github.com/finance-tracker/companion/internal/integration/persistence/model"
)

var dbOnce sync.Once
var db *Db

// Db is the ledger database shared by every scenario. It is opened through
// the same connection and migration code the API uses, backed by an
// in-memory sqlite database. The pool keeps its single connection open
// without a lifetime limit, since the database is gone once it closes.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

type tabler interface {
	TableName() string
}

// NewDb opens and migrates the shared database on first use.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = openDb()
	})
	return db
}

func openDb() *Db {
	database, err := infradb.NewConnection(&config.DatabaseConfig{
		Driver:       infradb.DriverSQLite,
		URL:          "file:companion?mode=memory&cache=shared",
		MaxIdleConns: 1,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %s", err))
	}
	if err := database.Migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %s", err))
	}

	models := make(map[string]any)
	for _, m := range model.AllModels() {
		if t, ok := m.(tabler); ok {
			models[t.TableName()] = m
		}
	}

	return &Db{
		DbConn: database.DB(),
		models: models,
	}
}

// ClearDB deletes every row of every migrated table.
func (d *Db) ClearDB() error {
	for table, m := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model migrated for table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
