package infra

import (
	"fmt"

	"github.com/srikumaragency/b-admin-prod-03/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection backed by pgx and migrates the schema.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table, then applies the indexes
// AutoMigrate cannot express.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Admin{},
		&model.Category{},
		&model.Subcategory{},
		&model.Product{},
		&model.StoreSettings{},
		&model.Order{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL; re-running on a patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"partial index for paid orders awaiting an invoice", `
CREATE INDEX IF NOT EXISTS idx_orders_paid_uninvoiced
    ON orders (created_at)
    WHERE payment_status = 'paid' AND invoice_number IS NULL`},
		{"customer name lookup", `
CREATE INDEX IF NOT EXISTS idx_orders_customer_name
    ON orders ((customer->>'name'))`},
		{"featured and best seller are exclusive", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_products_featured_bestseller') THEN
    ALTER TABLE products
      ADD CONSTRAINT chk_products_featured_bestseller CHECK (NOT (is_featured AND is_best_seller));
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
