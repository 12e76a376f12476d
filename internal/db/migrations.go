// internal/db/migrations.go
package db

import (
	"fmt"

	"gorm.io/gorm"
)

// MigrateLocationCellIndex enforces "one location per (group, row, col)
// cell". AutoMigrate cannot express the soft-delete-aware variant, so
// the index is created per dialect.
func MigrateLocationCellIndex(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	dialect := db.Dialector.Name()

	switch dialect {
	case "mysql":
		_ = db.Exec("DROP INDEX `idx_loc_cell` ON `locations`").Error
		return db.Exec("CREATE UNIQUE INDEX `ux_locations_cell_del` ON `locations` (`group_id`, `grid_row`, `grid_col`, `deleted_at`)").Error

	case "postgres":
		_ = db.Exec(`DROP INDEX IF EXISTS idx_loc_cell`).Error
		// partial unique index plays better with soft delete
		return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_locations_cell_null ON "locations" ("group_id", "grid_row", "grid_col") WHERE "deleted_at" IS NULL`).Error

	case "sqlite":
		_ = db.Exec(`DROP INDEX IF EXISTS idx_loc_cell`).Error
		return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_locations_cell_null ON locations (group_id, grid_row, grid_col) WHERE deleted_at IS NULL`).Error

	default:
		return fmt.Errorf("unsupported dialect: %s", dialect)
	}
}
