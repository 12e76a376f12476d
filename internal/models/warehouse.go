package models

import (
	"time"

	"gorm.io/gorm"
)

// Layout is the outer warehouse grid. Layouts are immutable after
// creation; the only mutation is deletion, which cascades to groups
// and locations.
type Layout struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"index" json:"name"`
	Rows      int            `gorm:"column:num_rows" json:"rows"`
	Columns   int            `gorm:"column:num_cols" json:"columns"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Group is a named sub-rectangle anchored at one column of a layout.
// Rows/Columns describe its own internal grid, independent of the
// parent layout's dimensions.
// Column names avoid ROW/COLUMN/ROWS, reserved in MySQL 8.
type Group struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	LayoutID  uint           `gorm:"index" json:"layoutId"`
	Name      string         `gorm:"index" json:"name"`
	Column    int            `gorm:"column:grid_col;index" json:"column"`
	Row       int            `gorm:"column:grid_row;index" json:"row"`
	Rows      int            `gorm:"column:num_rows" json:"rows"`
	Columns   int            `gorm:"column:num_cols" json:"columns"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Location is one addressable slot inside a group's internal grid.
// LayoutID is denormalized from the owning group so the visualization
// can fetch a whole layout's slots in one scan; it is set at creation
// time and never updated.
type Location struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	GroupID    uint           `gorm:"index" json:"groupId"`
	LayoutID   uint           `gorm:"index" json:"layoutId"`
	Row        int            `gorm:"column:grid_row" json:"row"`
	Column     int            `gorm:"column:grid_col" json:"column"`
	Address    string         `gorm:"index" json:"address"`
	IsOccupied bool           `gorm:"default:false" json:"isOccupied"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"-"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
