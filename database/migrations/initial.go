package migrations

import (
	"github.com/shashiranjanraj/sudoku/app/models"
	"github.com/shashiranjanraj/sudoku/pkg/migration"
	"gorm.io/gorm"
)

// CreateCellsName identifies the initial migration in the tracking table.
const CreateCellsName = "20190718080700_create_cells_table"

func init() {
	migration.Register(CreateCellsName, &CreateCellsTable{})
}

// CreateCellsTable creates the cells table: an auto-incrementing id and the
// constrained input_value column. The 1..9 range is enforced by the model,
// not by the storage engine.
type CreateCellsTable struct{}

// cell is the table shape as of this migration; it must not follow later
// changes to models.Cell.
type cell struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	InputValue int  `gorm:"not null"`
}

func (cell) TableName() string { return models.Cell{}.TableName() }

func (m *CreateCellsTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&cell{})
}

func (m *CreateCellsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&cell{})
}
