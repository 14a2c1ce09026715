package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sudoku/app/models"
	"github.com/shashiranjanraj/sudoku/pkg/metrics"
	"github.com/shashiranjanraj/sudoku/pkg/orm"
)

// ErrCellNotFound is returned by FindByID for an unknown id.
var ErrCellNotFound = errors.New("cell not found")

// Cells are never updated, so a cached row cannot go stale.
const cellCacheTTL = time.Hour

// CellRepository stores and reads Cell records. Cells are write-once: there
// is no update or delete.
type CellRepository interface {
	// Create validates raw as an input_value and inserts a new Cell.
	// Invalid input returns a *validate.ValidationError and writes nothing.
	Create(ctx context.Context, raw any) (*models.Cell, error)
	FindByID(ctx context.Context, id uint) (*models.Cell, error)
	All(ctx context.Context, page, limit int) ([]models.Cell, orm.Pagination, error)
}

// GormCellRepository is the gorm-backed CellRepository.
type GormCellRepository struct {
	db *gorm.DB
}

func NewCellRepository(db *gorm.DB) *GormCellRepository {
	return &GormCellRepository{db: db}
}

func (r *GormCellRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx)
}

func (r *GormCellRepository) Create(ctx context.Context, raw any) (*models.Cell, error) {
	cell, err := models.NewCell(raw)
	if err != nil {
		metrics.CellWrite(false)
		return nil, err
	}

	if err := r.query(ctx).Create(cell); err != nil {
		return nil, fmt.Errorf("cells: create: %w", err)
	}

	metrics.CellWrite(true)
	return cell, nil
}

func (r *GormCellRepository) FindByID(ctx context.Context, id uint) (*models.Cell, error) {
	var cell models.Cell
	err := r.query(ctx).Model(&models.Cell{}).Where("id = ?", id).
		Remember(fmt.Sprintf("cells:%d", id), cellCacheTTL, &cell)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCellNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cells: find %d: %w", id, err)
	}
	return &cell, nil
}

// All returns one page of cells in id order.
func (r *GormCellRepository) All(ctx context.Context, page, limit int) ([]models.Cell, orm.Pagination, error) {
	var cells []models.Cell
	pagination, err := r.query(ctx).Model(&models.Cell{}).Order("id").GetWithPagination(&cells, page, limit)
	if err != nil {
		return nil, orm.Pagination{}, fmt.Errorf("cells: list: %w", err)
	}
	return cells, pagination, nil
}
