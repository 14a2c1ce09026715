package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sudoku/app/repositories"
	"github.com/shashiranjanraj/sudoku/pkg/sudoku"
)

// SampleBoard is the puzzle whose givens SeedSampleBoard stores.
const SampleBoard = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

func init() {
	Register("sample_board", SeedSampleBoard)
}

// SeedSampleBoard stores one Cell per given of SampleBoard, in row-major order.
func SeedSampleBoard(ctx context.Context, db *gorm.DB) error {
	g, err := sudoku.Parse(SampleBoard)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		cells := repositories.NewCellRepository(tx)
		for _, row := range g.Rows() {
			for _, v := range row {
				if v == 0 {
					continue
				}
				if _, err := cells.Create(ctx, v); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
