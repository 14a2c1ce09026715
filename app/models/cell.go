package models

import "github.com/shashiranjanraj/sudoku/pkg/validate"

const (
	// MinInputValue and MaxInputValue bound Cell.InputValue (inclusive).
	MinInputValue = 1
	MaxInputValue = 9
)

// Cell is one validated integer observation on a sudoku board.
type Cell struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	InputValue int  `gorm:"not null" json:"input_value" validate:"between=1,9"`
}

func (Cell) TableName() string { return "cells" }

// ValidInputValue reports whether v may be stored in a Cell.
func ValidInputValue(v int) bool {
	return v >= MinInputValue && v <= MaxInputValue
}

// NewCell builds a Cell from loosely-typed input. Missing, non-integer and
// out-of-range values are rejected with a *validate.ValidationError.
func NewCell(raw any) (*Cell, error) {
	v, err := validate.Integer("input_value", raw)
	if err != nil {
		return nil, err
	}

	c := &Cell{InputValue: v}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate re-checks the range constraint, e.g. before persisting a Cell
// that was built by hand instead of through NewCell.
func (c *Cell) Validate() error {
	return validate.Check(c)
}
