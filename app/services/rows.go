package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/sudoku/app/models"
	"github.com/shashiranjanraj/sudoku/pkg/sudoku"
	"github.com/shashiranjanraj/sudoku/pkg/validate"
)

// ParseRows builds a Grid from loosely-typed board input, as sent by a
// form of 81 text boxes. nil, blank strings and 0 are open cells; every
// other value must be a valid Cell input. All bad cells are reported in
// one *validate.ValidationError keyed "rows.<row>.<col>".
func ParseRows(rows [][]any) (sudoku.Grid, error) {
	ints := make([][]int, len(rows))
	errs := make(map[string]string)

	for r, row := range rows {
		ints[r] = make([]int, len(row))
		for c, raw := range row {
			if open(raw) {
				continue
			}
			cell, err := models.NewCell(raw)
			if err != nil {
				errs[fmt.Sprintf("rows.%d.%d", r, c)] = cellMessage(err)
				continue
			}
			ints[r][c] = cell.InputValue
		}
	}

	if validate.HasErrors(errs) {
		return sudoku.Grid{}, &validate.ValidationError{Fields: errs}
	}
	return sudoku.FromRows(ints)
}

func open(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	v, err := validate.Integer("value", raw)
	return err == nil && v == 0
}

func cellMessage(err error) string {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		for _, msg := range verr.Fields {
			return msg
		}
	}
	return err.Error()
}
