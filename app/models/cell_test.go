package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sudoku/app/models"
	"github.com/shashiranjanraj/sudoku/pkg/validate"
)

func TestNewCellAcceptsEveryValueInRange(t *testing.T) {
	for v := models.MinInputValue; v <= models.MaxInputValue; v++ {
		c, err := models.NewCell(v)
		require.NoError(t, err, "value %d", v)
		assert.Equal(t, v, c.InputValue)
		assert.Zero(t, c.ID, "id is assigned by storage")
	}
}

func TestNewCellRejects(t *testing.T) {
	cases := map[string]any{
		"zero":        0,
		"ten":         10,
		"negative":    -5,
		"text":        "abc",
		"missing":     nil,
		"fraction":    4.5,
		"large float": float64(1e30),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := models.NewCell(raw)
			assert.Nil(t, c)

			var verr *validate.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "input_value")
		})
	}
}

func TestNewCellAcceptsNumericStrings(t *testing.T) {
	c, err := models.NewCell("9")
	require.NoError(t, err)
	assert.Equal(t, 9, c.InputValue)
}

func TestNewCellAcceptsWholeNumbersWrittenAsDecimals(t *testing.T) {
	for _, raw := range []any{4.0, json.Number("4.0"), json.Number("4e0")} {
		c, err := models.NewCell(raw)
		require.NoError(t, err, "%#v", raw)
		assert.Equal(t, 4, c.InputValue)
	}

	_, err := models.NewCell(json.Number("4.5"))
	assert.Error(t, err)
}

func TestValidInputValue(t *testing.T) {
	assert.True(t, models.ValidInputValue(1))
	assert.True(t, models.ValidInputValue(9))
	assert.False(t, models.ValidInputValue(0))
	assert.False(t, models.ValidInputValue(10))
}

func TestValidateCatchesHandBuiltCell(t *testing.T) {
	assert.Error(t, (&models.Cell{InputValue: 12}).Validate())
	assert.NoError(t, (&models.Cell{InputValue: 3}).Validate())
}
