// Package sudoku parses, checks and solves 9×9 sudoku boards.
package sudoku

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the board edge; BoxSize the edge of one sub-box.
const (
	Size    = 9
	BoxSize = 3
	Cells   = Size * Size
)

var (
	// ErrMalformedPuzzle means the input could not be read as a board.
	ErrMalformedPuzzle = errors.New("sudoku: malformed puzzle")
	// ErrInvalidPuzzle means a row, column or box repeats a value, or a
	// cell holds something other than 0..9.
	ErrInvalidPuzzle = errors.New("sudoku: invalid puzzle")
	// ErrUnsolvable means the search exhausted every candidate.
	ErrUnsolvable = errors.New("sudoku: puzzle has no solution")
)

// Grid is a board in row-major order. 0 marks an open cell.
type Grid [Size][Size]int

// Pos addresses one cell.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Parse reads 81 cells from s. Digits 1-9 are values; '0', '.' and '_'
// are open cells. Whitespace and the separators '|', '-' and '+' are
// ignored so pretty-printed boards round-trip.
func Parse(s string) (Grid, error) {
	var g Grid
	n := 0
	for i, ch := range s {
		var v int
		switch {
		case ch >= '1' && ch <= '9':
			v = int(ch - '0')
		case ch == '0' || ch == '.' || ch == '_':
			v = 0
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' ||
			ch == '|' || ch == '-' || ch == '+':
			continue
		default:
			return Grid{}, fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformedPuzzle, ch, i)
		}
		if n == Cells {
			return Grid{}, fmt.Errorf("%w: more than %d cells", ErrMalformedPuzzle, Cells)
		}
		g[n/Size][n%Size] = v
		n++
	}
	if n != Cells {
		return Grid{}, fmt.Errorf("%w: got %d cells, want %d", ErrMalformedPuzzle, n, Cells)
	}
	return g, nil
}

// FromRows builds a Grid from a 9×9 slice of ints in 0..9 (0 = open).
func FromRows(rows [][]int) (Grid, error) {
	var g Grid
	if len(rows) != Size {
		return Grid{}, fmt.Errorf("%w: got %d rows, want %d", ErrMalformedPuzzle, len(rows), Size)
	}
	for r, row := range rows {
		if len(row) != Size {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedPuzzle, r, len(row), Size)
		}
		for c, v := range row {
			if v < 0 || v > Size {
				return Grid{}, fmt.Errorf("%w: row %d col %d holds %d", ErrMalformedPuzzle, r, c, v)
			}
			g[r][c] = v
		}
	}
	return g, nil
}

// Rows returns the board as a slice of rows.
func (g Grid) Rows() [][]int {
	out := make([][]int, Size)
	for r := range g {
		out[r] = append([]int(nil), g[r][:]...)
	}
	return out
}

// String renders the 81 cells on one line, 0 for open.
func (g Grid) String() string {
	var b strings.Builder
	b.Grow(Cells)
	for r := range g {
		for c := range g[r] {
			b.WriteByte(byte('0' + g[r][c]))
		}
	}
	return b.String()
}

// Pretty renders the board with box separators, one row per line.
func (g Grid) Pretty() string {
	var b strings.Builder
	for r := range g {
		if r > 0 && r%BoxSize == 0 {
			b.WriteString("------+-------+------\n")
		}
		for c := range g[r] {
			if c > 0 && c%BoxSize == 0 {
				b.WriteString("| ")
			}
			if g[r][c] == 0 {
				b.WriteByte('.')
			} else {
				b.WriteByte(byte('0' + g[r][c]))
			}
			if c < Size-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// OpenCells lists the open positions in row-major order.
func (g Grid) OpenCells() []Pos {
	var open []Pos
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				open = append(open, Pos{Row: r, Col: c})
			}
		}
	}
	return open
}

// Complete reports whether no cell is open.
func (g Grid) Complete() bool {
	return len(g.OpenCells()) == 0
}

// Valid reports whether every cell holds 0..9 and no row, column or box
// repeats a non-zero value. Open cells are ignored.
func (g Grid) Valid() bool {
	var m masks
	for r := range g {
		for c := range g[r] {
			v := g[r][c]
			if v < 0 || v > Size {
				return false
			}
			if v == 0 {
				continue
			}
			p := Pos{Row: r, Col: c}
			if !m.fits(p, v) {
				return false
			}
			m.set(p, v)
		}
	}
	return true
}

func boxOf(p Pos) int {
	return (p.Row/BoxSize)*BoxSize + p.Col/BoxSize
}

// masks tracks which values are taken per row, column and box.
type masks struct {
	rows, cols, boxes [Size]uint16
}

func (m *masks) fits(p Pos, v int) bool {
	bit := uint16(1) << v
	return (m.rows[p.Row]|m.cols[p.Col]|m.boxes[boxOf(p)])&bit == 0
}

func (m *masks) set(p Pos, v int) {
	bit := uint16(1) << v
	m.rows[p.Row] |= bit
	m.cols[p.Col] |= bit
	m.boxes[boxOf(p)] |= bit
}

func (m *masks) clear(p Pos, v int) {
	bit := ^(uint16(1) << v)
	m.rows[p.Row] &= bit
	m.cols[p.Col] &= bit
	m.boxes[boxOf(p)] &= bit
}
