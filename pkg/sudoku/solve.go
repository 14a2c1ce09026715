package sudoku

import "context"

// ctxCheckEvery is how many search steps run between context checks.
const ctxCheckEvery = 1 << 12

// Solve fills every open cell of g by backtracking over the open cells in
// row-major order, trying candidates in ascending order. g itself is not
// modified. It returns ErrInvalidPuzzle for a board that already breaks a
// rule, ErrUnsolvable when no assignment exists, or ctx.Err() if ctx ends
// first.
func Solve(ctx context.Context, g Grid) (Grid, error) {
	if !g.Valid() {
		return Grid{}, ErrInvalidPuzzle
	}
	if err := ctx.Err(); err != nil {
		return Grid{}, err
	}

	var m masks
	for r := range g {
		for c := range g[r] {
			if v := g[r][c]; v != 0 {
				m.set(Pos{Row: r, Col: c}, v)
			}
		}
	}

	open := g.OpenCells()
	steps := 0
	for i := 0; i < len(open); {
		steps++
		if steps%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Grid{}, err
			}
		}

		p := open[i]
		v := g[p.Row][p.Col]
		if v != 0 {
			m.clear(p, v)
		}

		placed := false
		for v++; v <= Size; v++ {
			if m.fits(p, v) {
				m.set(p, v)
				g[p.Row][p.Col] = v
				placed = true
				break
			}
		}
		if placed {
			i++
			continue
		}

		// No candidate left here: reset and revisit the previous cell.
		g[p.Row][p.Col] = 0
		i--
		if i < 0 {
			return Grid{}, ErrUnsolvable
		}
	}

	return g, nil
}
