// Package seeders fills a development database with sample rows.
//
//	func init() {
//	    seeders.Register("sample_board", SeedSampleBoard)
//	}
//
// Run them with `sudoku seed`.
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, db *gorm.DB) error

type entry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []entry
)

// Register adds a seeder. Call it from init().
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order, writing
// progress to out. It stops on the first error.
func RunAll(ctx context.Context, db *gorm.DB, out io.Writer) error {
	mu.Lock()
	current := append([]entry(nil), entries...)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(out, "No seeders registered.")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(out, "Seeding: %s\n", e.name)
		if err := e.fn(ctx, db); err != nil {
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
	}
	return nil
}
