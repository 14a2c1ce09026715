// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// This package is blank-imported by cmd/sudoku so every migration is
// registered before the CLI runs.
package migrations
