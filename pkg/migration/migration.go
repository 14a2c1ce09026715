// Package migration applies versioned, one-way schema changes and records
// which ones have run.
//
// Migrations register themselves from init():
//
//	func init() {
//	    migration.Register("20190718080700_create_cells_table", &CreateCellsTable{})
//	}
//
// and are applied from the CLI:
//
//	sudoku migrate             // run all pending
//	sudoku migrate:rollback    // rollback last batch
//	sudoku migrate:status
package migration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shashiranjanraj/sudoku/pkg/logger"
	"gorm.io/gorm"
)

var (
	// ErrNoMigrations is returned when Run is called on an empty registry.
	ErrNoMigrations = errors.New("migration: no migrations registered")
	// ErrNotRegistered is returned by Rollback for a recorded migration
	// the binary no longer knows about.
	ErrNotRegistered = errors.New("migration: not registered")
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// record is the row stored in the tracking table.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "sudoku_migrations" }

// Status describes one registered migration.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// ------------------- Registry -------------------

type entry struct {
	name string
	m    Migration
}

// Registry is an ordered set of named migrations.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// Add registers m under name. Names should be timestamp-prefixed so that
// lexical order is chronological; duplicates are rejected.
func (r *Registry) Add(name string, m Migration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.name == name {
			return fmt.Errorf("migration: %s registered twice", name)
		}
	}
	r.entries = append(r.entries, entry{name: name, m: m})
	return nil
}

// Names returns every registered name in apply order.
func (r *Registry) Names() []string {
	sorted := r.sorted()
	names := make([]string, len(sorted))
	for i, e := range sorted {
		names[i] = e.name
	}
	return names
}

func (r *Registry) sorted() []entry {
	r.mu.RLock()
	out := make([]entry, len(r.entries))
	copy(out, r.entries)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (r *Registry) lookup(name string) (Migration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.name == name {
			return e.m, true
		}
	}
	return nil, false
}

// Default is the registry populated by Register.
var Default = NewRegistry()

// Register adds a migration to Default and panics on a duplicate name,
// which can only be a programming error in an init().
func Register(name string, m Migration) {
	if err := Default.Add(name, m); err != nil {
		panic(err)
	}
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations.
type Runner struct {
	db       *gorm.DB
	registry *Registry
}

// New creates a Runner over db using the Default registry.
func New(db *gorm.DB) *Runner {
	return NewWithRegistry(db, Default)
}

// NewWithRegistry creates a Runner over db using reg.
func NewWithRegistry(db *gorm.DB, reg *Registry) *Runner {
	return &Runner{db: db, registry: reg}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&record{})
}

// Pending returns the names of migrations that have not yet been run,
// in apply order.
func (r *Runner) Pending(ctx context.Context) ([]string, error) {
	ran, err := r.ranSet(ctx)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, e := range r.registry.sorted() {
		if _, ok := ran[e.name]; !ok {
			pending = append(pending, e.name)
		}
	}
	return pending, nil
}

// Run executes all pending migrations in a single batch and returns the
// names it applied. A migration that fails stops the batch; those applied
// before it stay recorded.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	if len(r.registry.Names()) == 0 {
		return nil, ErrNoMigrations
	}
	if err := r.EnsureTable(ctx); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		logger.Info("migration: nothing to migrate")
		return nil, nil
	}

	batch, err := r.lastBatch(ctx)
	if err != nil {
		return nil, err
	}
	batch++

	db := r.db.WithContext(ctx)
	var applied []string
	for _, name := range pending {
		m, _ := r.registry.lookup(name)
		logger.Info("migration: running", "name", name)

		if err := m.Up(db); err != nil {
			return applied, fmt.Errorf("migration: %s up: %w", name, err)
		}
		if err := db.Create(&record{Name: name, Batch: batch}).Error; err != nil {
			return applied, fmt.Errorf("migration: record %s: %w", name, err)
		}
		applied = append(applied, name)
	}

	logger.Info("migration: done", "ran", len(applied), "batch", batch)
	return applied, nil
}

// Rollback reverses all migrations from the most recent batch, newest
// first, and returns the names it rolled back.
func (r *Runner) Rollback(ctx context.Context) ([]string, error) {
	if err := r.EnsureTable(ctx); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	batch, err := r.lastBatch(ctx)
	if err != nil {
		return nil, err
	}
	if batch == 0 {
		logger.Info("migration: nothing to roll back")
		return nil, nil
	}

	db := r.db.WithContext(ctx)
	var records []record
	if err := db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: load batch %d: %w", batch, err)
	}

	var rolled []string
	for _, rec := range records {
		m, ok := r.registry.lookup(rec.Name)
		if !ok {
			return rolled, fmt.Errorf("%w: %s", ErrNotRegistered, rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		if err := m.Down(db); err != nil {
			return rolled, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := db.Delete(&rec).Error; err != nil {
			return rolled, fmt.Errorf("migration: unrecord %s: %w", rec.Name, err)
		}
		rolled = append(rolled, rec.Name)
	}

	return rolled, nil
}

// Status reports every registered migration and whether it has run.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.EnsureTable(ctx); err != nil {
		return nil, err
	}

	ran, err := r.ranSet(ctx)
	if err != nil {
		return nil, err
	}

	var out []Status
	for _, name := range r.registry.Names() {
		rec, ok := ran[name]
		out = append(out, Status{Name: name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) ranSet(ctx context.Context) (map[string]record, error) {
	var ran []record
	if err := r.db.WithContext(ctx).Find(&ran).Error; err != nil {
		return nil, err
	}

	set := make(map[string]record, len(ran))
	for _, rec := range ran {
		set[rec.Name] = rec
	}
	return set, nil
}

func (r *Runner) lastBatch(ctx context.Context) (int, error) {
	var row struct{ Max int }
	err := r.db.WithContext(ctx).Model(&record{}).Select("COALESCE(MAX(batch), 0) AS max").Scan(&row).Error
	if err != nil {
		return 0, fmt.Errorf("migration: read batch: %w", err)
	}
	return row.Max, nil
}
