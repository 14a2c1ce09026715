// Package orm wraps *gorm.DB in a small chainable query type that records
// query latency and can read through the Redis cache.
package orm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sudoku/pkg/cache"
	"github.com/shashiranjanraj/sudoku/pkg/logger"
	"github.com/shashiranjanraj/sudoku/pkg/metrics"
)

// Pagination is the metadata returned alongside a page of results.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

const (
	DefaultLimit = 15
	MaxLimit     = 100
)

type Query struct {
	db  *gorm.DB
	ctx context.Context
}

func New(db *gorm.DB) *Query {
	return &Query{db: db, ctx: context.Background()}
}

func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.db.WithContext(ctx), ctx: ctx}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v), ctx: q.ctx}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...), ctx: q.ctx}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value), ctx: q.ctx}
}

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

// First returns gorm.ErrRecordNotFound when nothing matches.
func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Count() (int64, error) {
	defer metrics.ObserveDBQuery("count", time.Now())
	var n int64
	err := q.db.Session(&gorm.Session{}).Count(&n).Error
	return n, err
}

func (q *Query) Create(value interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(value).Error
}

// GetWithPagination fills dest with one page. page is 1-based; a page below
// 1 becomes 1 and a limit outside 1..MaxLimit becomes DefaultLimit or
// MaxLimit.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	total, err := q.Count()
	if err != nil {
		return Pagination{}, err
	}

	defer metrics.ObserveDBQuery("select", time.Now())
	if err := q.db.Session(&gorm.Session{}).Offset((page - 1) * limit).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Remember serves dest from the cache under key, or runs First and caches
// the row for ttl. A failed cache write is logged, not returned. Only use it
// for rows that never change.
func (q *Query) Remember(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(q.ctx, key, dest) {
		return nil
	}

	if err := q.First(dest); err != nil {
		return err
	}

	if err := cache.Set(q.ctx, key, dest, ttl); err != nil {
		logger.WithCtx(q.ctx).Warn("orm: cache write failed", "key", key, "error", err)
	}
	return nil
}
