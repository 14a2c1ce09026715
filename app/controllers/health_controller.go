package controllers

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sudoku/pkg/cache"
	"github.com/shashiranjanraj/sudoku/pkg/response"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check handles GET /health. It answers 503 while the database is down.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"database": "up", "cache": "disabled"}
	if cache.RDB != nil {
		status["cache"] = "up"
		if err := cache.RDB.Ping(ctx).Err(); err != nil {
			status["cache"] = "down"
		}
	}

	if err := c.ping(ctx); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	response.Success(w, status)
}

func (c *HealthController) ping(ctx context.Context) error {
	if c.db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
