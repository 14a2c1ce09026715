package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/sudoku/app/repositories"
	"github.com/shashiranjanraj/sudoku/pkg/bind"
	"github.com/shashiranjanraj/sudoku/pkg/logger"
	"github.com/shashiranjanraj/sudoku/pkg/response"
	"github.com/shashiranjanraj/sudoku/pkg/router"
	"github.com/shashiranjanraj/sudoku/pkg/validate"
)

type CellController struct {
	cells repositories.CellRepository
}

func NewCellController(cells repositories.CellRepository) *CellController {
	return &CellController{cells: cells}
}

type storeCellRequest struct {
	InputValue any `json:"input_value" validate:"required"`
}

// decode binds the JSON body into dest. It answers 400 for a malformed
// body and 422 for failed validate tags, and reports whether to go on.
func decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	errs, err := bind.JSON(r, dest)
	if err != nil {
		response.BadRequest(w, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return false
	}
	return true
}

// Store handles POST /api/cells.
func (c *CellController) Store(w http.ResponseWriter, r *http.Request) {
	var req storeCellRequest
	if !decode(w, r, &req) {
		return
	}

	cell, err := c.cells.Create(r.Context(), req.InputValue)
	if err != nil {
		var verr *validate.ValidationError
		if errors.As(err, &verr) {
			response.ValidationError(w, verr.Fields)
			return
		}
		logger.WithCtx(r.Context()).Error("store cell", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not store cell")
		return
	}

	response.Created(w, cell)
}

// Index handles GET /api/cells?page=&limit=.
func (c *CellController) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	cells, pagination, err := c.cells.All(r.Context(), page, limit)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list cells", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not list cells")
		return
	}

	response.Paginated(w, cells, pagination)
}

// Show handles GET /api/cells/{id}.
func (c *CellController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(router.Param(r, "id"), 10, 0)
	if err != nil || id == 0 {
		response.NotFound(w)
		return
	}

	cell, err := c.cells.FindByID(r.Context(), uint(id))
	if errors.Is(err, repositories.ErrCellNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("show cell", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load cell")
		return
	}

	response.Success(w, cell)
}
