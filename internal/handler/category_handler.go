package handler

import (
	"net/http"

	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

// CategoryHandler serves the category registry
type CategoryHandler struct {
	registry domain.CategoryRegistry
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(registry domain.CategoryRegistry) *CategoryHandler {
	return &CategoryHandler{registry: registry}
}

// GetCategories godoc
// @Summary List categories
// @Description Returns every category in declared order
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.All())
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param key path string true "Category key"
// @Success 200 {object} domain.Category
// @Failure 404 {object} ProblemDetails
// @Router /categories/{key} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	cat, ok := h.registry.Lookup(domain.CategoryKey(c.Param("key")))
	if !ok {
		return NewNotFoundError(c, "Category not found")
	}
	return c.JSON(http.StatusOK, cat)
}
