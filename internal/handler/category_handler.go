package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/service"
)

// CategoryHandler serves the read-only category endpoints.
type CategoryHandler struct {
	categories service.CategoryService
	errorResponder
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categories service.CategoryService, exposeErrors bool) *CategoryHandler {
	return &CategoryHandler{categories: categories, errorResponder: errorResponder{exposeDetail: exposeErrors}}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categories.ListCategories(c.Request().Context())
	if err != nil {
		return h.fail(err, "Error retrieving categories")
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory godoc
// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	category, err := h.categories.GetCategory(c.Request().Context(), id)
	if err != nil {
		return h.fail(err, "Error retrieving category")
	}
	return c.JSON(http.StatusOK, category)
}
