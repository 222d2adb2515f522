package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
)

func TestCategoryHandler(t *testing.T) {
	e := newTestEcho()
	categories := new(MockCategoryService)
	h := NewCategoryHandler(categories, true)
	e.GET("/api/categories", h.ListCategories)
	e.GET("/api/categories/:id", h.GetCategory)

	categories.On("ListCategories", mock.Anything).Return([]model.Category{
		{ID: 1, Name: "Personal", Color: "#28a745"},
		{ID: 2, Name: "Work", Color: "#007bff"},
	}, nil)
	categories.On("GetCategory", mock.Anything, uint(2)).Return(&model.Category{ID: 2, Name: "Work"}, nil)
	categories.On("GetCategory", mock.Anything, uint(3)).Return(nil, apperrors.NotFound("Category"))
	categories.On("GetCategory", mock.Anything, uint(4)).Return(nil, errors.New("connection reset"))

	rec := serve(e, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"categoryName":"Personal"`)

	rec = serve(e, http.MethodGet, "/api/categories/2", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"categoryId":2`)

	rec = serve(e, http.MethodGet, "/api/categories/3", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Development mode attaches the raw error.
	rec = serve(e, http.MethodGet, "/api/categories/4", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Error retrieving category", body.Message)
	assert.Equal(t, "connection reset", body.Error)
}
