package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/gofinance/gofinance-backend/internal/category"
	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategories(t *testing.T) {
	e := echo.New()
	h := NewCategoryHandler(category.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GetCategories(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var categories []domain.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 6)
	assert.Equal(t, domain.Category{Key: "purchases", Name: "Compras", Icon: "shopping-bag"}, categories[0])
}

func TestGetCategory(t *testing.T) {
	e := echo.New()
	h := NewCategoryHandler(category.Default())

	tests := []struct {
		key        string
		wantStatus int
	}{
		{"food", http.StatusOK},
		{"travel", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/"+tt.key, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("key")
			c.SetParamValues(tt.key)

			require.NoError(t, h.GetCategory(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
