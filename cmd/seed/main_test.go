package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const categoriesJSON = `[
	{"categoryName": "Errands", "color": "#123456"},
	{"categoryName": "  ", "color": "#000000"},
	{"categoryName": "Travel", "description": "Trips"}
]`

func TestLoadCategories_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(path, []byte(categoriesJSON), 0o600))

	items, err := loadCategories(path)
	require.NoError(t, err)
	require.Len(t, items, 3)

	categories := toModels(items)
	require.Len(t, categories, 2)
	assert.Equal(t, "Errands", categories[0].Name)
	assert.Equal(t, "#123456", categories[0].Color)
	assert.Equal(t, "Travel", categories[1].Name)
	require.NotNil(t, categories[1].Description)
	assert.Equal(t, "Trips", *categories[1].Description)
}

func TestLoadCategories_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/categories.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(categoriesJSON))
	}))
	defer srv.Close()

	items, err := loadCategories(srv.URL + "/categories.json")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = loadCategories(srv.URL + "/missing.json")
	assert.Error(t, err)
}

func TestLoadCategories_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categoryName":"x"}`), 0o600))

	_, err := loadCategories(path)
	assert.Error(t, err)
}
