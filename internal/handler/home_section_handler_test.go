package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/bionutrex/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionImagesReplaceAndDeactivate(t *testing.T) {
	env := setupTestAPI(t)
	token := env.adminToken(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/home-sections", map[string]interface{}{
		"sectionKey": "quality",
		"title":      "Calidad",
		"content":    "Procesos certificados",
		"active":     true,
		"images": []map[string]interface{}{
			{"url": "/uploads/a.png", "alt": "A"},
			{"url": ""},
			{"url": "/uploads/b.png", "order": 5},
		},
	}), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var section db.HomeSection
	decodeJSON(t, w, &section)

	w = env.do(jsonRequest(http.MethodPost, "/api/home-sections", map[string]interface{}{
		"sectionKey": "quality", "title": "Otra", "content": "x",
	}), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Section with this key already exists", errorMessage(t, w))

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/home-sections", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []db.HomeSection
	decodeJSON(t, w, &listed)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Images, 2)
	assert.Equal(t, "/uploads/a.png", listed[0].Images[0].URL)
	assert.Equal(t, 5, listed[0].Images[1].SortOrder)

	target := "/api/home-sections/" + strconv.Itoa(int(section.ID))
	w = env.do(jsonRequest(http.MethodPut, target, map[string]interface{}{
		"images": []map[string]interface{}{{"url": "/uploads/c.png"}},
	}), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeJSON(t, w, &section)
	require.Len(t, section.Images, 1)
	assert.Equal(t, "/uploads/c.png", section.Images[0].URL)
	assert.Equal(t, "Calidad", section.Title)

	w = env.do(jsonRequest(http.MethodPut, target, map[string]interface{}{"active": false}), token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/home-sections", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &listed)
	assert.Empty(t, listed)
}

func TestCreateSectionRequiresFields(t *testing.T) {
	env := setupTestAPI(t)
	token := env.adminToken(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/home-sections", map[string]interface{}{"title": "Sin clave"}), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Section key, title and content are required", errorMessage(t, w))
}
