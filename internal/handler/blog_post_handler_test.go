package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPostBySlugRendersAndCounts(t *testing.T) {
	env := setupTestAPI(t)
	token := env.adminToken(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/blog-posts", map[string]interface{}{
		"title":     "Nutrición y Microbiota",
		"excerpt":   "Resumen",
		"content":   "## Hola\n\nTexto con **negrita** y <script>alert(1)</script>",
		"author":    "Equipo",
		"imageUrl":  "/uploads/p.png",
		"published": true,
	}), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Slug string `json:"slug"`
	}
	decodeJSON(t, w, &created)
	assert.Equal(t, "nutricion-y-microbiota", created.Slug)

	var view struct {
		Views       uint   `json:"views"`
		ContentHTML string `json:"contentHtml"`
	}
	for i := 1; i <= 2; i++ {
		w = env.do(httptest.NewRequest(http.MethodGet, "/api/blog-posts/slug/"+created.Slug, nil), "")
		require.Equal(t, http.StatusOK, w.Code)
		decodeJSON(t, w, &view)
		assert.Equal(t, uint(i), view.Views)
	}
	assert.Contains(t, view.ContentHTML, "<h2")
	assert.Contains(t, view.ContentHTML, "<strong>negrita</strong>")
	assert.False(t, strings.Contains(view.ContentHTML, "<script"))
}

func TestDraftPostIsHiddenBySlug(t *testing.T) {
	env := setupTestAPI(t)
	token := env.adminToken(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/blog-posts", map[string]interface{}{
		"title": "Borrador", "excerpt": "x", "content": "x", "author": "x", "imageUrl": "/uploads/p.png",
	}), token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/blog-posts/slug/borrador", nil), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", errorMessage(t, w))

	w = env.do(jsonRequest(http.MethodPost, "/api/blog-posts", map[string]interface{}{"title": "Incompleto"}), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostViewRefreshesCachedList(t *testing.T) {
	env := setupTestAPI(t)
	token := env.adminToken(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/blog-posts", map[string]interface{}{
		"title": "Probióticos", "excerpt": "x", "content": "x", "author": "x",
		"imageUrl": "/uploads/p.png", "published": true,
	}), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	type listed struct {
		Slug  string `json:"slug"`
		Views uint   `json:"views"`
	}
	var list []listed
	w = env.do(httptest.NewRequest(http.MethodGet, "/api/blog-posts", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, uint(0), list[0].Views)
	assert.True(t, env.cache.has(cacheKeyPosts))

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/blog-posts/slug/"+list[0].Slug, nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.cache.has(cacheKeyPosts))

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/blog-posts", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, uint(1), list[0].Views)
}
