package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/bionutrex/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFileLifecycle(t *testing.T) {
	env := setupTestAPI(t)
	token := env.adminToken(t)

	req := multipartRequest(t, http.MethodPost, "/api/uploads", nil,
		formFile{field: "file", filename: "foto.png", content: pngBytes(t, 10, 6)})
	w := env.do(req, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = multipartRequest(t, http.MethodPost, "/api/uploads", nil,
		formFile{field: "file", filename: "foto.png", content: pngBytes(t, 10, 6)})
	w = env.do(req, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var stored storage.StoredFile
	decodeJSON(t, w, &stored)
	assert.Equal(t, "image/png", stored.MimeType)
	assert.Equal(t, 10, stored.Width)
	assert.Equal(t, "foto.png", stored.OriginalName)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/uploads/list", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	var names []string
	decodeJSON(t, w, &names)
	assert.Equal(t, []string{stored.Filename}, names)

	w = env.do(httptest.NewRequest(http.MethodDelete, "/api/uploads/"+stored.Filename, nil), token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(httptest.NewRequest(http.MethodDelete, "/api/uploads/"+stored.Filename, nil), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found", errorMessage(t, w))

	w = env.do(httptest.NewRequest(http.MethodDelete, "/api/uploads/..", nil), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid filename", errorMessage(t, w))
}

func TestUploadFileErrors(t *testing.T) {
	env := setupTestAPI(t)
	token := env.adminToken(t)

	w := env.do(multipartRequest(t, http.MethodPost, "/api/uploads", map[string]string{"x": "y"}), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", errorMessage(t, w))

	w = env.do(multipartRequest(t, http.MethodPost, "/api/uploads", nil,
		formFile{field: "file", filename: "run.exe", content: []byte("MZ\x90\x00binary")}), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid file type", errorMessage(t, w))
}

func TestUploadFilesRollsBack(t *testing.T) {
	env := setupTestAPI(t)
	token := env.adminToken(t)

	req := multipartRequest(t, http.MethodPost, "/api/uploads/multiple", nil,
		formFile{field: "files", filename: "a.png", content: pngBytes(t, 2, 2)},
		formFile{field: "files", filename: "b.txt", content: []byte("plain text")},
	)
	w := env.do(req, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	entries, err := os.ReadDir(env.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	files := make([]formFile, 0, storage.MaxFiles+1)
	for i := 0; i <= storage.MaxFiles; i++ {
		files = append(files, formFile{field: "files", filename: fmt.Sprintf("%d.png", i), content: pngBytes(t, 2, 2)})
	}
	w = env.do(multipartRequest(t, http.MethodPost, "/api/uploads/multiple", nil, files...), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Too many files (max 10)", errorMessage(t, w))

	req = multipartRequest(t, http.MethodPost, "/api/uploads/multiple", nil,
		formFile{field: "files", filename: "a.png", content: pngBytes(t, 2, 2)},
		formFile{field: "files", filename: "b.png", content: pngBytes(t, 3, 3)},
	)
	w = env.do(req, token)
	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		Files []storage.StoredFile `json:"files"`
	}
	decodeJSON(t, w, &body)
	assert.Len(t, body.Files, 2)
}
