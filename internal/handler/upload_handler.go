package handler

import (
	"fmt"
	"net/http"

	"github.com/bionutrex/internal/storage"
	"github.com/gin-gonic/gin"
)

// UploadFile 处理媒体库单文件上传，字段名为 file（兼容 image）。
func (a *API) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		file, err = c.FormFile("image")
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	stored, err := a.storage.Save(file, storage.MediaRules)
	if err != nil {
		a.respondUploadError(c, err)
		return
	}

	a.metrics.ObserveUpload(stored.MimeType, stored.Size)
	a.log.Info("file uploaded", "filename", stored.Filename, "size", stored.Size, "mime_type", stored.MimeType)
	c.JSON(http.StatusCreated, stored)
}

// UploadFiles 处理多文件上传，任一文件不合法时回滚已保存的文件。
func (a *API) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "No files uploaded")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "No files uploaded")
		return
	}
	if len(files) > storage.MaxFiles {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Too many files (max %d)", storage.MaxFiles))
		return
	}

	results := make([]*storage.StoredFile, 0, len(files))
	for _, file := range files {
		stored, err := a.storage.Save(file, storage.MediaRules)
		if err != nil {
			for _, saved := range results {
				if removeErr := a.storage.Delete(saved.Filename); removeErr != nil {
					a.log.Warn("failed to roll back upload", "filename", saved.Filename, "error", removeErr)
				}
			}
			a.respondUploadError(c, err)
			return
		}
		results = append(results, stored)
	}

	for _, stored := range results {
		a.metrics.ObserveUpload(stored.MimeType, stored.Size)
	}
	a.log.Info("files uploaded", "count", len(results))
	c.JSON(http.StatusCreated, gin.H{"files": results})
}

// ListUploads 返回上传目录中的媒体文件名。
func (a *API) ListUploads(c *gin.Context) {
	names, err := a.storage.List()
	if err != nil {
		a.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// DeleteUpload 删除上传目录中的单个文件。
func (a *API) DeleteUpload(c *gin.Context) {
	filename := c.Param("filename")
	if err := a.storage.Delete(filename); err != nil {
		a.respondUploadError(c, err)
		return
	}

	a.log.Info("file deleted", "filename", filename)
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
