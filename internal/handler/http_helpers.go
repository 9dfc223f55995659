package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/bionutrex/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const internalErrorMessage = "Internal server error"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondValidation 返回 400，并附带 validator 的字段级错误。
func respondValidation(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if details := validationDetails(err); len(details) > 0 {
		body["details"] = details
	}
	c.JSON(http.StatusBadRequest, body)
}

// internalError 记录原始错误，对外只返回通用信息。
func (a *API) internalError(c *gin.Context, err error) {
	a.log.Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	respondError(c, http.StatusInternalServerError, internalErrorMessage)
}

func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[lowerFirst(fe.Field())] = fe.Tag()
	}
	return details
}

func lowerFirst(value string) string {
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := strings.TrimSpace(c.Param(key))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// idParam 解析路径中的 id，非法时直接返回 404，与找不到记录一致。
func idParam(c *gin.Context, notFound string) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, notFound)
		return 0, false
	}
	return id, true
}

// respondUploadError 将存储层错误映射为 HTTP 响应。
func (a *API) respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		respondError(c, http.StatusBadRequest, "File too large")
	case errors.Is(err, storage.ErrInvalidFileType):
		respondError(c, http.StatusBadRequest, "Invalid file type")
	case errors.Is(err, storage.ErrInvalidFileName):
		respondError(c, http.StatusBadRequest, "Invalid filename")
	case errors.Is(err, storage.ErrFileNotFound):
		respondError(c, http.StatusNotFound, "File not found")
	default:
		a.internalError(c, err)
	}
}
