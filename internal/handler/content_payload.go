package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/bionutrex/internal/service"
	"github.com/bionutrex/internal/storage"
	"github.com/gin-gonic/gin"
)

var (
	errInvalidBody  = errors.New("invalid request body")
	errInvalidOrder = errors.New("order must be an integer")
)

// contentPayload 统一 JSON 与 multipart 两种请求体，字段缺失与空字符串可区分。
type contentPayload struct {
	fields map[string]interface{}
	image  *multipart.FileHeader
	// stored 为本次请求已写入磁盘的图片文件名
	stored string
}

func readContentPayload(c *gin.Context) (*contentPayload, error) {
	payload := &contentPayload{fields: make(map[string]interface{})}

	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				payload.fields[key] = values[0]
			}
		}
		if files := form.File["image"]; len(files) > 0 {
			payload.image = files[0]
		}
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				payload.fields[key] = values[0]
			}
		}
	default:
		decoder := json.NewDecoder(c.Request.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&payload.fields); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		if payload.fields == nil {
			payload.fields = make(map[string]interface{})
		}
	}

	return payload, nil
}

// String 返回字段的字符串形式；未提供时为 nil，JSON null 视为空字符串。
func (p *contentPayload) String(key string) *string {
	raw, ok := p.fields[key]
	if !ok {
		return nil
	}

	var value string
	switch v := raw.(type) {
	case nil:
		value = ""
	case string:
		value = v
	case json.Number:
		value = v.String()
	case bool:
		value = strconv.FormatBool(v)
	default:
		value = fmt.Sprint(v)
	}
	return &value
}

// Bool 仅当值为 true 或 "true" 时返回 true。
func (p *contentPayload) Bool(key string) *bool {
	raw, ok := p.fields[key]
	if !ok {
		return nil
	}
	value := raw == true || raw == "true"
	return &value
}

func (p *contentPayload) Int(key string) (*int, error) {
	raw, ok := p.fields[key]
	if !ok {
		return nil, nil
	}
	return intValue(raw)
}

// Images 解析 images 数组；multipart 中以 JSON 字符串传递。
// 第二个返回值表示请求是否携带了 images。
func (p *contentPayload) Images() ([]service.SectionImageInput, bool, error) {
	raw, ok := p.fields["images"]
	if !ok || raw == nil {
		return nil, false, nil
	}

	if encoded, isString := raw.(string); isString {
		decoder := json.NewDecoder(strings.NewReader(encoded))
		decoder.UseNumber()
		var decoded interface{}
		if err := decoder.Decode(&decoded); err != nil {
			return nil, false, fmt.Errorf("%w: images", errInvalidBody)
		}
		raw = decoded
	}

	items, isArray := raw.([]interface{})
	if !isArray {
		return nil, false, nil
	}

	images := make([]service.SectionImageInput, 0, len(items))
	for _, item := range items {
		fields, isObject := item.(map[string]interface{})
		if !isObject {
			continue
		}
		entry := &contentPayload{fields: fields}
		order, err := entry.Int("order")
		if err != nil {
			return nil, false, err
		}
		images = append(images, service.SectionImageInput{
			URL:     derefString(entry.String("url")),
			Alt:     derefString(entry.String("alt")),
			Caption: derefString(entry.String("caption")),
			Order:   order,
		})
	}
	return images, true, nil
}

// attachImage 保存 multipart 中的 image 文件，并以其 URL 覆盖 imageUrl 字段。
func (a *API) attachImage(p *contentPayload) error {
	if p.image == nil {
		return nil
	}

	stored, err := a.storage.Save(p.image, storage.ImageRules)
	if err != nil {
		return err
	}
	a.metrics.ObserveUpload(stored.MimeType, stored.Size)
	p.fields["imageUrl"] = stored.URL
	p.stored = stored.Filename
	return nil
}

// discardImage 在请求最终失败时删除已保存的图片，避免留下孤立文件。
func (a *API) discardImage(p *contentPayload) {
	if p == nil || p.stored == "" {
		return
	}
	if err := a.storage.Delete(p.stored); err != nil {
		a.log.Warn("failed to remove orphaned upload", "filename", p.stored, "error", err)
	}
	p.stored = ""
}

// readContent 读取请求体并处理附带的图片，出错时已写入响应。
func (a *API) readContent(c *gin.Context) (*contentPayload, bool) {
	payload, err := readContentPayload(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := a.attachImage(payload); err != nil {
		a.respondUploadError(c, err)
		return nil, false
	}
	return payload, true
}

func respondPayloadError(c *gin.Context, err error) {
	if errors.Is(err, errInvalidOrder) {
		respondError(c, http.StatusBadRequest, "Order must be an integer")
		return
	}
	respondError(c, http.StatusBadRequest, "Invalid request body")
}

func intValue(raw interface{}) (*int, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case json.Number:
		parsed, err := strconv.Atoi(v.String())
		if err != nil {
			return nil, errInvalidOrder
		}
		return &parsed, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, errInvalidOrder
		}
		return &parsed, nil
	case float64:
		parsed := int(v)
		if float64(parsed) != v {
			return nil, errInvalidOrder
		}
		return &parsed, nil
	default:
		return nil, errInvalidOrder
	}
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
