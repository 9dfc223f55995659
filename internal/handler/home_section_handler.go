package handler

import (
	"errors"
	"net/http"

	"github.com/bionutrex/internal/service"
	"github.com/gin-gonic/gin"
)

const sectionNotFound = "Section not found"

func sectionInputFromPayload(p *contentPayload) (service.HomeSectionInput, error) {
	order, err := p.Int("order")
	if err != nil {
		return service.HomeSectionInput{}, err
	}
	images, replace, err := p.Images()
	if err != nil {
		return service.HomeSectionInput{}, err
	}
	return service.HomeSectionInput{
		SectionKey:    p.String("sectionKey"),
		Title:         p.String("title"),
		Subtitle:      p.String("subtitle"),
		Content:       p.String("content"),
		ImageURL:      p.String("imageUrl"),
		ButtonText:    p.String("buttonText"),
		ButtonLink:    p.String("buttonLink"),
		Order:         order,
		Active:        p.Bool("active"),
		Images:        images,
		ReplaceImages: replace,
	}, nil
}

func (a *API) respondSectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSectionNotFound):
		respondError(c, http.StatusNotFound, sectionNotFound)
	case errors.Is(err, service.ErrSectionFieldsRequired):
		respondError(c, http.StatusBadRequest, "Section key, title and content are required")
	case errors.Is(err, service.ErrSectionKeyExists):
		respondError(c, http.StatusBadRequest, "Section with this key already exists")
	default:
		a.internalError(c, err)
	}
}

// ListActiveSections 返回前台启用的首页区块及其图片。
func (a *API) ListActiveSections(c *gin.Context) {
	a.respondCached(c, cacheKeySections, func() (interface{}, error) {
		return a.sections.List(true)
	})
}

// ListAllSections 返回全部区块（后台）。
func (a *API) ListAllSections(c *gin.Context) {
	items, err := a.sections.List(false)
	if err != nil {
		a.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetSectionByKey 按 sectionKey 返回启用的区块。
func (a *API) GetSectionByKey(c *gin.Context) {
	item, err := a.sections.GetByKey(c.Param("key"))
	if err != nil {
		a.respondSectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetSection 按 id 返回区块，不论是否启用（后台）。
func (a *API) GetSection(c *gin.Context) {
	id, ok := idParam(c, sectionNotFound)
	if !ok {
		return
	}

	item, err := a.sections.Get(id)
	if err != nil {
		a.respondSectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateSection 创建首页区块。
func (a *API) CreateSection(c *gin.Context) {
	payload, ok := a.readContent(c)
	if !ok {
		return
	}

	input, err := sectionInputFromPayload(payload)
	if err != nil {
		a.discardImage(payload)
		respondPayloadError(c, err)
		return
	}

	item, err := a.sections.Create(input)
	if err != nil {
		a.discardImage(payload)
		a.respondSectionError(c, err)
		return
	}

	a.invalidate(c, cacheKeySections)
	c.JSON(http.StatusCreated, item)
}

// UpdateSection 部分更新区块，images 存在时整体替换图片集合。
func (a *API) UpdateSection(c *gin.Context) {
	id, ok := idParam(c, sectionNotFound)
	if !ok {
		return
	}

	payload, ok := a.readContent(c)
	if !ok {
		return
	}

	input, err := sectionInputFromPayload(payload)
	if err != nil {
		a.discardImage(payload)
		respondPayloadError(c, err)
		return
	}

	item, err := a.sections.Update(id, input)
	if err != nil {
		a.discardImage(payload)
		a.respondSectionError(c, err)
		return
	}

	a.invalidate(c, cacheKeySections)
	c.JSON(http.StatusOK, item)
}

// DeleteSection 删除区块及其图片。
func (a *API) DeleteSection(c *gin.Context) {
	id, ok := idParam(c, sectionNotFound)
	if !ok {
		return
	}

	if err := a.sections.Delete(id); err != nil {
		a.respondSectionError(c, err)
		return
	}

	a.invalidate(c, cacheKeySections)
	c.JSON(http.StatusOK, gin.H{"message": "Section deleted successfully"})
}
