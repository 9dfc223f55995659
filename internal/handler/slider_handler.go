package handler

import (
	"errors"
	"net/http"

	"github.com/bionutrex/internal/service"
	"github.com/gin-gonic/gin"
)

const sliderNotFound = "Slider not found"

func sliderInputFromPayload(p *contentPayload) (service.SliderInput, error) {
	order, err := p.Int("order")
	if err != nil {
		return service.SliderInput{}, err
	}
	return service.SliderInput{
		Title:       p.String("title"),
		Subtitle:    p.String("subtitle"),
		Description: p.String("description"),
		ImageURL:    p.String("imageUrl"),
		ButtonText:  p.String("buttonText"),
		ButtonLink:  p.String("buttonLink"),
		Order:       order,
		Active:      p.Bool("active"),
	}, nil
}

func (a *API) respondSliderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSliderNotFound):
		respondError(c, http.StatusNotFound, sliderNotFound)
	case errors.Is(err, service.ErrSliderTitleRequired):
		respondError(c, http.StatusBadRequest, "Title is required")
	case errors.Is(err, service.ErrSliderImageRequired):
		respondError(c, http.StatusBadRequest, "Image is required")
	default:
		a.internalError(c, err)
	}
}

// ListActiveSliders 返回前台展示的启用轮播图。
func (a *API) ListActiveSliders(c *gin.Context) {
	a.respondCached(c, cacheKeySliders, func() (interface{}, error) {
		return a.sliders.List(true)
	})
}

// ListAllSliders 返回全部轮播图（后台）。
func (a *API) ListAllSliders(c *gin.Context) {
	items, err := a.sliders.List(false)
	if err != nil {
		a.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetSlider 按 id 返回轮播图。
func (a *API) GetSlider(c *gin.Context) {
	id, ok := idParam(c, sliderNotFound)
	if !ok {
		return
	}

	item, err := a.sliders.Get(id)
	if err != nil {
		a.respondSliderError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateSlider 创建轮播图，支持 multipart 图片上传。
func (a *API) CreateSlider(c *gin.Context) {
	payload, ok := a.readContent(c)
	if !ok {
		return
	}

	input, err := sliderInputFromPayload(payload)
	if err != nil {
		a.discardImage(payload)
		respondPayloadError(c, err)
		return
	}

	item, err := a.sliders.Create(input)
	if err != nil {
		a.discardImage(payload)
		a.respondSliderError(c, err)
		return
	}

	a.invalidate(c, cacheKeySliders)
	c.JSON(http.StatusCreated, item)
}

// UpdateSlider 部分更新轮播图。
func (a *API) UpdateSlider(c *gin.Context) {
	id, ok := idParam(c, sliderNotFound)
	if !ok {
		return
	}

	payload, ok := a.readContent(c)
	if !ok {
		return
	}

	input, err := sliderInputFromPayload(payload)
	if err != nil {
		a.discardImage(payload)
		respondPayloadError(c, err)
		return
	}

	item, err := a.sliders.Update(id, input)
	if err != nil {
		a.discardImage(payload)
		a.respondSliderError(c, err)
		return
	}

	a.invalidate(c, cacheKeySliders)
	c.JSON(http.StatusOK, item)
}

// DeleteSlider 删除轮播图。
func (a *API) DeleteSlider(c *gin.Context) {
	id, ok := idParam(c, sliderNotFound)
	if !ok {
		return
	}

	if err := a.sliders.Delete(id); err != nil {
		a.respondSliderError(c, err)
		return
	}

	a.invalidate(c, cacheKeySliders)
	c.JSON(http.StatusOK, gin.H{"message": "Slider deleted successfully"})
}
