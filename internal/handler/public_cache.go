package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	cacheKeySliders  = "sliders:active"
	cacheKeySections = "home-sections:active"
	cacheKeyPosts    = "blog-posts:published"
)

// respondCached 先查缓存，未命中时调用 load 并写回；缓存故障只记录日志。
func (a *API) respondCached(c *gin.Context, key string, load func() (interface{}, error)) {
	ctx := c.Request.Context()

	body, hit, err := a.cache.Get(ctx, key)
	if err != nil {
		a.log.Warn("cache read failed", "key", key, "error", err)
	}
	a.metrics.ObserveCache(hit)
	if hit {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	data, err := load()
	if err != nil {
		a.internalError(c, err)
		return
	}

	body, err = json.Marshal(data)
	if err != nil {
		a.internalError(c, err)
		return
	}
	if a.cacheTTL > 0 {
		if err := a.cache.Set(ctx, key, body, a.cacheTTL); err != nil {
			a.log.Warn("cache write failed", "key", key, "error", err)
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (a *API) invalidate(c *gin.Context, keys ...string) {
	if err := a.cache.Delete(c.Request.Context(), keys...); err != nil {
		a.log.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}
