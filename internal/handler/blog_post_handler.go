package handler

import (
	"errors"
	"net/http"

	"github.com/bionutrex/internal/db"
	"github.com/bionutrex/internal/service"
	"github.com/gin-gonic/gin"
)

const postNotFound = "Post not found"

// blogPostView 在文章字段之外附带渲染后的 HTML。
type blogPostView struct {
	db.BlogPost
	ContentHTML string `json:"contentHtml"`
}

func postInputFromPayload(p *contentPayload) service.BlogPostInput {
	return service.BlogPostInput{
		Title:     p.String("title"),
		Excerpt:   p.String("excerpt"),
		Content:   p.String("content"),
		ImageURL:  p.String("imageUrl"),
		Author:    p.String("author"),
		Published: p.Bool("published"),
	}
}

func (a *API) respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, postNotFound)
	case errors.Is(err, service.ErrPostFieldsRequired):
		respondError(c, http.StatusBadRequest, "Title, excerpt, content and author are required")
	case errors.Is(err, service.ErrPostImageRequired):
		respondError(c, http.StatusBadRequest, "Image is required")
	default:
		a.internalError(c, err)
	}
}

// ListPublishedPosts 返回已发布文章，按发布时间倒序。
func (a *API) ListPublishedPosts(c *gin.Context) {
	a.respondCached(c, cacheKeyPosts, func() (interface{}, error) {
		return a.posts.ListPublished()
	})
}

// ListAllPosts 返回全部文章（后台）。
func (a *API) ListAllPosts(c *gin.Context) {
	items, err := a.posts.ListAll()
	if err != nil {
		a.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetPostBySlug 返回已发布文章并累加阅读数。
func (a *API) GetPostBySlug(c *gin.Context) {
	item, err := a.posts.ViewBySlug(c.Param("slug"))
	if err != nil {
		a.respondPostError(c, err)
		return
	}
	a.metrics.ObservePostView()
	a.invalidate(c, cacheKeyPosts)

	html, err := service.RenderMarkdown(item.Content)
	if err != nil {
		a.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogPostView{BlogPost: *item, ContentHTML: html})
}

// GetPost 按 id 返回文章，不论是否发布（后台）。
func (a *API) GetPost(c *gin.Context) {
	id, ok := idParam(c, postNotFound)
	if !ok {
		return
	}

	item, err := a.posts.Get(id)
	if err != nil {
		a.respondPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreatePost 创建文章并生成唯一 slug。
func (a *API) CreatePost(c *gin.Context) {
	payload, ok := a.readContent(c)
	if !ok {
		return
	}

	item, err := a.posts.Create(postInputFromPayload(payload))
	if err != nil {
		a.discardImage(payload)
		a.respondPostError(c, err)
		return
	}

	a.invalidate(c, cacheKeyPosts)
	c.JSON(http.StatusCreated, item)
}

// UpdatePost 部分更新文章。
func (a *API) UpdatePost(c *gin.Context) {
	id, ok := idParam(c, postNotFound)
	if !ok {
		return
	}

	payload, ok := a.readContent(c)
	if !ok {
		return
	}

	item, err := a.posts.Update(id, postInputFromPayload(payload))
	if err != nil {
		a.discardImage(payload)
		a.respondPostError(c, err)
		return
	}

	a.invalidate(c, cacheKeyPosts)
	c.JSON(http.StatusOK, item)
}

// DeletePost 删除文章。
func (a *API) DeletePost(c *gin.Context) {
	id, ok := idParam(c, postNotFound)
	if !ok {
		return
	}

	if err := a.posts.Delete(id); err != nil {
		a.respondPostError(c, err)
		return
	}

	a.invalidate(c, cacheKeyPosts)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
