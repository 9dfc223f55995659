package router

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bionutrex/internal/handler"
	"github.com/bionutrex/internal/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Options 控制路由层的可选行为。
type Options struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	CORSOrigins []string
	// StaticDir 指向前端构建目录，为空时不托管 SPA。
	StaticDir string
	// AuthRatePerMinute 限制登录与注册的每 IP 请求数，0 表示不限流。
	AuthRatePerMinute float64
	AuthBurst         int
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(requestID(), requestLogger(log), recovery(log), cors(opts.CORSOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", opts.Metrics.Handler())
	}

	// 上传文件静态服务
	store := api.Storage()
	r.Group(store.URLPath(), uploadHeaders()).Static("/", store.Dir())

	apiGroup := r.Group("/api")
	apiGroup.GET("/health", api.HealthCheck)

	authRequired := api.AuthRequired()

	authLimit := rateLimit(log, rate.Limit(opts.AuthRatePerMinute/60), opts.AuthBurst)

	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authLimit, api.Login)
		authRoutes.POST("/register", authLimit, api.Register)
		authRoutes.GET("/verify", authRequired, api.Verify)
	}

	sliders := apiGroup.Group("/sliders")
	{
		sliders.GET("", api.ListActiveSliders)
		sliders.GET("/admin/all", authRequired, api.ListAllSliders)
		sliders.GET("/:id", api.GetSlider)
		sliders.POST("", authRequired, api.CreateSlider)
		sliders.PUT("/:id", authRequired, api.UpdateSlider)
		sliders.DELETE("/:id", authRequired, api.DeleteSlider)
	}

	sections := apiGroup.Group("/home-sections")
	{
		sections.GET("", api.ListActiveSections)
		sections.GET("/admin/all", authRequired, api.ListAllSections)
		sections.GET("/key/:key", api.GetSectionByKey)
		sections.GET("/:id", authRequired, api.GetSection)
		sections.POST("", authRequired, api.CreateSection)
		sections.PUT("/:id", authRequired, api.UpdateSection)
		sections.DELETE("/:id", authRequired, api.DeleteSection)
	}

	posts := apiGroup.Group("/blog-posts")
	{
		posts.GET("", api.ListPublishedPosts)
		posts.GET("/admin/all", authRequired, api.ListAllPosts)
		posts.GET("/slug/:slug", api.GetPostBySlug)
		posts.GET("/:id", authRequired, api.GetPost)
		posts.POST("", authRequired, api.CreatePost)
		posts.PUT("/:id", authRequired, api.UpdatePost)
		posts.DELETE("/:id", authRequired, api.DeletePost)
	}

	uploads := apiGroup.Group("/uploads")
	{
		uploads.POST("", authRequired, api.UploadFile)
		uploads.POST("/multiple", authRequired, api.UploadFiles)
		uploads.GET("/list", api.ListUploads)
		uploads.DELETE("/:filename", authRequired, api.DeleteUpload)
	}

	r.NoRoute(spaFallback(opts.StaticDir))
	return r
}

// spaFallback 为 /api 之外的路径返回构建产物或 index.html，其余返回 JSON 404。
func spaFallback(staticDir string) gin.HandlerFunc {
	root := strings.TrimSpace(staticDir)
	index := filepath.Join(root, "index.html")

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if root == "" || strings.HasPrefix(path, "/api") || c.Request.Method != http.MethodGet {
			handler.NotFound(c)
			return
		}

		candidate := filepath.Join(root, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
		if _, err := os.Stat(index); err != nil {
			handler.NotFound(c)
			return
		}
		c.File(index)
	}
}
