package router

import (
	"net/http"

	"github.com/driftpress/internal/config"
	"github.com/driftpress/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("driftpress_session", store))

	if len(cfg.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	// 上传文件的静态服务
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	{
		// 认证
		apiGroup.POST("/auth/login", api.Login)
		apiGroup.POST("/auth/logout", api.Logout)
		apiGroup.GET("/auth/session", api.Session)
		apiGroup.GET("/auth/google", api.GoogleStart)
		apiGroup.GET("/auth/google/callback", api.GoogleCallback)

		// 公开读取接口
		apiGroup.GET("/posts", api.GetPosts)
		apiGroup.GET("/posts/:slug", api.GetPost)
		apiGroup.GET("/projects", api.GetProjects)
		apiGroup.GET("/projects/:slug", api.GetProject)
		apiGroup.GET("/services", api.GetServices)
		apiGroup.GET("/services/:slug", api.GetService)

		// 需要管理员会话的写接口
		admin := apiGroup.Group("")
		admin.Use(handler.AdminRequired())
		{
			admin.POST("/posts", api.CreatePost)
			admin.PUT("/posts/:slug", api.UpdatePost)
			admin.DELETE("/posts/:slug", api.DeletePost)

			admin.POST("/projects", api.CreateProject)
			admin.PUT("/projects/:slug", api.UpdateProject)
			admin.DELETE("/projects/:slug", api.DeleteProject)

			admin.POST("/services", api.CreateService)
			admin.PUT("/services/:slug", api.UpdateService)
			admin.DELETE("/services/:slug", api.DeleteService)

			admin.GET("/slug/check", api.CheckSlug)
			admin.GET("/slug/suggest", api.SuggestSlugs)

			admin.POST("/upload", api.UploadFile)
		}
	}

	return r
}
