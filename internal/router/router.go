package router

import (
	"html/template"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/nexapost/internal/config"
	"github.com/nexapost/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	// 配置会话中间件，管理员标记每个请求解析一次
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("nexapost_session", store))
	r.Use(handler.ResolveAdmin())

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"date": func(t interface{ Format(string) string }) string {
			return t.Format("2006-01-02 15:04")
		},
	})
	r.LoadHTMLGlob(cfg.TemplateGlob)

	// 静态文件服务
	r.Static("/static", "./web/static")

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 前台路由
	r.GET("/", api.ShowHome)
	r.GET("/post/:slug", api.ShowPost)
	r.GET("/about", api.ShowAbout)
	r.GET("/contact", api.ShowContact)
	r.POST("/contact", api.SubmitContact)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)
			auth.GET("/posts/new", api.ShowPostEdit)
			auth.POST("/posts/new", api.SavePostForm)
			auth.GET("/posts/:sno/edit", api.ShowPostEdit)
			auth.POST("/posts/:sno/edit", api.SavePostForm)
			auth.POST("/posts/:sno/delete", api.RemovePost)
			auth.POST("/upload", api.UploadImage)

			// API路由
			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/posts", api.GetPosts)
				apiGroup.GET("/posts/:sno", api.GetPost)
				apiGroup.POST("/posts", api.CreatePost)
				apiGroup.PUT("/posts/:sno", api.UpdatePost)
				apiGroup.DELETE("/posts/:sno", api.DeletePost)

				apiGroup.GET("/messages", api.GetContactMessages)
			}
		}
	}

	return r
}
