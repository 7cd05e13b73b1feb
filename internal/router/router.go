package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/config"
	"github.com/lumenfolio/internal/handler"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由。
func SetupRouter(gdb *gorm.DB, cfg *config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 后台与客片两套命名会话共用一个签名 cookie store，
	// 各自的有效期与属性在签发处设置。
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.SessionsMany([]string{handler.AdminSessionName, handler.ClientSessionName}, store))

	api := handler.NewAPI(gdb, cfg)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// 公开接口
	public := r.Group("/api")
	{
		public.GET("/galleries", api.ListPublishedGalleries)
		public.GET("/pages/:slug", api.GetPublicPage)
		public.POST("/leads", api.CreateLead)
		public.POST("/access/verify", api.VerifyAccess)
	}

	// 客片私享路由，凭会话访问
	client := r.Group("/client")
	client.Use(handler.ClientAccessRequired())
	{
		client.GET("/galleries/:slug", api.ClientGalleryView)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/galleries", api.ListGalleries)
			auth.GET("/galleries/:id", api.GetGallery)
			auth.POST("/galleries", api.CreateGallery)
			auth.PUT("/galleries/:id", api.UpdateGallery)
			auth.DELETE("/galleries/:id", api.DeleteGallery)
			auth.POST("/galleries/:id/images", api.AddGalleryImage)
			auth.PUT("/galleries/:id/images/order", api.ReorderGalleryImages)
			auth.DELETE("/gallery-images/:imageId", api.RemoveGalleryImage)
			auth.GET("/galleries/:id/credentials", api.ListGalleryCredentials)

			auth.POST("/credentials", api.CreateCredential)
			auth.DELETE("/credentials/:id", api.RevokeCredential)

			auth.POST("/uploads/sign", api.SignUpload)
			auth.GET("/uploads/sign-download", api.SignDownload)

			auth.GET("/clients", api.ListClients)
			auth.POST("/clients", api.CreateClient)
			auth.PUT("/clients/:id", api.UpdateClient)
			auth.DELETE("/clients/:id", api.DeleteClient)

			auth.GET("/projects", api.ListProjects)
			auth.POST("/projects", api.CreateProject)
			auth.PUT("/projects/:id", api.UpdateProject)
			auth.DELETE("/projects/:id", api.DeleteProject)

			auth.GET("/pages", api.ListPages)
			auth.POST("/pages", api.SavePage)
			auth.PUT("/pages/:id", api.SavePage)
			auth.DELETE("/pages/:id", api.DeletePage)

			auth.GET("/leads", api.ListLeads)
			auth.PUT("/leads/:id/status", api.UpdateLeadStatus)
			auth.PUT("/leads/:id/notes", api.UpdateLeadNotes)
			auth.DELETE("/leads/:id", api.DeleteLead)
		}
	}

	return r
}
