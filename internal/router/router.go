package router

import (
	"github.com/atelierhq/internal/config"
	"github.com/atelierhq/internal/db"
	"github.com/atelierhq/internal/handler"
	"github.com/atelierhq/internal/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the gin engine and all routes.
func SetupRouter(cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("atelier_session", store))

	media := storage.NewMediaStore(cfg.MediaDir, cfg.MediaBucket, cfg.SiteBaseURL, cfg.MediaURLPath, cfg.MaxImageWidth)
	api := handler.NewAPI(db.DB, media)

	// Uploaded media is served straight from the bucket directory.
	r.Static(cfg.MediaURLPath, cfg.MediaDir+"/"+cfg.MediaBucket)

	r.GET("/ping", api.Ping)
	r.GET("/healthz", api.Health)

	// Public API. Only the admin prefix is session-guarded.
	public := r.Group("/api")
	{
		public.GET("/posts", api.ListPublishedPosts)
		public.GET("/posts/:slug", api.GetPublishedPost)

		public.GET("/projects", api.ListProjects)
		public.POST("/projects", api.CreateProject)
		public.GET("/projects/:slug", api.GetProject)
		public.PUT("/projects/:slug", api.UpdateProject)
		public.DELETE("/projects/:slug", api.DeleteProject)

		public.POST("/admin/signup", api.Signup)
	}

	admin := r.Group("/admin")
	{
		entry := admin.Group("")
		entry.Use(api.RedirectIfAuthenticated())
		{
			entry.GET("/login", api.ShowLogin)
			entry.GET("/signup", api.ShowSignup)
		}
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(api.AdminRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)

			adminAPI := auth.Group("/api")
			{
				adminAPI.GET("/posts", api.ListPosts)
				adminAPI.GET("/posts/:id", api.GetPost)
				adminAPI.POST("/posts", api.CreatePost)
				adminAPI.PUT("/posts/:id", api.UpdatePost)
				adminAPI.DELETE("/posts/:id", api.DeletePost)

				adminAPI.GET("/projects", api.AdminListProjects)
				adminAPI.GET("/projects/:id", api.AdminGetProject)
				adminAPI.DELETE("/projects/:id", api.AdminDeleteProject)

				adminAPI.GET("/storage", api.StorageStatus)
				adminAPI.POST("/upload/image", api.UploadImage)
				adminAPI.DELETE("/upload", api.DeleteUpload)
			}
		}
	}

	return r
}
