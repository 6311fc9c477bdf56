package routes

import (
	"iniva-cms/cache"
	"iniva-cms/handlers"
	"iniva-cms/middleware"
	"iniva-cms/models"

	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Hub         *handlers.HubHandler
	Actor       *handlers.ActorHandler
	Appointment *handlers.AppointmentHandler
	Contact     *handlers.ContactHandler
	Category    *handlers.CategoryHandler
	Tag         *handlers.TagHandler
	BlogPost    *handlers.BlogPostHandler
	Setting     *handlers.SettingHandler
	Transfer    *handlers.TransferHandler
	Upload      *handlers.UploadHandler
	System      *handlers.SystemHandler
}

type Options struct {
	Tokens      middleware.TokenParser
	Cache       cache.Cache
	RateLimiter *middleware.RateLimiter
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(), middleware.Logger(), middleware.CORS())
	Register(router, h, opts)
	return router
}

// Register mounts the public API under /api and the back office under /api/admin.
func Register(router *gin.Engine, h Handlers, opts Options) {
	api := router.Group("/api")
	{
		api.GET("/health", h.System.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.GET("/me", middleware.AuthMiddleware(opts.Tokens), h.Auth.GetProfile)
		}

		api.GET("/hubs", h.Hub.GetPublicHubs)
		api.GET("/actors", h.Actor.GetPublicActors)
		api.GET("/blog", h.BlogPost.GetPublicPosts)
		api.GET("/blog/:slug", h.BlogPost.GetPublicPost)
		api.GET("/uploads/:filename", h.Upload.ServeUpload)

		forms := api.Group("")
		if opts.RateLimiter != nil {
			forms.Use(opts.RateLimiter.Middleware())
		}
		{
			forms.POST("/appointments", h.Appointment.BookAppointment)
			forms.POST("/contacts", h.Contact.SubmitContact)
		}
	}
	router.GET("/uploads/:filename", h.Upload.ServeUpload)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(opts.Tokens))
	if opts.Cache != nil {
		admin.Use(middleware.InvalidatePublicCache(opts.Cache))
	}

	// Actors can be listed by any authenticated user.
	admin.GET("/actors", h.Actor.GetActors)

	staff := admin.Group("")
	staff.Use(middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
	{
		hubs := staff.Group("/hubs")
		{
			hubs.GET("", h.Hub.GetHubs)
			hubs.POST("", h.Hub.CreateHub)
			hubs.GET("/:id", h.Hub.GetHub)
			hubs.PUT("/:id", h.Hub.UpdateHub)
			hubs.PATCH("/:id", h.Hub.PatchHub)
			hubs.DELETE("/:id", h.Hub.DeleteHub)
		}

		actors := staff.Group("/actors")
		{
			actors.POST("", h.Actor.CreateActor)
			actors.GET("/:id", h.Actor.GetActor)
			actors.PUT("/:id", h.Actor.UpdateActor)
			actors.PATCH("/:id", h.Actor.PatchActor)
			actors.DELETE("/:id", h.Actor.DeleteActor)
		}

		appointments := staff.Group("/appointments")
		{
			appointments.GET("", h.Appointment.GetAppointments)
			appointments.POST("", h.Appointment.CreateAppointment)
			appointments.GET("/:id", h.Appointment.GetAppointment)
			appointments.PUT("/:id", h.Appointment.UpdateAppointment)
			appointments.PATCH("/:id", h.Appointment.PatchAppointment)
			appointments.DELETE("/:id", h.Appointment.DeleteAppointment)
		}

		contacts := staff.Group("/contacts")
		{
			contacts.GET("", h.Contact.GetContacts)
			contacts.POST("", h.Contact.CreateContact)
			contacts.GET("/:id", h.Contact.GetContact)
			contacts.PUT("/:id", h.Contact.UpdateContact)
			contacts.PATCH("/:id", h.Contact.PatchContact)
			contacts.DELETE("/:id", h.Contact.DeleteContact)
		}

		blog := staff.Group("/blog")
		{
			blog.GET("/posts", h.BlogPost.GetPosts)
			blog.POST("/posts", h.BlogPost.CreatePost)
			blog.GET("/posts/:id", h.BlogPost.GetPost)
			blog.PUT("/posts/:id", h.BlogPost.UpdatePost)
			blog.PATCH("/posts/:id", h.BlogPost.PatchPost)
			blog.DELETE("/posts/:id", h.BlogPost.DeletePost)

			blog.GET("/categories", h.Category.GetCategories)
			blog.POST("/categories", h.Category.CreateCategory)
			blog.GET("/categories/:id", h.Category.GetCategory)
			blog.PUT("/categories/:id", h.Category.UpdateCategory)
			blog.DELETE("/categories/:id", h.Category.DeleteCategory)

			blog.GET("/tags", h.Tag.GetTags)
			blog.POST("/tags", h.Tag.CreateTag)
			blog.GET("/tags/:id", h.Tag.GetTag)
			blog.PUT("/tags/:id", h.Tag.UpdateTag)
			blog.DELETE("/tags/:id", h.Tag.DeleteTag)
		}

		settings := staff.Group("/settings")
		{
			settings.GET("", h.Setting.GetSettings)
			settings.GET("/:key", h.Setting.GetSetting)
			settings.PUT("/:key", h.Setting.PutSetting)
			settings.DELETE("/:key", h.Setting.DeleteSetting)
		}

		staff.GET("/users", h.Auth.GetUsers)
		staff.POST("/users", h.Auth.CreateUser)
		staff.GET("/stats", h.System.GetStats)
		staff.POST("/upload", h.Upload.Upload)
		staff.GET("/export", h.Transfer.Export)
		staff.POST("/import-data", h.Transfer.Import)
	}
}
