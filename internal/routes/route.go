package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventrentals/internal/container"
	"github.com/joshua-takyi/eventrentals/internal/handlers"
	"github.com/joshua-takyi/eventrentals/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     c.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	r.GET("/health", handlers.Health(c.Stores))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cookie := handlers.CookieConfig{
		Secure: c.Config.IsProduction(),
		TTL:    c.Config.TokenTTL,
	}

	api := r.Group("/api")
	{
		// public routes
		api.GET("/health", handlers.Health(c.Stores))
		api.GET("/items", handlers.ListItems(c.ItemService))
		api.GET("/items/:id", handlers.GetItem(c.ItemService))
		api.GET("/packages", handlers.ListPackages(c.PackageService))
		api.GET("/packages/:id", handlers.GetPackage(c.PackageService))
		api.POST("/bookings", handlers.CreateBooking(c.BookingService))
		api.POST("/messages", handlers.CreateMessage(c.MessageService))
		api.GET("/testimonials", handlers.ListTestimonials(c.TestimonialService))
		api.POST("/testimonials", handlers.CreateTestimonial(c.TestimonialService))
		api.GET("/settings", handlers.GetSettings(c.SettingsService))
		api.POST("/auth", handlers.Login(c.UserService, cookie))
		api.DELETE("/auth", handlers.Logout(cookie))
	}

	protected := api.Group("/")
	protected.Use(middleware.AdminAuth(c.Config.JWTSecret, c.Logger))
	{
		protected.PUT("/auth", handlers.ChangePassword(c.UserService))

		protected.GET("/bookings", handlers.ListBookings(c.BookingService))
		protected.GET("/bookings/:id", handlers.GetBooking(c.BookingService))
		protected.PUT("/bookings/:id", handlers.UpdateBooking(c.BookingService))
		protected.DELETE("/bookings/:id", handlers.DeleteBooking(c.BookingService))

		protected.POST("/items", handlers.CreateItem(c.ItemService))
		protected.PUT("/items/:id", handlers.UpdateItem(c.ItemService))
		protected.DELETE("/items/:id", handlers.DeleteItem(c.ItemService))

		protected.POST("/packages", handlers.CreatePackage(c.PackageService))
		protected.PUT("/packages/:id", handlers.UpdatePackage(c.PackageService))
		protected.DELETE("/packages/:id", handlers.DeletePackage(c.PackageService))

		protected.GET("/messages", handlers.ListMessages(c.MessageService))
		protected.PATCH("/messages", handlers.MarkMessageRead(c.MessageService))
		protected.DELETE("/messages/:id", handlers.DeleteMessage(c.MessageService))

		protected.DELETE("/testimonials/:id", handlers.DeleteTestimonial(c.TestimonialService))

		protected.POST("/settings", handlers.SaveSettings(c.SettingsService))
	}

	admin := protected.Group("/")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", handlers.ListUsers(c.UserService))
		admin.POST("/users", handlers.CreateUser(c.UserService))
		admin.GET("/users/:id", handlers.GetUser(c.UserService))
		admin.PUT("/users/:id", handlers.UpdateUser(c.UserService))
		admin.DELETE("/users/:id", handlers.DeleteUser(c.UserService))

		admin.GET("/admin/backup", handlers.ExportBackup(c.BackupService))
		admin.POST("/admin/backup", handlers.ImportBackup(c.BackupService))
		admin.DELETE("/admin/reset", handlers.ResetBookings(c.BackupService))
		admin.GET("/admin/store-events", handlers.ListStoreEvents(c.BackupService))
	}

	return r
}
