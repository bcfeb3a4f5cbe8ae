package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mfadhli/eventra/config"
	"github.com/mfadhli/eventra/internal/handlers"
	"github.com/mfadhli/eventra/internal/middleware"
	"github.com/mfadhli/eventra/internal/storage/postgres"
	"github.com/mfadhli/eventra/internal/ticketing"
)

func Start() error {
	slog.SetDefault(config.NewLogger())

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	service := ticketing.NewService(postgres.NewStore(db))

	r := gin.Default()

	setupRoutes(r, db, service)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("server listening", "port", port)
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, service *ticketing.Service) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.TicketingMiddleware(service))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id/tickets", handlers.SetTickets)
			eventProtected.PUT("/:id/publish", handlers.PublishEvent)
			eventProtected.POST("/:id/bookings", handlers.CreateBooking)
		}

		bookings := protected.Group("/bookings")
		{
			bookings.GET("", handlers.ListMyBookings)
			bookings.GET("/:id/qr", handlers.GenerateBookingQR)
			bookings.POST("/validate", handlers.ValidateBooking)
		}

		protected.GET("/profile", handlers.GetProfile)
	}
}
