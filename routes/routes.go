package routes

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Karthik0956A/event-rsvp-backend/config"
	"github.com/Karthik0956A/event-rsvp-backend/database"
	"github.com/Karthik0956A/event-rsvp-backend/internal/auditlog"
	"github.com/Karthik0956A/event-rsvp-backend/internal/auth"
	"github.com/Karthik0956A/event-rsvp-backend/internal/event"
	"github.com/Karthik0956A/event-rsvp-backend/internal/inventory"
	"github.com/Karthik0956A/event-rsvp-backend/internal/notification"
	"github.com/Karthik0956A/event-rsvp-backend/internal/participant"
	"github.com/Karthik0956A/event-rsvp-backend/internal/reports"
	"github.com/Karthik0956A/event-rsvp-backend/middleware"

	_ "github.com/Karthik0956A/event-rsvp-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires repositories, services and handlers and registers all routes.
func Setup(r *gin.Engine, cfg *config.Config) {
	db := database.DB

	// ===========================
	// 🛠 Repositories
	authRepo := auth.NewRepository(db)
	auditRepo := auditlog.NewRepository(db)
	eventRepo := event.NewRepository(db)
	participantRepo := participant.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	inventoryRepo := inventory.NewRepository(db)
	reportsRepo := reports.NewRepository(db)

	// ===========================
	// 🛠 Services
	auditSvc := auditlog.NewService(auditRepo)
	authSvc := auth.NewService(authRepo, cfg)
	eventSvc := event.NewService(eventRepo, auditSvc)
	participantSvc := participant.NewService(participantRepo, auditSvc)
	notificationSvc := notification.NewService(notificationRepo)
	inventorySvc := inventory.NewService(inventoryRepo, auditSvc, cfg)
	reportsSvc := reports.NewService(reportsRepo, reports.NewExporter(), auditSvc)

	// Kafka consumer feeding in-app notifications
	notification.StartKafkaConsumer(context.Background(), notificationSvc, "event-rsvp-notifications")

	// ===========================
	// 🛠 Handlers
	authHandler := auth.NewHandler(authSvc)
	auditHandler := auditlog.NewHandler(auditSvc)
	eventHandler := event.NewHandler(eventSvc)
	participantHandler := participant.NewHandler(participantSvc)
	notificationHandler := notification.NewHandler(notificationSvc)
	inventoryHandler := inventory.NewHandler(inventorySvc)
	reportsHandler := reports.NewHandler(reportsSvc)

	// ===========================
	// 🎯 Public routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.Refresh)
		authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
		authRoutes.POST("/reset-password", authHandler.ResetPassword)
	}

	// ===========================
	// 🎯 Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.GET("", eventHandler.ListEvents)
		eventRoutes.GET("/stats", eventHandler.GetEventStats)
		eventRoutes.GET("/:id", eventHandler.GetEventByID)
		eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
		eventRoutes.DELETE("/:id", eventHandler.DeleteEvent)
	}

	participantRoutes := protected.Group("/participants")
	{
		participantRoutes.POST("", participantHandler.CreateRSVP)
		participantRoutes.GET("/event/:eventId", participantHandler.GetParticipantsByEvent)
		participantRoutes.GET("/my-rsvps", participantHandler.GetMyRSVPs)
		participantRoutes.DELETE("/:id", participantHandler.CancelRSVP)
		participantRoutes.DELETE("/event/:eventId/user/:userId", participantHandler.CancelRSVPByEventAndUser)
	}

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.GET("", notificationHandler.ListNotifications)
		notificationRoutes.PATCH("/:id/read", notificationHandler.MarkAsRead)
	}

	inventoryRoutes := protected.Group("/inventory")
	{
		inventoryRoutes.POST("", inventoryHandler.CreateItem)
		inventoryRoutes.GET("", inventoryHandler.ListItems)
		inventoryRoutes.GET("/low-stock", inventoryHandler.GetLowStockItems)
		inventoryRoutes.GET("/:id", inventoryHandler.GetItem)
		inventoryRoutes.PUT("/:id", inventoryHandler.UpdateItem)
		inventoryRoutes.DELETE("/:id", inventoryHandler.DeleteItem)
		inventoryRoutes.POST("/:id/adjust", inventoryHandler.AdjustStock)
	}

	reportRoutes := protected.Group("/reports")
	{
		reportRoutes.GET("/attendance/:eventId", reportsHandler.ExportAttendance)
		reportRoutes.GET("/events", reportsHandler.ExportEventSummaries)
		reportRoutes.GET("/inventory", reportsHandler.ExportInventory)
	}

	auditRoutes := protected.Group("/auditlogs")
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}
}
