// internal/router/router.go
package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/acemark/stockops-backend/internal/config"
	"github.com/acemark/stockops-backend/internal/handlers"
	"github.com/acemark/stockops-backend/internal/middleware"
	"github.com/acemark/stockops-backend/internal/notify"
	"github.com/acemark/stockops-backend/internal/services"
	"github.com/acemark/stockops-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, notifier *notify.Notifier) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage service:", err)
	}
	catalogService := services.NewCatalogService(db)
	notificationService := services.NewNotificationService(cfg, catalogService, notifier)

	authService := services.NewAuthService(db, cfg)
	submissionService := services.NewSubmissionService(db, storageService)
	reviewService := services.NewReviewService(db)
	dashboardService := services.NewDashboardService(db)
	feedbackService := services.NewFeedbackService(db, storageService, notificationService, cfg.WhatsApp.LowRatingThreshold)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, notificationService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
		}

		// Field entry form (public, driven by the party query identity)
		parties := v1.Group("/parties")
		{
			parties.GET("/:party/rows", catalogHandler.GetRows)
			parties.POST("/:party/submissions", middleware.SubmitRateLimit(), submissionHandler.SubmitBatch)

			// Back-office party detail
			parties.GET("/:party/overview", middleware.AuthRequired(), dashboardHandler.GetPartyOverview)
		}

		// Party-facing review page (keyed by batch UUID, no login)
		review := v1.Group("/review")
		{
			review.GET("", reviewHandler.GetBatch)
			review.POST("/approve", reviewHandler.ApproveBatch)
			review.DELETE("/submissions/:id", reviewHandler.DeleteSubmission)
		}

		// Feedback pages (public)
		feedback := v1.Group("/feedback")
		{
			feedback.POST("", middleware.FeedbackRateLimit(), feedbackHandler.SubmitFeedback)
			feedback.GET("", middleware.AuthRequired(), middleware.AdminRequired(), feedbackHandler.ListFeedback)
		}

		// Back-office dashboard
		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.AuthRequired())
		{
			dashboard.GET("", dashboardHandler.GetOverview)
			dashboard.GET("/deliveries", dashboardHandler.GetPendingDeliveries)
		}

		submissions := v1.Group("/submissions")
		submissions.Use(middleware.AuthRequired())
		{
			submissions.POST("/:id/deliver", dashboardHandler.MarkDelivered)
			submissions.GET("/:id/links", dashboardHandler.GetSubmissionLinks)
		}
	}

	return r
}
