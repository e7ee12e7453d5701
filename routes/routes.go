package routes

import (
	"net/http"
	"slotboard/handlers"
	"slotboard/middleware"
	"slotboard/utils"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterReservationRoutes registers the schedule read and write endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.GET("", hb.Schedule.GetReservations)
		api.GET("/date/:date", hb.Schedule.GetReservationsByDate)
		api.GET("/detailed", hb.Schedule.GetDetailedReservations)

		// Mutations require the admin token.
		protected := api.Group("")
		protected.Use(middleware.AdminAuthMiddleware())
		protected.POST("", hb.Schedule.AddReservation)
		protected.POST("/delete", hb.Schedule.DeleteReservation)
		protected.GET("/export", hb.Schedule.ExportReservations)
		protected.POST("/import", hb.Schedule.ImportReservations)
	}
}

// RegisterSyncRoutes registers the on-demand ingestion endpoints.
func RegisterSyncRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sync")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.POST("/mail", hb.Sync.SyncMail)
		api.POST("/portal", hb.Sync.SyncPortal)
	}
}

// RegisterWebhookRoutes registers the external event intake endpoint. The
// webhook secret, not the admin token, guards it.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/webhook")
	{
		api.Use(middleware.WebhookAuthMiddleware())
		api.POST("/events", hb.Webhook.ReceiveEvents)
	}
}

// RegisterLogRoutes registers the judgment log endpoints.
func RegisterLogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/logs")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.GET("", hb.Logs.GetLogs)
		api.POST("", hb.Logs.AddLogEntry)
		api.POST("/clear", hb.Logs.ClearLogs)
		api.GET("/export", hb.Logs.ExportLogs)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Webhook-Secret"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterReservationRoutes(r, hb)
	RegisterSyncRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterLogRoutes(r, hb)
	RegisterHealthRoute(r)
}
