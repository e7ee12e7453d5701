package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotboard/models"
	"slotboard/services/ingest"
)

// WebhookHandler accepts batches of pre-extracted events from external
// producers.
type WebhookHandler struct {
	Engine *ingest.Engine
	Logger *zap.Logger
}

func NewWebhookHandler(engine *ingest.Engine, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Engine: engine, Logger: logger}
}

// ReceiveEvents applies a webhook batch one event at a time in order.
// Partial progress stands; invalid items are skipped and counted, never
// rolled back.
func (h *WebhookHandler) ReceiveEvents(c *gin.Context) {
	var input struct {
		Reservations []models.WebhookEvent `json:"reservations" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data format", "details": err.Error()})
		return
	}

	var summary models.SyncSummary
	summary.TotalFound = len(input.Reservations)
	for _, item := range input.Reservations {
		event, err := ingest.FromWebhook(item)
		if err != nil {
			h.Logger.Debug("webhook: invalid event skipped", zap.Error(err))
			continue
		}
		outcome, err := h.Engine.Apply(c.Request.Context(), event, ingest.PolicyFor(models.SourceWebhook))
		if err != nil {
			h.Logger.Warn("webhook: merge failed", zap.String("date", event.Date), zap.Error(err))
			continue
		}
		summary.Record(outcome)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Webhook sync completed",
		"added":       summary.Added,
		"cancelled":   summary.Cancelled,
		"skipped":     summary.Skipped,
		"total_found": summary.TotalFound,
	})
}
