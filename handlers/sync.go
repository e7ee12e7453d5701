package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotboard/models"
	"slotboard/services/ingest"
)

// SyncHandler triggers connector sync runs. Connector failures are
// run-level failures with zero events applied; the response carries a
// generic message only, details go to the log.
type SyncHandler struct {
	Mail   *ingest.MailSyncService
	Portal *ingest.PortalSyncService
	Logger *zap.Logger
}

func NewSyncHandler(mailSvc *ingest.MailSyncService, portalSvc *ingest.PortalSyncService, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{Mail: mailSvc, Portal: portalSvc, Logger: logger}
}

// SyncMail runs one mail ingestion pass now.
func (h *SyncHandler) SyncMail(c *gin.Context) {
	if h.Mail == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "メール連携が有効になっていません"})
		return
	}

	summary, err := h.Mail.Run(c.Request.Context())
	if err != nil {
		h.Logger.Error("mail sync failed", zap.Error(err))
		if isAuthError(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "メール認証に問題があります。管理者にお問い合わせください。"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "メール同期中にエラーが発生しました。"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("%d件の予約を追加、%d件をキャンセルしました", summary.Added, summary.Cancelled),
		"added":       summary.Added,
		"cancelled":   summary.Cancelled,
		"skipped":     summary.Skipped,
		"total_found": summary.TotalFound,
	})
}

// SyncPortal merges scraped portal rows: either the rows posted in the
// request body, or rows fetched from the configured connector for the
// requested day span.
func (h *SyncHandler) SyncPortal(c *gin.Context) {
	var input struct {
		Days    int                   `json:"days"`
		Records []models.PortalRecord `json:"records"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if h.Portal == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ポータル同期が有効になっていません"})
		return
	}

	var summary models.SyncSummary
	var err error
	if len(input.Records) > 0 {
		summary, err = h.Portal.ApplyRecords(c.Request.Context(), input.Records)
	} else {
		if h.Portal.Connector == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ポータル連携が有効になっていません"})
			return
		}
		days := input.Days
		if days <= 0 {
			days = 7
		}
		start := time.Now().Format("2006-01-02")
		end := time.Now().AddDate(0, 0, days).Format("2006-01-02")
		summary, err = h.Portal.Run(c.Request.Context(), start, end)
	}
	if err != nil {
		h.Logger.Error("portal sync failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ポータル同期中にエラーが発生しました。"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("%d件の予約を追加、%d件は重複スキップしました", summary.Added, summary.Skipped),
		"added":       summary.Added,
		"skipped":     summary.Skipped,
		"total_found": summary.TotalFound,
	})
}

func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "auth") || strings.Contains(msg, "permission") ||
		strings.Contains(msg, "credential") || strings.Contains(msg, "token")
}
