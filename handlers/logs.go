package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotboard/models"
	"slotboard/services/judgment"
)

// JudgmentLogHandler exposes the classification audit trail.
type JudgmentLogHandler struct {
	Log    judgment.Log
	Logger *zap.Logger
}

func NewJudgmentLogHandler(log judgment.Log, logger *zap.Logger) *JudgmentLogHandler {
	return &JudgmentLogHandler{Log: log, Logger: logger}
}

// GetLogs returns the retained entries as formatted display lines, oldest
// first.
func (h *JudgmentLogHandler) GetLogs(c *gin.Context) {
	entries, err := h.Log.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("judgment log list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read logs"})
		return
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, judgment.FormatEntry(e))
	}
	c.JSON(http.StatusOK, gin.H{"logs": lines, "count": len(lines)})
}

// AddLogEntry appends an operator note to the trail.
func (h *JudgmentLogHandler) AddLogEntry(c *gin.Context) {
	var input struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data format"})
		return
	}
	entry := models.JudgmentEntry{
		Timestamp: time.Now(),
		Note:      fmt.Sprintf("MANUAL: %s (管理者入力)", input.Message),
	}
	if err := h.Log.Append(c.Request.Context(), entry); err != nil {
		h.Logger.Error("judgment log append failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ログを追加しました"})
}

// ClearLogs drops all retained entries, then logs the clear itself so the
// trail records who wiped it and when.
func (h *JudgmentLogHandler) ClearLogs(c *gin.Context) {
	removed, err := h.Log.Clear(c.Request.Context())
	if err != nil {
		h.Logger.Error("judgment log clear failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear logs"})
		return
	}
	entry := models.JudgmentEntry{
		Timestamp: time.Now(),
		Note:      fmt.Sprintf("CLEAR: %d件のログを削除しました", removed),
	}
	if err := h.Log.Append(c.Request.Context(), entry); err != nil {
		h.Logger.Warn("judgment log clear marker failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cleared": removed, "message": "ログをクリアしました"})
}

// ExportLogs streams the trail as a plain-text attachment. The export is
// itself recorded as an entry.
func (h *JudgmentLogHandler) ExportLogs(c *gin.Context) {
	entries, err := h.Log.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("judgment log export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read logs"})
		return
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(judgment.FormatEntry(e))
		b.WriteString("\n")
	}
	marker := models.JudgmentEntry{
		Timestamp: time.Now(),
		Note:      fmt.Sprintf("EXPORT: %d件のログをエクスポートしました", len(entries)),
	}
	if err := h.Log.Append(c.Request.Context(), marker); err != nil {
		h.Logger.Warn("judgment log export marker failed", zap.Error(err))
	}
	filename := fmt.Sprintf("judgment_logs_%s.txt", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}
