package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	scheduleRepo "slotboard/database/repository/schedule"
	"slotboard/models"
	"slotboard/services/ingest"
	"slotboard/utils"
)

// ScheduleHandler serves the merged schedule and applies manual events.
type ScheduleHandler struct {
	Repo   scheduleRepo.ScheduleRepository
	Engine *ingest.Engine
	Logger *zap.Logger
}

func NewScheduleHandler(repo scheduleRepo.ScheduleRepository, engine *ingest.Engine, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Repo: repo, Engine: engine, Logger: logger}
}

// GetReservations returns the whole schedule keyed by date.
func (h *ScheduleHandler) GetReservations(c *gin.Context) {
	schedule, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load reservations", err.Error())
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// GetReservationsByDate returns the ordered slot list for one date.
func (h *ScheduleHandler) GetReservationsByDate(c *gin.Context) {
	date := c.Param("date")
	slots, err := h.Repo.GetByDate(c.Request.Context(), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load reservations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "reservations": slots})
}

// GetDetailedReservations returns the flattened admin view sorted by
// date then start time.
func (h *ScheduleHandler) GetDetailedReservations(c *gin.Context) {
	schedule, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load reservations", err.Error())
		return
	}

	var detailed []models.DetailedSlot
	for date, slots := range schedule {
		for _, slot := range slots {
			detailed = append(detailed, models.DetailedSlot{
				Date:          date,
				Start:         slot.Start,
				End:           slot.End,
				Type:          slot.Type,
				TypeDisplay:   models.TypeDisplay(slot.Type),
				Group:         slot.Group,
				Source:        slot.Source,
				SourceDisplay: models.SourceDisplay(slot.Source),
				Sender:        slot.Sender,
				Subject:       slot.Subject,
				MessageID:     slot.MessageID,
				CustomerName:  slot.CustomerName,
			})
		}
	}
	sort.Slice(detailed, func(i, j int) bool {
		if detailed[i].Date != detailed[j].Date {
			return detailed[i].Date < detailed[j].Date
		}
		return detailed[i].Start < detailed[j].Start
	})

	c.JSON(http.StatusOK, gin.H{
		"reservations": detailed,
		"total_count":  len(detailed),
	})
}

// AddReservation applies one manually entered event.
func (h *ScheduleHandler) AddReservation(c *gin.Context) {
	var input struct {
		Action       string `json:"action"`
		Date         string `json:"date" binding:"required"`
		Start        string `json:"start" binding:"required"`
		End          string `json:"end"`
		CustomerName string `json:"customer_name"`
		Type         string `json:"type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	action := models.Action(input.Action)
	if input.Action == "" {
		action = models.ActionBooking
	}

	event, err := ingest.FromManual(action, input.Date, input.Start, input.End, input.CustomerName, input.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation event", "details": err.Error()})
		return
	}

	outcome, err := h.Engine.Apply(c.Request.Context(), event, ingest.PolicyFor(models.SourceManual))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to apply reservation", err.Error())
		return
	}

	h.Logger.Info("manual event applied",
		zap.String("action", string(event.Action)),
		zap.String("date", event.Date),
		zap.String("outcome", string(outcome)))
	c.JSON(http.StatusOK, gin.H{"message": "Reservation processed", "outcome": outcome})
}

// DeleteReservation removes a slot at a position on a date.
func (h *ScheduleHandler) DeleteReservation(c *gin.Context) {
	var input struct {
		Date  string `json:"date" binding:"required"`
		Index *int   `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	removed, err := h.Engine.RemoveSlot(c.Request.Context(), input.Date, *input.Index)
	if err == scheduleRepo.ErrSlotNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete reservation", err.Error())
		return
	}

	h.Logger.Info("reservation deleted",
		zap.String("date", input.Date),
		zap.String("start", removed.Start),
		zap.String("customer", removed.CustomerName))
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted", "removed": removed})
}

// ExportReservations returns the schedule as a downloadable JSON backup.
func (h *ScheduleHandler) ExportReservations(c *gin.Context) {
	schedule, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to export reservations", err.Error())
		return
	}
	filename := fmt.Sprintf("reservations_backup_%s.json", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.JSON(http.StatusOK, schedule)
}

// ImportReservations merges a previously exported backup. Import runs
// through the merge engine so existing slots deduplicate instead of
// doubling.
func (h *ScheduleHandler) ImportReservations(c *gin.Context) {
	var backup models.Schedule
	if err := c.ShouldBindJSON(&backup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup payload", "details": err.Error()})
		return
	}

	var events []models.ReservationEvent
	for date, slots := range backup {
		for _, slot := range slots {
			source := slot.Source
			if source == "" {
				source = models.SourceManual
			}
			events = append(events, models.ReservationEvent{
				Action:       models.ActionBooking,
				Date:         date,
				Start:        slot.Start,
				End:          slot.End,
				CustomerName: slot.CustomerName,
				Studio:       slot.Studio,
				Type:         slot.Type,
				Source:       source,
				Confidence:   slot.Confidence,
				MessageID:    slot.MessageID,
				Sender:       slot.Sender,
				Subject:      slot.Subject,
			})
		}
	}

	summary, err := h.Engine.ApplyBatch(c.Request.Context(),
		events, ingest.MergePolicy{Duplicate: ingest.DupStartEndCustomer, Cancel: ingest.CancelStartCustomer})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Import completed with errors", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("%d件の予約を復元しました", summary.Added),
		"added":    summary.Added,
		"skipped":  summary.Skipped,
		"restored": summary.TotalFound,
	})
}
