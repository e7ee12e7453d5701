package ingest

import (
	"fmt"
	"strings"
	"time"

	"slotboard/models"
	"slotboard/utils"
)

// The normalizer maps connector-specific shapes into the canonical
// reservation event. It renames and defaults fields only; no business
// logic lives here.

// FromMail attaches mail source metadata to a classified event.
func FromMail(event models.ReservationEvent, msg models.MailMessage) models.ReservationEvent {
	event.Source = models.SourceMail
	event.MessageID = msg.MessageID
	event.Sender = msg.Sender
	event.Subject = truncateRunes(msg.Subject, utils.SubjectPreviewLimit)
	return event
}

// FromManual builds a full-confidence event from operator input.
func FromManual(action models.Action, date, start, end, customerName, slotType string) (models.ReservationEvent, error) {
	if customerName == "" {
		customerName = "手動入力"
	}
	if slotType == "" {
		slotType = models.SlotTypeOrdinary
	}
	event := models.ReservationEvent{
		Action:       action,
		Date:         date,
		Start:        start,
		End:          end,
		CustomerName: customerName,
		Type:         slotType,
		Source:       models.SourceManual,
		Confidence:   1.0,
	}
	return event, event.Validate()
}

// FromWebhook maps one webhook batch item into an event.
func FromWebhook(w models.WebhookEvent) (models.ReservationEvent, error) {
	action := models.ActionBooking
	if w.IsCancellation {
		action = models.ActionCancellation
	}
	slotType := w.Type
	if slotType == "" {
		slotType = models.SlotTypeOrdinary
	}
	customer := w.CustomerName
	if customer == "" {
		customer = utils.UnknownName
	}
	event := models.ReservationEvent{
		Action:       action,
		Date:         w.Date,
		Start:        w.Start,
		End:          w.End,
		CustomerName: customer,
		Type:         slotType,
		Source:       models.SourceWebhook,
		Confidence:   1.0,
		MessageID:    w.MessageID,
	}
	return event, event.Validate()
}

// FromPortal maps a scraped portal row into a booking event. The portal
// resolves the action upstream, so records always merge as bookings;
// rows listing a single time get an end one hour later.
func FromPortal(rec models.PortalRecord) (models.ReservationEvent, error) {
	end := rec.End
	if end == "" {
		end = addHour(rec.Start)
	}
	customer := rec.CustomerName
	if customer == "" {
		customer = utils.UnknownName
	}
	event := models.ReservationEvent{
		Action:       models.ActionBooking,
		Date:         rec.Date,
		Start:        rec.Start,
		End:          end,
		CustomerName: customer,
		Type:         PortalSlotType(rec),
		Source:       models.SourcePortal,
		Confidence:   1.0,
	}
	return event, event.Validate()
}

// PortalSlotType maps a portal row's status text to a slot type.
func PortalSlotType(rec models.PortalRecord) string {
	if rec.Type != "" {
		return rec.Type
	}
	status := rec.Status
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(status, "ブロック") || strings.Contains(lower, "block"):
		return models.SlotTypeBlock
	case strings.Contains(status, "貸切") || strings.Contains(lower, "charter"):
		return models.SlotTypeCharter
	case strings.Contains(status, "予約") || strings.Contains(lower, "booking"):
		return models.SlotTypeOrdinary
	default:
		return models.SlotTypeUnknown
	}
}

func addHour(start string) string {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return start
	}
	return t.Add(time.Hour).Format("15:04")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return fmt.Sprintf("%s...", string(runes[:limit]))
}
