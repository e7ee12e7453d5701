// Package judgment keeps the append-only audit trail of classification
// decisions. The log is independent of the schedule store and bounded to
// the most recent entries, oldest evicted first.
package judgment

import (
	"context"
	"fmt"

	"slotboard/models"
)

// Log records classification decisions for audit and debugging.
type Log interface {
	Append(ctx context.Context, entry models.JudgmentEntry) error
	List(ctx context.Context) ([]models.JudgmentEntry, error)
	Clear(ctx context.Context) (int, error)
}

// FormatEntry renders one entry as the single-line display format used
// by the admin surface and the text export.
func FormatEntry(e models.JudgmentEntry) string {
	ts := e.Timestamp.Format("2006-01-02 15:04:05")
	switch e.Action {
	case models.ActionBooking:
		return fmt.Sprintf("%s 📅 BOOKING: %s | %s %s | 信頼度:%.2f", ts, e.CustomerName, e.Date, e.TimeRange, e.Confidence)
	case models.ActionCancellation:
		return fmt.Sprintf("%s ❌ CANCELLATION: %s | %s %s | 信頼度:%.2f", ts, e.CustomerName, e.Date, e.TimeRange, e.Confidence)
	default:
		return fmt.Sprintf("%s 📝 %s", ts, e.Note)
	}
}
