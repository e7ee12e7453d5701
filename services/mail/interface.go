// Package mail retrieves reservation notification messages from the
// operator's mail account. The connector supplies a finite, bounded,
// most-recent-first window of raw messages; it may return zero items,
// and an authentication failure surfaces as a sync-run failure rather
// than a per-message event.
package mail

import (
	"context"

	"slotboard/models"
)

// Connector is the mail account client the sync service depends on.
type Connector interface {
	// Fetch returns raw messages from the configured recent window.
	Fetch(ctx context.Context) ([]models.MailMessage, error)
	// Label marks a message as processed with its classified action.
	// Best-effort; failures are logged by callers, never fatal.
	Label(ctx context.Context, messageID string, action models.Action) error
}
