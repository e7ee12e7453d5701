// Package portal defines the contract of the scheduling-portal
// connector. The browser automation that logs into the portal and reads
// its admin calendar runs outside this process; whatever drives it
// delivers pre-structured records satisfying this interface, or posts
// them to the portal sync endpoint directly.
package portal

import (
	"context"

	"slotboard/models"
)

// Connector supplies scraped reservation rows for a date range
// (inclusive, YYYY-MM-DD). Fetch failures surface as a sync-run failure
// with zero events applied.
type Connector interface {
	FetchRange(ctx context.Context, startDate, endDate string) ([]models.PortalRecord, error)
}
