// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"errors"

	"slotboard/models"
)

// ErrSlotNotFound is returned when a removal targets a position that
// does not exist for the date.
var ErrSlotNotFound = errors.New("schedule: slot not found")

// ScheduleRepository is the backing store for merged slots. Insertion
// order per date is preserved; all mutation funnels through the merge
// engine, which serializes access.
type ScheduleRepository interface {
	GetAll(ctx context.Context) (models.Schedule, error)
	GetByDate(ctx context.Context, date string) ([]models.Slot, error)
	Append(ctx context.Context, date string, slot models.Slot) error
	RemoveAt(ctx context.Context, date string, index int) (models.Slot, error)
}
