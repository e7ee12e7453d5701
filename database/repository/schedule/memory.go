// File: database/repository/schedule/memory.go
package scheduleRepo

import (
	"context"
	"sync"

	"slotboard/models"
)

// memoryScheduleRepo keeps the schedule in process memory. It is the
// default backend; the process starts empty.
type memoryScheduleRepo struct {
	mu    sync.RWMutex
	slots models.Schedule
}

// NewMemoryScheduleRepo constructs an empty in-memory ScheduleRepository.
func NewMemoryScheduleRepo() ScheduleRepository {
	return &memoryScheduleRepo{slots: make(models.Schedule)}
}

func (r *memoryScheduleRepo) GetAll(ctx context.Context) (models.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(models.Schedule, len(r.slots))
	for date, slots := range r.slots {
		copied := make([]models.Slot, len(slots))
		copy(copied, slots)
		out[date] = copied
	}
	return out, nil
}

func (r *memoryScheduleRepo) GetByDate(ctx context.Context, date string) ([]models.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := r.slots[date]
	copied := make([]models.Slot, len(slots))
	copy(copied, slots)
	return copied, nil
}

func (r *memoryScheduleRepo) Append(ctx context.Context, date string, slot models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[date] = append(r.slots[date], slot)
	return nil
}

func (r *memoryScheduleRepo) RemoveAt(ctx context.Context, date string, index int) (models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots := r.slots[date]
	if index < 0 || index >= len(slots) {
		return models.Slot{}, ErrSlotNotFound
	}
	removed := slots[index]
	r.slots[date] = append(slots[:index], slots[index+1:]...)
	if len(r.slots[date]) == 0 {
		delete(r.slots, date)
	}
	return removed, nil
}
