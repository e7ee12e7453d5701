package judgment

import (
	"context"
	"sync"

	"slotboard/models"
	"slotboard/utils"
)

type memoryLog struct {
	mu      sync.Mutex
	entries []models.JudgmentEntry
	limit   int
}

// NewMemoryLog constructs an in-process judgment log bounded to the
// standard entry limit.
func NewMemoryLog() Log {
	return &memoryLog{limit: utils.JudgmentLogLimit}
}

func (l *memoryLog) Append(ctx context.Context, entry models.JudgmentEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
	return nil
}

func (l *memoryLog) List(ctx context.Context) ([]models.JudgmentEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.JudgmentEntry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

func (l *memoryLog) Clear(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.entries)
	l.entries = nil
	return n, nil
}
