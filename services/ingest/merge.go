// Package ingest applies normalized reservation events to the schedule
// store. Events arrive from independent, unordered, at-least-once
// sources; the merge engine deduplicates bookings and resolves
// cancellations against prior bookings under incomplete keys.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	scheduleRepo "slotboard/database/repository/schedule"
	"slotboard/models"
	"slotboard/services/judgment"
	"slotboard/utils"
)

// DuplicateRule selects the key used to detect duplicate bookings.
type DuplicateRule int

const (
	// DupStartCustomer treats (start, customer_name) as the identity.
	DupStartCustomer DuplicateRule = iota
	// DupStartEndCustomer additionally compares the end time.
	DupStartEndCustomer
)

// CancelRule selects the key used to match a cancellation to a slot.
type CancelRule int

const (
	// CancelStartCustomer matches on (start, customer_name).
	CancelStartCustomer CancelRule = iota
	// CancelStartType matches on (start, type); the coarser key used by
	// webhook batches that carry no reliable customer name.
	CancelStartType
)

// MergePolicy bundles the dedup and cancellation keys in effect for one
// connector. Policies are configuration, not per-call-site forks.
type MergePolicy struct {
	Duplicate DuplicateRule
	Cancel    CancelRule
}

// PolicyFor returns the merge policy a connector's events are applied
// under.
func PolicyFor(src models.Source) MergePolicy {
	if src == models.SourceWebhook {
		return MergePolicy{Duplicate: DupStartEndCustomer, Cancel: CancelStartType}
	}
	return MergePolicy{Duplicate: DupStartCustomer, Cancel: CancelStartCustomer}
}

// Engine merges reservation events into a schedule store. The scan plus
// append/remove of a single application is a critical section; Apply
// serializes on the engine so two concurrent bookings cannot both pass
// the duplicate check.
type Engine struct {
	Repo     scheduleRepo.ScheduleRepository
	Judgment judgment.Log

	mu sync.Mutex
}

func NewEngine(repo scheduleRepo.ScheduleRepository, log judgment.Log) *Engine {
	return &Engine{Repo: repo, Judgment: log}
}

// Apply merges one event and reports the named outcome. Merge conflicts
// (duplicate bookings, cancellations with no match) are outcomes, never
// errors; the error return is reserved for storage failures.
func (e *Engine) Apply(ctx context.Context, event models.ReservationEvent, policy MergePolicy) (models.Outcome, error) {
	if err := event.Validate(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	slots, err := e.Repo.GetByDate(ctx, event.Date)
	if err != nil {
		return "", err
	}

	var outcome models.Outcome
	switch event.Action {
	case models.ActionBooking:
		outcome, err = e.applyBooking(ctx, event, slots, policy.Duplicate)
	case models.ActionCancellation:
		outcome, err = e.applyCancellation(ctx, event, slots, policy.Cancel)
	}
	if err != nil {
		return "", err
	}

	e.record(ctx, event, outcome)
	return outcome, nil
}

func (e *Engine) applyBooking(ctx context.Context, event models.ReservationEvent, slots []models.Slot, rule DuplicateRule) (models.Outcome, error) {
	sameStart := 0
	for _, slot := range slots {
		if slot.Start == event.Start {
			sameStart++
		}
		if isDuplicate(slot, event, rule) {
			return models.OutcomeSkippedDuplicate, nil
		}
	}

	slot := models.Slot{
		ID:           uuid.New().String(),
		Start:        event.Start,
		End:          event.End,
		Type:         event.Type,
		Source:       event.Source,
		CustomerName: event.CustomerName,
		Studio:       event.Studio,
		Group:        sameStart + 1,
		Sender:       event.Sender,
		Subject:      event.Subject,
		MessageID:    event.MessageID,
		Confidence:   event.Confidence,
	}
	if slot.Type == "" {
		slot.Type = models.SlotTypeOrdinary
	}
	if slot.CustomerName == "" {
		slot.CustomerName = utils.UnknownName
	}
	if err := e.Repo.Append(ctx, event.Date, slot); err != nil {
		return "", err
	}
	return models.OutcomeAdded, nil
}

// applyCancellation removes the first slot in insertion order whose key
// matches. A miss is a reported condition, not an error: at-least-once
// delivery means the same cancellation may arrive again after the slot
// is already gone.
func (e *Engine) applyCancellation(ctx context.Context, event models.ReservationEvent, slots []models.Slot, rule CancelRule) (models.Outcome, error) {
	for i, slot := range slots {
		if !cancelMatches(slot, event, rule) {
			continue
		}
		if _, err := e.Repo.RemoveAt(ctx, event.Date, i); err != nil {
			return "", err
		}
		return models.OutcomeCancelled, nil
	}
	return models.OutcomeCancelNotFound, nil
}

func isDuplicate(slot models.Slot, event models.ReservationEvent, rule DuplicateRule) bool {
	if slot.Start != event.Start || slot.CustomerName != event.CustomerName {
		return false
	}
	if rule == DupStartEndCustomer && slot.End != event.End {
		return false
	}
	return true
}

func cancelMatches(slot models.Slot, event models.ReservationEvent, rule CancelRule) bool {
	if slot.Start != event.Start {
		return false
	}
	if rule == CancelStartType {
		return slot.Type == event.Type
	}
	return slot.CustomerName == event.CustomerName
}

// record appends the application to the judgment log. Log failures are
// not merge failures.
func (e *Engine) record(ctx context.Context, event models.ReservationEvent, outcome models.Outcome) {
	if e.Judgment == nil {
		return
	}
	timeRange := event.Start
	if event.End != "" {
		timeRange = event.Start + "-" + event.End
	}
	entry := models.JudgmentEntry{
		Timestamp:    time.Now(),
		Action:       event.Action,
		Date:         event.Date,
		TimeRange:    timeRange,
		CustomerName: event.CustomerName,
		Confidence:   event.Confidence,
		Note:         string(outcome),
	}
	if err := e.Judgment.Append(ctx, entry); err != nil {
		utils.GetLogger().Warn("ingest: judgment log append failed", zap.Error(err))
	}
}

// RecordDrop logs a detected event that was discarded before merging,
// so the judgment trail shows every classification, not only the ones
// that reached the store. The entry carries no action and renders as a
// note.
func (e *Engine) RecordDrop(ctx context.Context, event models.ReservationEvent, reason string) {
	if e.Judgment == nil {
		return
	}
	timeRange := event.Start
	if event.End != "" {
		timeRange = event.Start + "-" + event.End
	}
	entry := models.JudgmentEntry{
		Timestamp:  time.Now(),
		Date:       event.Date,
		TimeRange:  timeRange,
		Confidence: event.Confidence,
		Note: fmt.Sprintf("SKIPPED: %s | %s %s | 信頼度:%.2f (%s)",
			event.CustomerName, event.Date, timeRange, event.Confidence, reason),
	}
	if err := e.Judgment.Append(ctx, entry); err != nil {
		utils.GetLogger().Warn("ingest: judgment log append failed", zap.Error(err))
	}
}

// RemoveSlot removes the slot at the given position for a date without
// cancellation matching. Operator-facing; shares the merge critical
// section so it cannot race a concurrent scan.
func (e *Engine) RemoveSlot(ctx context.Context, date string, index int) (models.Slot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Repo.RemoveAt(ctx, date, index)
}

// ApplyBatch applies events one at a time in the order received and
// accumulates per-outcome counts. Each event's effect is independent and
// already committed; a later failure never rolls back earlier ones.
func (e *Engine) ApplyBatch(ctx context.Context, events []models.ReservationEvent, policy MergePolicy) (models.SyncSummary, error) {
	var summary models.SyncSummary
	var lastErr error

	summary.TotalFound = len(events)
	for _, event := range events {
		outcome, err := e.Apply(ctx, event, policy)
		if err != nil {
			lastErr = err
			utils.GetLogger().Warn("ingest: apply failed",
				zap.String("date", event.Date),
				zap.String("start", event.Start),
				zap.Error(err))
			continue
		}
		summary.Record(outcome)
	}
	return summary, lastErr
}
