package models

// Outcome names the result of merging one reservation event.
type Outcome string

const (
	OutcomeAdded            Outcome = "added"
	OutcomeCancelled        Outcome = "cancelled"
	OutcomeSkippedDuplicate Outcome = "skipped_duplicate"
	OutcomeCancelNotFound   Outcome = "cancel_not_found"
)

// SyncSummary accumulates per-outcome counts for one sync run or batch.
type SyncSummary struct {
	Added      int `json:"added"`
	Cancelled  int `json:"cancelled"`
	Skipped    int `json:"skipped"`
	NotFound   int `json:"not_found"`
	TotalFound int `json:"total_found"`
}

// Record folds one outcome into the summary.
func (s *SyncSummary) Record(o Outcome) {
	switch o {
	case OutcomeAdded:
		s.Added++
	case OutcomeCancelled:
		s.Cancelled++
	case OutcomeSkippedDuplicate:
		s.Skipped++
	case OutcomeCancelNotFound:
		s.NotFound++
	}
}
