package models

import "time"

// JudgmentEntry is one audit record of a classification decision.
type JudgmentEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	Action       Action    `json:"action"`
	Date         string    `json:"date"`
	TimeRange    string    `json:"time_range"`
	CustomerName string    `json:"customer_name"`
	Confidence   float64   `json:"confidence"`
	Note         string    `json:"note,omitempty"`
}
