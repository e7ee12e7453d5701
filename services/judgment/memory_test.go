package judgment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"slotboard/models"
	"slotboard/utils"
)

func TestMemoryLogBound(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()

	total := utils.JudgmentLogLimit + 50
	for i := 0; i < total; i++ {
		entry := models.JudgmentEntry{
			Timestamp: time.Now(),
			Note:      fmt.Sprintf("entry %d", i),
		}
		if err := log.Append(ctx, entry); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := log.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != utils.JudgmentLogLimit {
		t.Fatalf("len = %d, want %d", len(entries), utils.JudgmentLogLimit)
	}
	// Oldest entries are evicted; the survivors keep insertion order.
	if entries[0].Note != "entry 50" {
		t.Errorf("first entry = %q, want entry 50", entries[0].Note)
	}
	if entries[len(entries)-1].Note != fmt.Sprintf("entry %d", total-1) {
		t.Errorf("last entry = %q", entries[len(entries)-1].Note)
	}
}

func TestMemoryLogClear(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := log.Append(ctx, models.JudgmentEntry{Timestamp: time.Now()}); err != nil {
			t.Fatal(err)
		}
	}
	n, err := log.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("cleared = %d, want 3", n)
	}
	entries, _ := log.List(ctx)
	if len(entries) != 0 {
		t.Errorf("entries after clear = %d", len(entries))
	}
}

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	booking := models.JudgmentEntry{
		Timestamp:    ts,
		Action:       models.ActionBooking,
		Date:         "2026-09-15",
		TimeRange:    "14:00-15:30",
		CustomerName: "田中",
		Confidence:   0.85,
	}
	got := FormatEntry(booking)
	want := "2026-09-15 10:30:00 📅 BOOKING: 田中 | 2026-09-15 14:00-15:30 | 信頼度:0.85"
	if got != want {
		t.Errorf("FormatEntry booking:\n got %q\nwant %q", got, want)
	}

	note := models.JudgmentEntry{Timestamp: ts, Note: "MANUAL: test"}
	got = FormatEntry(note)
	want = "2026-09-15 10:30:00 📝 MANUAL: test"
	if got != want {
		t.Errorf("FormatEntry note:\n got %q\nwant %q", got, want)
	}
}
