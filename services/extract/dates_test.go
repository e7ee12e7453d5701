package extract

import (
	"fmt"
	"testing"
	"time"
)

func TestDateFormats(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"kanji", "日時：2026年9月15日 14:00", "2026-09-15"},
		{"kanji padded", "2026年12月03日のご予約", "2026-12-03"},
		{"slash", "予約日 2026/9/5", "2026-09-05"},
		{"hyphen", "2026-09-15 のご予約", "2026-09-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.text)
			if !ok {
				t.Fatalf("Date(%q): no match", tt.text)
			}
			if got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDateShortFormAssumesCurrentYear(t *testing.T) {
	got, ok := Date("予約日: 9/15")
	if !ok {
		t.Fatal("short date did not match")
	}
	want := fmt.Sprintf("%04d-09-15", time.Now().Year())
	if got != want {
		t.Errorf("Date = %q, want %q", got, want)
	}
}

func TestDateFullFormWinsOverShort(t *testing.T) {
	got, ok := Date("9/1 変更分 2026年9月15日")
	if !ok {
		t.Fatal("no date matched")
	}
	if got != "2026-09-15" {
		t.Errorf("Date = %q, want the year-bearing form", got)
	}
}

func TestDateNoMatch(t *testing.T) {
	tests := []string{
		"来週の予定についてのご連絡",
		"14:00-15:30",          // time range digits are not a date
		"10:30-11:45 にお越しください", // colon-adjacent digits rejected
		"99/99",                // impossible month and day
		"0/15",
		"12/40",
	}
	for _, text := range tests {
		if d, ok := Date(text); ok {
			t.Errorf("Date(%q) = %q, want no match", text, d)
		}
	}
}

func TestDateShortFormSkipsTimeRange(t *testing.T) {
	// A real short date later in the text still matches even when a
	// time range precedes it.
	got, ok := Date("14:00-15:30 予約日 9/15")
	if !ok {
		t.Fatal("short date after time range did not match")
	}
	want := fmt.Sprintf("%04d-09-15", time.Now().Year())
	if got != want {
		t.Errorf("Date = %q, want %q", got, want)
	}
}

func TestHasStructuredDate(t *testing.T) {
	if !HasStructuredDate("2026年9月15日") {
		t.Error("kanji date should count as structured")
	}
	if HasStructuredDate("9/15にお待ちしております") {
		t.Error("yearless date should not count as structured")
	}
}
