package classify

import (
	"math"
	"testing"

	"slotboard/models"
)

func testPolicy() Policy {
	return Policy{
		BrandMarkers:     []string{"HALLEL"},
		IncludeLocations: []string{"渋谷店", "shibuya"},
		ExcludeLocations: []string{"半蔵門店", "hanzomon"},
	}
}

const bookingBody = "HALLELメール\n\n田中 太郎\n\nより、ご予約をいただきました。\n\nご予約ありがとうございます。以下の内容を承りました。\n日時：2026年9月15日 14:00〜15:30\n渋谷店 STUDIO ⑥ (1)\n"

func TestClassifyBooking(t *testing.T) {
	c := New(testPolicy())
	event := c.Classify("【HALLEL】ご予約完了のお知らせ", bookingBody)
	if event == nil {
		t.Fatal("booking notification did not classify")
	}
	if event.Action != models.ActionBooking {
		t.Errorf("Action = %q, want booking", event.Action)
	}
	if event.Date != "2026-09-15" {
		t.Errorf("Date = %q", event.Date)
	}
	if event.Start != "14:00" || event.End != "15:30" {
		t.Errorf("time = %s-%s, want 14:00-15:30", event.Start, event.End)
	}
	if event.CustomerName != "田中 太郎" {
		t.Errorf("CustomerName = %q", event.CustomerName)
	}
	if event.Studio != "渋谷店 STUDIO ⑥ (1)" {
		t.Errorf("Studio = %q", event.Studio)
	}
	if event.Type != models.SlotTypeOrdinary {
		t.Errorf("Type = %q", event.Type)
	}
	if event.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want clamp at 1.0", event.Confidence)
	}
}

func TestClassifyBookingAnchorPhraseOnly(t *testing.T) {
	// Real confirmation mails often carry no other booking keyword than
	// the sentinel line itself.
	c := New(testPolicy())
	body := "渋谷店\n\n田中 様\n\nより、ご予約をいただきました。\n2025年11月02日 10:00~11:00\n"
	event := c.Classify("HALLELよりご予約確認", body)
	if event == nil {
		t.Fatal("anchor-phrase mail did not classify")
	}
	if event.Action != models.ActionBooking {
		t.Errorf("Action = %q, want booking", event.Action)
	}
	if event.Date != "2025-11-02" || event.Start != "10:00" || event.End != "11:00" {
		t.Errorf("fields = %s %s-%s", event.Date, event.Start, event.End)
	}
	if event.CustomerName != "田中" {
		t.Errorf("CustomerName = %q, want 田中 with the honorific stripped", event.CustomerName)
	}
	if event.Confidence < 0.9 {
		t.Errorf("Confidence = %v, want >= 0.9", event.Confidence)
	}
}

func TestClassifyCancellation(t *testing.T) {
	c := New(testPolicy())
	body := "HALLEL 渋谷店\n鈴木様の予約の取り消しを受け付けました。\n日時：2026年9月15日 14:00\n"
	event := c.Classify("【HALLEL】キャンセルのお知らせ", body)
	if event == nil {
		t.Fatal("cancellation notification did not classify")
	}
	if event.Action != models.ActionCancellation {
		t.Errorf("Action = %q, want cancellation", event.Action)
	}
	if event.Start != "14:00" {
		t.Errorf("Start = %q", event.Start)
	}
	// Single endpoint, so the end is synthesized 90 minutes later.
	if event.End != "15:30" {
		t.Errorf("End = %q, want synthesized 15:30", event.End)
	}
	// base 0.5 + one cancel keyword 0.15 + structured date 0.1 + brand
	// literal 0.1; no time range bonus for a single endpoint.
	if math.Abs(event.Confidence-0.85) > 1e-9 {
		t.Errorf("Confidence = %v, want 0.85", event.Confidence)
	}
}

func TestClassifyCancellationWinsOverBooking(t *testing.T) {
	c := New(testPolicy())
	body := "HALLEL 渋谷店\nご予約ありがとうございます。\nご予約をキャンセルしました。\n日時：2026年9月15日 14:00〜15:30\n"
	event := c.Classify("", body)
	if event == nil {
		t.Fatal("did not classify")
	}
	if event.Action != models.ActionCancellation {
		t.Errorf("Action = %q, cancellation keywords must take priority", event.Action)
	}
}

func TestClassifyRejectsWithoutBrand(t *testing.T) {
	c := New(testPolicy())
	body := "渋谷店\nご予約ありがとうございます。\n日時：2026年9月15日 14:00〜15:30\n"
	if event := c.Classify("ご予約のお知らせ", body); event != nil {
		t.Errorf("classified without brand marker: %+v", event)
	}
}

func TestClassifyExcludedLocationWins(t *testing.T) {
	c := New(testPolicy())
	body := "HALLEL 半蔵門店 渋谷店\nご予約ありがとうございます。\n日時：2026年9月15日 14:00〜15:30\n"
	if event := c.Classify("", body); event != nil {
		t.Errorf("excluded location must reject even alongside an included one: %+v", event)
	}
}

func TestClassifyNoLocationMarker(t *testing.T) {
	body := "HALLEL\nご予約ありがとうございます。\n日時：2026年9月15日 14:00〜15:30\n"

	c := New(testPolicy())
	if event := c.Classify("", body); event != nil {
		t.Errorf("marker-less message accepted under strict policy: %+v", event)
	}

	p := testPolicy()
	p.DefaultAcceptLocation = true
	c = New(p)
	if event := c.Classify("", body); event == nil {
		t.Error("marker-less message rejected under default-accept policy")
	}
}

func TestClassifyRejectsWithoutDateOrTime(t *testing.T) {
	c := New(testPolicy())
	noDate := "HALLEL 渋谷店\nご予約ありがとうございます。14:00〜15:30\n"
	if event := c.Classify("", noDate); event != nil {
		t.Errorf("classified without a date: %+v", event)
	}
	// A hyphen-separated range must not have its digits misread as a
	// month/day pair.
	hyphenRange := "HALLEL 渋谷店\nご予約ありがとうございます。14:00-15:30\n"
	if event := c.Classify("", hyphenRange); event != nil {
		t.Errorf("classified hyphen time range as a date: %+v", event)
	}
	noTime := "HALLEL 渋谷店\nご予約ありがとうございます。2026年9月15日\n"
	if event := c.Classify("", noTime); event != nil {
		t.Errorf("classified without a time: %+v", event)
	}
}

func TestClassifyCharterType(t *testing.T) {
	c := New(testPolicy())
	body := "HALLEL 渋谷店 貸切のご予約ありがとうございます。\n日時：2026年9月15日 14:00〜18:00\n"
	event := c.Classify("", body)
	if event == nil {
		t.Fatal("did not classify")
	}
	if event.Type != models.SlotTypeCharter {
		t.Errorf("Type = %q, want charter", event.Type)
	}
}

func TestConfidenceSignalsAccumulate(t *testing.T) {
	c := New(testPolicy())
	weak := c.Classify("", "hallel 渋谷店\n予約を承りました、ありがとうございます。\n9/15 14:00\n")
	strong := c.Classify("", "HALLEL 渋谷店\nご予約ありがとうございます。承りました。\n2026年9月15日 14:00〜15:30\n")
	if weak == nil || strong == nil {
		t.Fatal("classification failed")
	}
	if weak.Confidence >= strong.Confidence {
		t.Errorf("weak %v should score below strong %v", weak.Confidence, strong.Confidence)
	}
	if weak.Confidence < 0.5 || strong.Confidence > 1.0 {
		t.Errorf("confidence out of bounds: %v, %v", weak.Confidence, strong.Confidence)
	}
}
