package extract

import "testing"

func TestCustomerNameAboveAnchorLine(t *testing.T) {
	body := "メール\n\n田中 太郎\n\nより、ご予約をいただきました。\n\n日時：2026年9月15日 14:00〜15:30"
	if got := CustomerName(body); got != "田中 太郎" {
		t.Errorf("CustomerName = %q, want 田中 太郎", got)
	}
}

func TestCustomerNameStripsHonorific(t *testing.T) {
	body := "田中 様\n\nより、ご予約をいただきました。"
	if got := CustomerName(body); got != "田中" {
		t.Errorf("CustomerName = %q, want 田中", got)
	}
}

func TestCustomerNameAnchorLineWithoutPunctuation(t *testing.T) {
	body := "佐藤花子\nより、ご予約をいただきました\n"
	if got := CustomerName(body); got != "佐藤花子" {
		t.Errorf("CustomerName = %q, want 佐藤花子", got)
	}
}

func TestCustomerNameRejectsNonNameLineAboveAnchor(t *testing.T) {
	// The line right above the anchor is an address, so the walk stops
	// and the honorific fallback takes over.
	body := "tanaka@example.com\nより、ご予約をいただきました。\n鈴木様のご予約です"
	if got := CustomerName(body); got != "鈴木" {
		t.Errorf("CustomerName = %q, want 鈴木", got)
	}
}

func TestCustomerNameHonorificFallbacks(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"山田様のご予約を承りました", "山田"},
		{"やまださまのご予約", "やまだ"},
		{"お名前：高橋", "高橋"},
		{"氏名: 伊藤", "伊藤"},
		{"予約者：渡辺", "渡辺"},
	}
	for _, tt := range tests {
		if got := CustomerName(tt.body); got != tt.want {
			t.Errorf("CustomerName(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestCustomerNameUnknown(t *testing.T) {
	tests := []string{
		"",
		"本日の営業時間のお知らせ",
	}
	for _, body := range tests {
		if got := CustomerName(body); got != "N/A" {
			t.Errorf("CustomerName(%q) = %q, want N/A", body, got)
		}
	}
}

func TestStudio(t *testing.T) {
	text := "渋谷店 STUDIO ⑥ (1) のご予約"
	if got := Studio(text, "渋谷店"); got != "渋谷店 STUDIO ⑥ (1)" {
		t.Errorf("Studio = %q", got)
	}
	if got := Studio("STUDIOでお待ちしております", "渋谷店"); got != "STUDIO" {
		t.Errorf("Studio fallback = %q, want STUDIO", got)
	}
	if got := Studio("場所未定", "渋谷店"); got != "不明" {
		t.Errorf("Studio unknown = %q, want 不明", got)
	}
}
