package models

// Slot type labels. "gmail" is the historical label for an ordinary
// mail-derived booking and is kept for compatibility with stored data.
const (
	SlotTypeOrdinary = "gmail"
	SlotTypeCharter  = "charter"
	SlotTypeBlock    = "block"
	SlotTypeUnknown  = "unknown"
)

// Slot represents a stored, merged booking occupying a time range on a date.
type Slot struct {
	ID           string  `bson:"id" json:"id"`
	Start        string  `bson:"start" json:"start"` // HH:MM
	End          string  `bson:"end" json:"end"`     // HH:MM
	Type         string  `bson:"type" json:"type"`
	Source       Source  `bson:"source" json:"source"`
	CustomerName string  `bson:"customerName" json:"customer_name"`
	Studio       string  `bson:"studio,omitempty" json:"studio,omitempty"`
	Group        int     `bson:"group" json:"group"` // 1-based position among same-start slots
	Sender       string  `bson:"sender,omitempty" json:"sender,omitempty"`
	Subject      string  `bson:"subject,omitempty" json:"email_subject,omitempty"`
	MessageID    string  `bson:"messageId,omitempty" json:"message_id,omitempty"`
	Confidence   float64 `bson:"confidence,omitempty" json:"confidence,omitempty"`
}

// Schedule maps a date (YYYY-MM-DD) to its ordered slot list.
type Schedule map[string][]Slot

// DetailedSlot is the flattened admin view of a stored slot.
type DetailedSlot struct {
	Date          string `json:"date"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Type          string `json:"type"`
	TypeDisplay   string `json:"type_display"`
	Group         int    `json:"group"`
	Source        Source `json:"source"`
	SourceDisplay string `json:"source_display"`
	Sender        string `json:"sender"`
	Subject       string `json:"email_subject"`
	MessageID     string `json:"message_id"`
	CustomerName  string `json:"customer_name"`
}

// TypeDisplay returns the human label for a slot type.
func TypeDisplay(slotType string) string {
	switch slotType {
	case SlotTypeCharter:
		return "貸切予約"
	case SlotTypeBlock:
		return "ブロック"
	default:
		return "通常予約"
	}
}

// SourceDisplay returns the human label for a slot source.
func SourceDisplay(source Source) string {
	switch source {
	case SourceMail:
		return "Gmail自動"
	case SourcePortal:
		return "ポータル同期"
	case SourceWebhook:
		return "Webhook"
	default:
		return "手動入力"
	}
}
