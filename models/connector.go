package models

// MailMessage is the raw tuple supplied by the mail connector.
type MailMessage struct {
	MessageID string `json:"message_id"`
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// PortalRecord is a pre-structured row supplied by the scheduling-portal
// connector for a single date. The portal has already resolved the action,
// so records merge as bookings.
type PortalRecord struct {
	Date         string `json:"date"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	CustomerName string `json:"customer_name"`
	Source       string `json:"source"`
	StoreName    string `json:"store_name,omitempty"`
}

// WebhookEvent is the wire shape of one event in a webhook batch.
type WebhookEvent struct {
	Date           string `json:"date"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Type           string `json:"type"`
	CustomerName   string `json:"customer_name"`
	IsCancellation bool   `json:"is_cancellation"`
	MessageID      string `json:"message_id,omitempty"`
}
