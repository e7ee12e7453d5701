package handlers

// HandlerBundle groups the handler sets so route registration takes a
// single dependency.
type HandlerBundle struct {
	Schedule *ScheduleHandler
	Sync     *SyncHandler
	Webhook  *WebhookHandler
	Logs     *JudgmentLogHandler
}
