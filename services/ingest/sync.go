package ingest

import (
	"context"

	"go.uber.org/zap"

	"slotboard/models"
	"slotboard/services/classify"
	"slotboard/services/mail"
	"slotboard/services/portal"
	"slotboard/utils"
)

// MailSyncService runs one mail ingestion pass: fetch, classify,
// normalize, merge. A connector failure aborts the run with zero events
// applied; the store is never left corrupted by a failed fetch.
type MailSyncService struct {
	Connector     mail.Connector
	Classifier    *classify.Classifier
	Engine        *Engine
	MinConfidence float64
	ApplyLabels   bool
}

// Run fetches the recent mail window and applies every classified event.
func (s *MailSyncService) Run(ctx context.Context) (models.SyncSummary, error) {
	logger := utils.GetLogger()

	messages, err := s.Connector.Fetch(ctx)
	if err != nil {
		return models.SyncSummary{}, err
	}
	logger.Info("sync: fetched mail window", zap.Int("messages", len(messages)))

	var summary models.SyncSummary
	for _, msg := range messages {
		event := s.Classifier.Classify(msg.Subject, msg.Body)
		if event == nil {
			continue
		}
		if event.Confidence < s.MinConfidence {
			logger.Debug("sync: confidence below threshold",
				zap.String("subject", msg.Subject),
				zap.Float64("confidence", event.Confidence))
			s.Engine.RecordDrop(ctx, *event, "低信頼度")
			continue
		}

		normalized := FromMail(*event, msg)
		summary.TotalFound++

		outcome, err := s.Engine.Apply(ctx, normalized, PolicyFor(models.SourceMail))
		if err != nil {
			logger.Warn("sync: merge failed", zap.String("message_id", msg.MessageID), zap.Error(err))
			continue
		}
		summary.Record(outcome)
		logger.Info("sync: event applied",
			zap.String("action", string(normalized.Action)),
			zap.String("date", normalized.Date),
			zap.String("start", normalized.Start),
			zap.String("outcome", string(outcome)),
			zap.Float64("confidence", normalized.Confidence))

		if s.ApplyLabels {
			if err := s.Connector.Label(ctx, msg.MessageID, normalized.Action); err != nil {
				logger.Warn("sync: label apply failed", zap.String("message_id", msg.MessageID), zap.Error(err))
			}
		}
	}
	return summary, nil
}

// PortalSyncService merges pre-structured portal records.
type PortalSyncService struct {
	Connector portal.Connector
	Engine    *Engine
}

// Run fetches the date range from the portal connector and applies it.
func (s *PortalSyncService) Run(ctx context.Context, startDate, endDate string) (models.SyncSummary, error) {
	records, err := s.Connector.FetchRange(ctx, startDate, endDate)
	if err != nil {
		return models.SyncSummary{}, err
	}
	return s.ApplyRecords(ctx, records)
}

// ApplyRecords merges scraped rows delivered out of band (for example by
// an automation job posting to the sync endpoint).
func (s *PortalSyncService) ApplyRecords(ctx context.Context, records []models.PortalRecord) (models.SyncSummary, error) {
	logger := utils.GetLogger()

	var summary models.SyncSummary
	summary.TotalFound = len(records)
	for _, rec := range records {
		event, err := FromPortal(rec)
		if err != nil {
			logger.Debug("sync: incomplete portal record skipped",
				zap.String("date", rec.Date), zap.Error(err))
			continue
		}
		outcome, err := s.Engine.Apply(ctx, event, PolicyFor(models.SourcePortal))
		if err != nil {
			logger.Warn("sync: portal merge failed", zap.String("date", rec.Date), zap.Error(err))
			continue
		}
		summary.Record(outcome)
	}
	return summary, nil
}
