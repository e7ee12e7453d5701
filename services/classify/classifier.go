// Package classify decides whether a raw notification message is a
// booking or a cancellation and extracts its structured fields. The
// classifier is stateless per call; messages that cannot be classified
// with a complete date and time yield no event at all.
package classify

import (
	"strings"

	"go.uber.org/zap"

	"slotboard/models"
	"slotboard/services/extract"
	"slotboard/utils"
)

var bookingKeywords = []string{
	"ご予約ありがとうございます",
	"以下の内容を承りました",
	"ご確認ください",
	"予約が完了",
	"承りました",
	"ご予約をいただきました",
}

var cancellationKeywords = []string{
	"キャンセルいたしました",
	"予約をキャンセル",
	"キャンセルしました",
	"取り消し",
	"キャンセル完了",
}

var charterWords = []string{"charter", "チャーター", "貸切", "貸し切り"}

const baseConfidence = 0.5

// Classifier turns subject/body pairs into reservation events.
type Classifier struct {
	Policy Policy
}

func New(policy Policy) *Classifier {
	return &Classifier{Policy: policy}
}

// Classify returns the extracted event, or nil when the message is not a
// classifiable reservation notification. A nil result is expected and
// frequent; it is logged at debug level only.
func (c *Classifier) Classify(subject, body string) *models.ReservationEvent {
	logger := utils.GetLogger()

	if !c.matchesBrand(subject, body) {
		return nil
	}
	if !c.matchesLocation(body) {
		logger.Debug("classify: location filter rejected message", zap.String("subject", subject))
		return nil
	}

	action, ok := determineAction(body)
	if !ok {
		logger.Debug("classify: no action keyword matched", zap.String("subject", subject))
		return nil
	}

	date, ok := extract.Date(body)
	if !ok {
		logger.Debug("classify: no date found", zap.String("subject", subject))
		return nil
	}

	start, end, ok := extract.TimeRange(body)
	if !ok {
		// A single endpoint still classifies; the end is synthesized
		// 90 minutes after the start.
		start, ok = extract.SingleTime(body)
		if !ok {
			logger.Debug("classify: no time found", zap.String("subject", subject))
			return nil
		}
		end, _ = extract.SynthesizeEnd(start, c.Policy.AllowOvernight)
	}

	event := &models.ReservationEvent{
		Action:       action,
		Date:         date,
		Start:        start,
		End:          end,
		CustomerName: extract.CustomerName(body),
		Studio:       extract.Studio(body, c.Policy.primaryLocation()),
		Type:         slotType(subject, body),
		Confidence:   c.confidence(action, subject, body),
	}
	if err := event.Validate(); err != nil {
		logger.Debug("classify: incomplete event discarded", zap.Error(err))
		return nil
	}
	return event
}

func (c *Classifier) matchesBrand(subject, body string) bool {
	combined := strings.ToLower(subject + " " + body)
	for _, marker := range c.Policy.BrandMarkers {
		if strings.Contains(combined, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// matchesLocation applies the exclude list first, then requires an
// explicit include marker unless the policy default-accepts messages
// with no location marker either way.
func (c *Classifier) matchesLocation(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range c.Policy.ExcludeLocations {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return false
		}
	}
	for _, marker := range c.Policy.IncludeLocations {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return c.Policy.DefaultAcceptLocation
}

// determineAction checks cancellation keywords before booking keywords,
// then falls back to the looser substring heuristic.
func determineAction(body string) (models.Action, bool) {
	for _, kw := range cancellationKeywords {
		if strings.Contains(body, kw) {
			return models.ActionCancellation, true
		}
	}
	for _, kw := range bookingKeywords {
		if strings.Contains(body, kw) {
			return models.ActionBooking, true
		}
	}

	lower := strings.ToLower(body)
	if strings.Contains(body, "キャンセル") || strings.Contains(lower, "cancel") {
		return models.ActionCancellation, true
	}
	if strings.Contains(body, "予約") &&
		(strings.Contains(body, "ありがとう") || strings.Contains(body, "承り")) {
		return models.ActionBooking, true
	}
	return "", false
}

// confidence accumulates independent corroborating signals on top of the
// base score and clamps at 1.0.
func (c *Classifier) confidence(action models.Action, subject, body string) float64 {
	score := baseConfidence

	switch action {
	case models.ActionBooking:
		for _, kw := range bookingKeywords {
			if strings.Contains(body, kw) {
				score += 0.1
			}
		}
	case models.ActionCancellation:
		for _, kw := range cancellationKeywords {
			if strings.Contains(body, kw) {
				score += 0.15
			}
		}
	}

	if extract.HasStructuredDate(body) {
		score += 0.1
	}
	if extract.HasStructuredTime(body) {
		score += 0.1
	}
	combined := subject + " " + body
	for _, marker := range c.Policy.BrandMarkers {
		if strings.Contains(combined, marker) {
			score += 0.1
			break
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func slotType(subject, body string) string {
	lower := strings.ToLower(subject + " " + body)
	for _, w := range charterWords {
		if strings.Contains(lower, strings.ToLower(w)) {
			return models.SlotTypeCharter
		}
	}
	return models.SlotTypeOrdinary
}
