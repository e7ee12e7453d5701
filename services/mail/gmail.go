package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"slotboard/config"
	"slotboard/models"
	"slotboard/utils"
)

// gmailConnector reads notification mails through the Gmail REST API.
type gmailConnector struct {
	svc         *gmail.Service
	query       string
	maxResults  int64
	lookback    time.Duration
	labelPrefix string

	labelMu  sync.Mutex
	labelIDs map[string]string
}

// NewGmailConnector builds a Connector from the configured authorized
// user token. Returns an error when credentials are missing or invalid.
func NewGmailConnector(ctx context.Context) (Connector, error) {
	tokenJSON := config.AppConfig.GmailTokenJSON
	if tokenJSON == "" {
		return nil, errors.New("mail: GMAIL_TOKEN_JSON is not configured")
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(tokenJSON),
		gmail.GmailReadonlyScope, gmail.GmailLabelsScope, gmail.GmailModifyScope)
	if err != nil {
		return nil, fmt.Errorf("mail: invalid gmail credentials: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("mail: failed to build gmail service: %w", err)
	}

	return &gmailConnector{
		svc:         svc,
		query:       config.AppConfig.GmailQuery,
		maxResults:  config.AppConfig.GmailMaxResults,
		lookback:    time.Duration(config.AppConfig.GmailLookbackDays) * 24 * time.Hour,
		labelPrefix: config.AppConfig.BrandMarker,
		labelIDs:    make(map[string]string),
	}, nil
}

func (g *gmailConnector) Fetch(ctx context.Context) ([]models.MailMessage, error) {
	after := time.Now().Add(-g.lookback).Format("2006/01/02")
	query := fmt.Sprintf("%s after:%s", g.query, after)

	list, err := g.svc.Users.Messages.List("me").Q(query).MaxResults(g.maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("mail: message list failed: %w", err)
	}

	logger := utils.GetLogger()
	messages := make([]models.MailMessage, 0, len(list.Messages))
	for _, ref := range list.Messages {
		full, err := g.svc.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			logger.Warn("mail: message fetch failed", zap.String("id", ref.Id), zap.Error(err))
			continue
		}
		messages = append(messages, models.MailMessage{
			MessageID: ref.Id,
			Sender:    headerValue(full, "From"),
			Subject:   headerValue(full, "Subject"),
			Body:      extractBody(full),
		})
	}
	return messages, nil
}

// Label applies the processed/booking/cancellation labels, creating them
// on first use.
func (g *gmailConnector) Label(ctx context.Context, messageID string, action models.Action) error {
	names := []string{g.labelPrefix + "/Processed"}
	switch action {
	case models.ActionBooking:
		names = append(names, g.labelPrefix+"/Booking")
	case models.ActionCancellation:
		names = append(names, g.labelPrefix+"/Cancellation")
	}

	var ids []string
	for _, name := range names {
		id, err := g.labelID(ctx, name)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	req := &gmail.ModifyMessageRequest{AddLabelIds: ids}
	_, err := g.svc.Users.Messages.Modify("me", messageID, req).Context(ctx).Do()
	return err
}

func (g *gmailConnector) labelID(ctx context.Context, name string) (string, error) {
	g.labelMu.Lock()
	defer g.labelMu.Unlock()

	if id, ok := g.labelIDs[name]; ok {
		return id, nil
	}

	list, err := g.svc.Users.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return "", err
	}
	for _, label := range list.Labels {
		g.labelIDs[label.Name] = label.Id
	}
	if id, ok := g.labelIDs[name]; ok {
		return id, nil
	}

	created, err := g.svc.Users.Labels.Create("me", &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	g.labelIDs[name] = created.Id
	return created.Id, nil
}

func headerValue(msg *gmail.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// extractBody returns the first text/plain part of the message.
func extractBody(msg *gmail.Message) string {
	if msg.Payload == nil {
		return ""
	}
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		return decodeBody(msg.Payload.Body.Data)
	}
	for _, part := range msg.Payload.Parts {
		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			return decodeBody(part.Body.Data)
		}
	}
	return ""
}

func decodeBody(data string) string {
	decoded, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		if padded, perr := base64.URLEncoding.DecodeString(data); perr == nil {
			return string(padded)
		}
		return ""
	}
	return string(decoded)
}
