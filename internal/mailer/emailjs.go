// Package mailer delivers one notification email per call through the
// EmailJS REST API. It has no queue and no retry: callers decide what a
// failed delivery means.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RecipientParam is the template variable EmailJS templates use to address
// the mail.
const RecipientParam = "to_email"

type EmailJS struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewEmailJS(baseURL string, logger *zap.Logger) *EmailJS {
	return &EmailJS{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send performs one delivery. The recipient is injected into the template
// parameters under RecipientParam; the caller's params map is not mutated.
func (m *EmailJS) Send(ctx context.Context, serviceID, templateID, recipient string, params map[string]string, publicKey string) error {
	merged := make(map[string]string, len(params)+1)
	for k, v := range params {
		merged[k] = v
	}
	merged[RecipientParam] = recipient

	body, err := json.Marshal(sendRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         publicKey,
		TemplateParams: merged,
	})
	if err != nil {
		return fmt.Errorf("failed to encode delivery request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("delivery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("delivery rejected with status %d: %s", resp.StatusCode, string(detail))
	}

	m.logger.Debug("delivery accepted",
		zap.String("template_id", templateID), zap.String("recipient", recipient))
	return nil
}
