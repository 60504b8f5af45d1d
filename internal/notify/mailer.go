package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"lead-intake-go/internal/logger"
)

// Email is one outbound delivery request.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Mailer delivers email through the Resend HTTP API.
type Mailer struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

func NewMailer(apiKey, baseURL string) *Mailer {
	return &Mailer{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.NewComponent("mailer"),
	}
}

// Configured reports whether an email delivery credential is present.
func (m *Mailer) Configured() bool { return m.apiKey != "" }

// Send posts one email. Errors are returned to the caller so the fan-out
// can record a per-channel outcome; nothing is retried here.
func (m *Mailer) Send(ctx context.Context, email Email) error {
	if !m.Configured() {
		return fmt.Errorf("RESEND_API_KEY missing")
	}

	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API status %d: %s", resp.StatusCode, body)
	}

	m.log.WithFields(logrus.Fields{
		"to":      email.To,
		"subject": email.Subject,
	}).Info("email sent")
	return nil
}
