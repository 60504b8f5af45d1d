package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"lead-intake-go/internal/config"
	"lead-intake-go/internal/logger"
	"lead-intake-go/internal/types"
)

// Client runs the AI lead extraction. Analyze never fails: any transport or
// parse problem produces the canonical fallback record, which routes the
// conversation to the internal review inbox instead of dropping it.
type Client struct {
	cfg         *config.Config
	httpClient  *http.Client
	retryBudget time.Duration
	log         *logrus.Entry
}

func New(cfg *config.Config) *Client {
	return &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 25 * time.Second},
		retryBudget: 30 * time.Second,
		log:         logger.NewComponent("extractor"),
	}
}

// Analyze sends the normalized transcript to the chat-completions endpoint
// and parses a single JSON object out of the reply. The caller has already
// enforced the minimum transcript length.
func (c *Client) Analyze(ctx context.Context, transcript string) types.LeadRecord {
	if c.cfg.OpenAIAPIKey == "" {
		c.log.Warn("OPENAI_API_KEY missing, using fallback lead record")
		return FallbackLead(c.cfg.InternalInbox)
	}

	reqBody := map[string]any{
		"model": c.cfg.OpenAIModel,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": fmt.Sprintf("Transcript:\n%q", transcript)},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0.1,
	}
	data, _ := json.Marshal(reqBody)

	var lead types.LeadRecord
	var lastErr error

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenAIAPIURL, bytes.NewReader(data))
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.OpenAIAPIKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.log.WithError(err).Warn("llm request failed")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			lastErr = fmt.Errorf("llm client error %d: %s", resp.StatusCode, body)
			return backoff.Permanent(lastErr)
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("llm server error %d", resp.StatusCode)
			return lastErr
		}

		content := contentFromChoices(body)
		if content == "" {
			lastErr = fmt.Errorf("empty llm response")
			return lastErr
		}
		if err := json.Unmarshal([]byte(content), &lead); err != nil {
			lastErr = fmt.Errorf("parse lead record: %w", err)
			return lastErr
		}
		lastErr = nil
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.retryBudget
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		c.log.WithError(lastErr).Error("lead extraction failed, using fallback")
		return FallbackLead(c.cfg.InternalInbox)
	}

	c.log.WithFields(logrus.Fields{
		"lead_email":    lead.LeadEmail,
		"inquiry_type":  lead.InquiryType,
		"qualification": lead.QualificationStatus,
	}).Info("lead extracted")
	return lead
}

// FallbackLead is the canonical substitute record for any extraction
// failure. The lead email points at the internal review inbox so the
// notification fan-out still surfaces the conversation to a human.
func FallbackLead(reviewInbox string) types.LeadRecord {
	return types.LeadRecord{
		LeadName:            "Valued Prospect",
		LeadEmail:           reviewInbox,
		LeadPhone:           "Unknown",
		InquiryType:         "Unknown",
		PainPoints:          []string{},
		CurrentSetup:        "Unknown",
		QualificationStatus: QualificationNeedsReview,
		BudgetTimeline:      "Unknown",
		Blockers:            []string{},
		NextSteps:           []string{"Manual follow-up required"},
		Summary:             "Conversation processing failed or produced no usable analysis. Needs manual review.",
		FollowUpEmail:       "<p>Hello,</p><p>Thank you for speaking with Insight. We have received your information and a specialist will reach out to you shortly.</p><p>Best regards,<br>Amy</p>",
	}
}

// QualificationNeedsReview is the sentinel status used on every fallback path.
const QualificationNeedsReview = "Needs manual review"

// contentFromChoices reads the OpenAI-style choices[0].message.content and
// returns the first balanced JSON object found inside it.
func contentFromChoices(body []byte) string {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		return ""
	}
	return extractJSON(parsed.Choices[0].Message.Content)
}

// extractJSON finds the first balanced JSON object in a string, stripping
// common markdown fences first.
func extractJSON(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
