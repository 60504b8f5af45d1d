package types

import "encoding/json"

// Recognized webhook event types. Anything else is acknowledged and ignored.
const (
	EventShutdown           = "system.shutdown"
	EventTranscriptionReady = "application.transcription_ready"
)

// ConversationEvent is the inbound webhook notification from the
// conversation platform. The transcript may arrive either under
// properties.transcript or at the top level, in several shapes, so both
// are kept raw until the normalizer resolves them.
type ConversationEvent struct {
	EventType      string           `json:"event_type"`
	ConversationID string           `json:"conversation_id"`
	Properties     *EventProperties `json:"properties,omitempty"`
	Transcript     json.RawMessage  `json:"transcript,omitempty"`
}

// EventProperties carries the payload attached to an event, including the
// verified identity captured by the access gate before the session started.
type EventProperties struct {
	Transcript json.RawMessage `json:"transcript,omitempty"`
	UserEmail  string          `json:"user_email,omitempty"`
	UserName   string          `json:"user_name,omitempty"`
}

// LeadRecord is the structured sales intelligence extracted from one
// conversation transcript (SDR schema).
type LeadRecord struct {
	LeadName  string `json:"lead_name"`
	LeadEmail string `json:"lead_email"`
	LeadPhone string `json:"lead_phone"`

	InquiryType         string   `json:"inquiry_type"`
	PainPoints          []string `json:"pain_points"`
	CurrentSetup        string   `json:"current_setup"`
	QualificationStatus string   `json:"qualification_status"`
	BudgetTimeline      string   `json:"budget_timeline"`
	Blockers            []string `json:"blockers"`
	NextSteps           []string `json:"next_steps"`

	Summary       string `json:"summary"`
	FollowUpEmail string `json:"follow_up_email"`
}

// NotificationOutcome records the result of one delivery channel. A failed
// or skipped channel never affects the other channels.
type NotificationOutcome struct {
	Channel string `json:"channel"`
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped"`
	Error   string `json:"error,omitempty"`
}
