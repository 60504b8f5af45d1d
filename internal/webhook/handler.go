package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"lead-intake-go/internal/config"
	"lead-intake-go/internal/logger"
	"lead-intake-go/internal/notify"
	"lead-intake-go/internal/transcript"
	"lead-intake-go/internal/types"
)

// Acknowledgment messages returned for every syntactically valid event.
const (
	AckProcessed = "Event processed"
	AckShutdown  = "Shutdown acknowledged"
	AckIgnored   = "Ignored"
)

// Analyzer produces a LeadRecord from a normalized transcript. It never
// fails; failures surface as the fallback record.
type Analyzer interface {
	Analyze(ctx context.Context, transcriptText string) types.LeadRecord
}

// RecordingResolver fetches a durable recording URL, best-effort.
type RecordingResolver interface {
	Configured() bool
	RecordingURL(ctx context.Context, conversationID string) string
}

// Mailer delivers one email.
type Mailer interface {
	Configured() bool
	Send(ctx context.Context, email notify.Email) error
}

// LeadSink appends a finalized lead to the durable spreadsheet log.
type LeadSink interface {
	AppendLead(ctx context.Context, conversationID string, lead types.LeadRecord, recordingURL string) error
}

// Handler is the webhook event router. It owns one
// event -> lead -> outcomes chain per invocation and shares nothing
// mutable across invocations.
type Handler struct {
	cfg        *config.Config
	analyzer   Analyzer
	recordings RecordingResolver
	mailer     Mailer
	sink       LeadSink // nil when spreadsheet logging is not configured
	log        *logrus.Entry
}

func New(cfg *config.Config, analyzer Analyzer, recordings RecordingResolver, mailer Mailer, sink LeadSink) *Handler {
	return &Handler{
		cfg:        cfg,
		analyzer:   analyzer,
		recordings: recordings,
		mailer:     mailer,
		sink:       sink,
		log:        logger.NewComponent("webhook"),
	}
}

// ServeHTTP accepts the platform callback. Only an unparseable body is an
// error; every other condition acknowledges the event with success.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r)

	var event types.ConversationEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		reqLog.WithError(err).Error("malformed webhook body")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
		return
	}

	reqLog.WithFields(logrus.Fields{
		"event_type":      event.EventType,
		"conversation_id": event.ConversationID,
	}).Info("event received")

	ack := h.Process(r.Context(), event)
	writeJSON(w, http.StatusOK, map[string]string{"message": ack})
}

// Process routes one event and returns the acknowledgment message.
func (h *Handler) Process(ctx context.Context, event types.ConversationEvent) string {
	switch event.EventType {
	case types.EventShutdown:
		return AckShutdown
	case types.EventTranscriptionReady:
		h.processTranscript(ctx, event)
		return AckProcessed
	default:
		h.log.WithField("event_type", event.EventType).Info("ignoring event")
		return AckIgnored
	}
}

// processTranscript runs the intake pipeline: normalize, resolve recording,
// gate on length, extract, reconcile identity, fan out notifications.
func (h *Handler) processTranscript(ctx context.Context, event types.ConversationEvent) {
	ctx, cancel := context.WithTimeout(ctx, h.cfg.EventTimeout)
	defer cancel()

	log := h.log.WithField("conversation_id", event.ConversationID)

	raw := event.Transcript
	if event.Properties != nil && len(event.Properties.Transcript) > 0 {
		raw = event.Properties.Transcript
	}
	text := transcript.Normalize(raw)

	recordingURL := ""
	if h.recordings.Configured() {
		recordingURL = h.recordings.RecordingURL(ctx, event.ConversationID)
	}

	if len(text) < h.cfg.MinTranscriptChars {
		log.WithField("transcript_len", len(text)).Warn("transcript below minimum length, skipping analysis")
		return
	}

	lead := h.analyzer.Analyze(ctx, text)
	reconcileIdentity(&lead, event.Properties, log)

	outcomes := h.fanOut(ctx, event.ConversationID, lead, recordingURL)
	for _, o := range outcomes {
		entry := log.WithFields(logrus.Fields{
			"channel": o.Channel,
			"ok":      o.OK,
			"skipped": o.Skipped,
		})
		switch {
		case o.Skipped:
			entry.Warn("notification channel skipped")
		case !o.OK:
			entry.WithField("error", o.Error).Error("notification channel failed")
		default:
			entry.Info("notification delivered")
		}
	}
}

// reconcileIdentity overrides AI-inferred contact fields with the verified
// identity captured before the session, when present. Verified values
// always win to avoid routing a real lead to a guessed address.
func reconcileIdentity(lead *types.LeadRecord, props *types.EventProperties, log *logrus.Entry) {
	if props == nil || props.UserEmail == "" {
		return
	}
	lead.LeadEmail = props.UserEmail
	if props.UserName != "" {
		lead.LeadName = props.UserName
	}
	log.WithField("lead_email", lead.LeadEmail).Info("enforcing verified user identity")
}

// fanOut attempts the three delivery channels concurrently. Each channel
// is isolated: a failure is captured in its outcome and never affects the
// others. Nothing is retried within the invocation.
func (h *Handler) fanOut(ctx context.Context, conversationID string, lead types.LeadRecord, recordingURL string) []types.NotificationOutcome {
	outcomes := make([]types.NotificationOutcome, 3)
	mailReady := h.mailer.Configured()
	if !mailReady {
		h.log.Error("email delivery credential missing, skipping email channels")
	}

	var wg sync.WaitGroup
	run := func(i int, channel string, skipped bool, fn func() error) {
		if skipped {
			outcomes[i] = types.NotificationOutcome{Channel: channel, Skipped: true}
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = attempt(channel, fn)
		}()
	}

	run(0, "courtesy_email", !mailReady, func() error {
		return h.mailer.Send(ctx, notify.Email{
			From:    h.cfg.MailFrom,
			To:      courtesyRecipients(lead.LeadEmail, h.cfg.InternalInbox),
			Subject: "Your Insight Discovery Session: Next Steps",
			HTML:    notify.CourtesyEmailHTML(lead),
		})
	})

	run(1, "internal_alert", !mailReady, func() error {
		return h.mailer.Send(ctx, notify.Email{
			From:    h.cfg.AlertFrom,
			To:      []string{h.cfg.InternalInbox},
			Subject: notify.InternalAlertSubject(lead),
			HTML:    notify.InternalAlertHTML(lead, conversationID, recordingURL),
		})
	})

	run(2, "sheet_append", h.sink == nil, func() error {
		return h.sink.AppendLead(ctx, conversationID, lead, recordingURL)
	})

	wg.Wait()
	return outcomes
}

// attempt is the uniform attempt-and-report wrapper for one channel.
func attempt(channel string, fn func() error) types.NotificationOutcome {
	if err := fn(); err != nil {
		return types.NotificationOutcome{Channel: channel, Error: err.Error()}
	}
	return types.NotificationOutcome{Channel: channel, OK: true}
}

// courtesyRecipients always includes the internal inbox so no lead goes
// unseen, without duplicating it when it is already the resolved address.
func courtesyRecipients(leadEmail, internalInbox string) []string {
	if leadEmail == "" || leadEmail == internalInbox {
		return []string{internalInbox}
	}
	return []string{leadEmail, internalInbox}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
