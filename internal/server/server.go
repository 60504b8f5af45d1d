package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"lead-intake-go/internal/catalog"
	"lead-intake-go/internal/config"
	"lead-intake-go/internal/logger"
	"lead-intake-go/internal/notify"
	"lead-intake-go/internal/tavus"
	"lead-intake-go/internal/webhook"
)

// Server wires the webhook router and the thin presentation endpoints
// (session lifecycle proxy, contact form, search assist) onto one mux.
type Server struct {
	cfg    *config.Config
	hook   *webhook.Handler
	tavus  *tavus.Client
	mailer webhook.Mailer
	search *catalog.Service
}

func New(cfg *config.Config, hook *webhook.Handler, tv *tavus.Client, mailer webhook.Mailer, search *catalog.Service) *Server {
	return &Server{cfg: cfg, hook: hook, tavus: tv, mailer: mailer, search: search}
}

// HTTPServer builds the configured http.Server.
func (s *Server) HTTPServer() *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	mux.Handle("/api/webhook", s.hook)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/contact", s.handleContact)
	mux.HandleFunc("/api/tavus", s.handleSessionStart)
	mux.HandleFunc("/api/tavus/end", s.handleSessionEnd)

	return &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 70 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "search")

	var body struct {
		QueryText string `json:"queryText"`
		Mode      string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.QueryText == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "queryText is required"})
		return
	}

	resp := s.search.Search(body.QueryText, body.Mode)
	reqLog.WithField("query", body.QueryText).WithField("mode_used", resp.ModeUsed).Info("search served")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "contact")

	var sub notify.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
		return
	}
	if sub.Name == "" || sub.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Name and email are required"})
		return
	}

	if s.mailer.Configured() {
		if err := s.mailer.Send(r.Context(), notify.Email{
			From:    s.cfg.AlertFrom,
			To:      []string{s.cfg.InternalInbox},
			Subject: "Insight IT Discovery: " + sub.Name,
			HTML:    notify.ContactFormHTML(sub),
			ReplyTo: sub.Email,
		}); err != nil {
			reqLog.WithError(err).Error("internal contact notification failed")
		}

		if err := s.mailer.Send(r.Context(), notify.Email{
			From:    s.cfg.MailFrom,
			To:      []string{sub.Email},
			Subject: "We received your inquiry",
			HTML:    notify.ContactConfirmationHTML(sub.Name),
		}); err != nil {
			reqLog.WithError(err).Error("contact confirmation failed")
		}
	} else {
		reqLog.Warn("mailer not configured, contact submission logged only")
	}

	reqLog.WithField("email", sub.Email).Info("contact submission received")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Thank you! We'll be in touch soon."})
}

// Default knowledge-base tags attached to every session.
var defaultKBTags = []string{
	"insight-overview",
	"it-solutions",
	"cloud-migration",
	"cybersecurity-services",
	"modern-workplace",
}

const defaultGreeting = "Hi, I'm Amy with Insight. Thanks for reaching out. I'm here to help connect you with the right specialists. What is top of mind for you today?"

func (s *Server) handleSessionStart(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "session-start")

	if s.cfg.TavusPersonaID == "" {
		reqLog.Error("TAVUS_PERSONA_ID not set")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server configuration error"})
		return
	}

	var body struct {
		AudioOnly        bool           `json:"audio_only"`
		MemoryID         string         `json:"memory_id"`
		DocumentTags     []string       `json:"document_tags"`
		CustomGreeting   string         `json:"custom_greeting"`
		ConversationName string         `json:"conversation_name"`
		Properties       map[string]any `json:"properties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
		return
	}

	greeting := body.CustomGreeting
	if greeting == "" {
		greeting = defaultGreeting
	}
	name := body.ConversationName
	if name == "" {
		name = "Insight Discovery Session"
	}

	// Webhook callback resolves against whatever host served this request.
	scheme := "https"
	if strings.Contains(r.Host, "localhost") {
		scheme = "http"
	}
	callbackURL := fmt.Sprintf("%s://%s/api/webhook", scheme, r.Host)
	reqLog.WithField("callback_url", callbackURL).Info("starting avatar session")

	props := map[string]any{
		"max_call_duration":          1800,
		"enable_recording":           true,
		"participant_absent_timeout": 60,
		"participant_left_timeout":   60,
		"tool_choice":                "auto",
	}
	for k, v := range body.Properties {
		props[k] = v
	}

	req := map[string]any{
		"persona_id":             s.cfg.TavusPersonaID,
		"custom_greeting":        cleanGreetingForTTS(greeting),
		"conversation_name":      name,
		"conversational_context": sdrContext,
		"document_tags":          mergeTags(defaultKBTags, body.DocumentTags),
		"tools":                  []map[string]any{searchAssistTool},
		"properties":             props,
		"audio_only":             body.AudioOnly,
		"callback_url":           callbackURL,
	}
	if body.MemoryID != "" {
		req["memory_id"] = body.MemoryID
	}

	resp, err := s.tavus.CreateConversation(r.Context(), req)
	if err != nil {
		reqLog.WithError(err).Error("session start failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Failed to start conversation"})
		return
	}
	reqLog.WithField("conversation_id", resp["conversation_id"]).Info("conversation created")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSessionEnd(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New().WithRequest(r).WithField("handler", "session-end")

	var body struct {
		ConversationID string `json:"conversation_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ConversationID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Conversation ID is required"})
		return
	}

	if err := s.tavus.EndConversation(r.Context(), body.ConversationID); err != nil {
		reqLog.WithError(err).Error("session end failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Failed to end conversation"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// cleanGreetingForTTS strips constructs the TTS layer reads aloud poorly:
// newlines, ellipses and em-dashes.
func cleanGreetingForTTS(greeting string) string {
	greeting = whitespaceRe.ReplaceAllString(greeting, " ")
	greeting = strings.ReplaceAll(greeting, "...", ",")
	greeting = strings.ReplaceAll(greeting, "\u2014", ",")
	return strings.TrimSpace(greeting)
}

func mergeTags(defaults, extra []string) []string {
	seen := make(map[string]struct{}, len(defaults)+len(extra))
	out := make([]string, 0, len(defaults)+len(extra))
	for _, t := range append(append([]string{}, defaults...), extra...) {
		if _, dup := seen[t]; dup || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

var searchAssistTool = map[string]any{
	"type": "function",
	"function": map[string]any{
		"name":        "search_assist",
		"description": "Search hardware inventory for specific products, models, or part numbers.",
		"parameters": map[string]any{
			"type":     "object",
			"required": []string{"query"},
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Product name or part number (e.g. 'Lenovo ThinkPad', 'Cisco Switch', 'FG-60F')",
				},
			},
		},
	},
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
