package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for the knobs that used to be hard-coded in the webhook.
const (
	DefaultTavusAPIURL  = "https://tavusapi.com/v2"
	DefaultOpenAIAPIURL = "https://api.openai.com/v1/chat/completions"
	DefaultResendAPIURL = "https://api.resend.com"
	DefaultOpenAIModel  = "gpt-4o-mini"

	DefaultMinTranscriptChars = 50
	DefaultEventTimeout       = 60 * time.Second

	// Internal review inbox. Also used as the fallback lead email so a
	// failed extraction still lands in front of a human.
	DefaultInternalInbox = "aifusionlabs@gmail.com"
	DefaultMailFrom      = "Amy at Insight <noreply@aifusionlabs.app>"
	DefaultAlertFrom     = "Intake System <alerts@aifusionlabs.app>"
)

// Config is built once at startup and injected into every component that
// needs it. Every credential is optional: a missing one disables the
// corresponding channel instead of failing the pipeline.
type Config struct {
	Port string

	TavusAPIKey    string
	TavusAPIURL    string
	TavusPersonaID string

	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string

	ResendAPIKey  string
	ResendAPIURL  string
	MailFrom      string
	AlertFrom     string
	InternalInbox string

	SheetID           string
	GoogleClientEmail string
	GooglePrivateKey  string

	CatalogPath string

	MinTranscriptChars int
	EventTimeout       time.Duration
}

// FromEnv reads the full configuration surface from the environment.
func FromEnv() *Config {
	cfg := &Config{
		Port:           envOr("PORT", "8080"),
		TavusAPIKey:    os.Getenv("TAVUS_API_KEY"),
		TavusAPIURL:    envOr("TAVUS_API_URL", DefaultTavusAPIURL),
		TavusPersonaID: os.Getenv("TAVUS_PERSONA_ID"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIURL: envOr("OPENAI_API_URL", DefaultOpenAIAPIURL),
		OpenAIModel:  envOr("OPENAI_MODEL", DefaultOpenAIModel),

		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		ResendAPIURL:  envOr("RESEND_API_URL", DefaultResendAPIURL),
		MailFrom:      envOr("MAIL_FROM", DefaultMailFrom),
		AlertFrom:     envOr("ALERT_FROM", DefaultAlertFrom),
		InternalInbox: envOr("INTERNAL_INBOX", DefaultInternalInbox),

		// Legacy variable names are still honored for both sheet credentials.
		SheetID:           os.Getenv("GOOGLE_SHEET_ID"),
		GoogleClientEmail: firstEnv("GOOGLE_CLIENT_EMAIL", "GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		GooglePrivateKey:  unescapeKey(firstEnv("GOOGLE_PRIVATE_KEY", "GOOGLE_SERVICE_ACCOUNT_KEY")),

		CatalogPath: os.Getenv("CATALOG_PATH"),

		MinTranscriptChars: envOrInt("MIN_TRANSCRIPT_CHARS", DefaultMinTranscriptChars),
		EventTimeout:       time.Duration(envOrInt("EVENT_TIMEOUT_SEC", int(DefaultEventTimeout/time.Second))) * time.Second,
	}
	return cfg
}

// SheetsConfigured reports whether the spreadsheet channel has everything it needs.
func (c *Config) SheetsConfigured() bool {
	return c.SheetID != "" && c.GoogleClientEmail != "" && c.GooglePrivateKey != ""
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envOrInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// unescapeKey restores real newlines in a PEM key pasted as a single line.
func unescapeKey(k string) string {
	return strings.ReplaceAll(k, `\n`, "\n")
}
