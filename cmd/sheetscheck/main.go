package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"lead-intake-go/internal/config"
	"lead-intake-go/internal/extractor"
	"lead-intake-go/internal/logger"
	"lead-intake-go/internal/sheets"
)

// Verifies Google Sheets connectivity by appending a test row. Run it
// after sharing the sheet with the service-account email (Editor role).
func main() {
	_ = godotenv.Load()

	log := logger.New().WithField("tool", "sheetscheck")
	cfg := config.FromEnv()

	log.WithField("sheet_id_present", cfg.SheetID != "").
		WithField("client_email_present", cfg.GoogleClientEmail != "").
		WithField("private_key_present", cfg.GooglePrivateKey != "").
		Info("checking spreadsheet configuration")

	if !cfg.SheetsConfigured() {
		log.Fatal("missing required spreadsheet environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := sheets.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("sheets client init failed")
	}

	lead := extractor.FallbackLead(cfg.InternalInbox)
	lead.LeadName = "Connectivity Test"
	lead.InquiryType = "System Check"
	lead.Summary = "Verifying spreadsheet integration"

	convID := "test-connectivity-" + time.Now().Format("20060102150405")
	if err := client.AppendLead(ctx, convID, lead, ""); err != nil {
		log.WithError(err).Fatal("append failed; confirm the sheet is shared with the service account and the private key is formatted correctly")
	}

	log.WithField("conversation_id", convID).Info("test row appended, check the sheet to confirm")
}
