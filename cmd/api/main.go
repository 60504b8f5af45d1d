package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"lead-intake-go/internal/catalog"
	"lead-intake-go/internal/config"
	"lead-intake-go/internal/extractor"
	"lead-intake-go/internal/logger"
	"lead-intake-go/internal/notify"
	"lead-intake-go/internal/server"
	"lead-intake-go/internal/sheets"
	"lead-intake-go/internal/tavus"
	"lead-intake-go/internal/webhook"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "lead-intake-go").Info("starting service")

	cfg := config.FromEnv()

	tv := tavus.New(cfg.TavusAPIKey, cfg.TavusAPIURL)
	mailer := notify.NewMailer(cfg.ResendAPIKey, cfg.ResendAPIURL)
	analyzer := extractor.New(cfg)

	var sink webhook.LeadSink
	if cfg.SheetsConfigured() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		sheetClient, err := sheets.New(ctx, cfg)
		cancel()
		if err != nil {
			log.WithError(err).Error("spreadsheet logging disabled")
		} else {
			sink = sheetClient
			log.WithField("sheet_id", cfg.SheetID).Info("spreadsheet logging enabled")
		}
	} else {
		log.Warn("spreadsheet logging not configured")
	}

	products := catalog.Builtin()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			log.WithError(err).WithField("catalog_path", cfg.CatalogPath).Warn("catalog load failed, using builtin")
		} else {
			products = loaded
			log.WithField("products", len(loaded)).Info("catalog loaded")
		}
	}

	hook := webhook.New(cfg, analyzer, tv, mailer, sink)
	srv := server.New(cfg, hook, tv, mailer, catalog.New(products)).HTTPServer()

	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
