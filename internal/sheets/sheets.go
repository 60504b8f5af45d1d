package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"lead-intake-go/internal/config"
	"lead-intake-go/internal/logger"
	"lead-intake-go/internal/types"
)

// Client appends lead rows to the configured spreadsheet using a
// service-account credential.
type Client struct {
	sheetID string
	svc     *sheetsapi.Service
	log     *logrus.Entry
}

// New builds the spreadsheet client, or returns an error when the channel
// is misconfigured. Callers should treat a missing configuration as a
// skip, not a failure (check cfg.SheetsConfigured() first).
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.SheetsConfigured() {
		return nil, fmt.Errorf("spreadsheet logging not configured")
	}

	conf := &jwt.Config{
		Email:      cfg.GoogleClientEmail,
		PrivateKey: []byte(cfg.GooglePrivateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   "https://oauth2.googleapis.com/token",
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		sheetID: cfg.SheetID,
		svc:     svc,
		log:     logger.NewComponent("sheets"),
	}, nil
}

// AppendLead appends one row to the first sheet of the workbook.
func (c *Client) AppendLead(ctx context.Context, conversationID string, lead types.LeadRecord, recordingURL string) error {
	row := BuildLeadRow(time.Now(), conversationID, lead, recordingURL)

	_, err := c.svc.Spreadsheets.Values.
		Append(c.sheetID, "A:A", &sheetsapi.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}

	c.log.WithField("conversation_id", conversationID).Info("row appended")
	return nil
}

// BuildLeadRow renders the fixed column layout:
// Date, Time, ConvID, Name, Email, Phone, Inquiry, Summary, Qualification,
// Pain Points, Next Steps, Recording. Missing values become "N/A".
func BuildLeadRow(now time.Time, conversationID string, lead types.LeadRecord, recordingURL string) []interface{} {
	return []interface{}{
		now.Format("01/02/2006"),
		now.Format("15:04:05"),
		orNA(conversationID),
		orNA(lead.LeadName),
		orNA(lead.LeadEmail),
		orNA(lead.LeadPhone),
		orNA(lead.InquiryType),
		orNA(lead.Summary),
		orNA(lead.QualificationStatus),
		strings.Join(lead.PainPoints, ", "),
		strings.Join(lead.NextSteps, "; "),
		orNA(recordingURL),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
