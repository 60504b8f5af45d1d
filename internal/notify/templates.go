package notify

import (
	"fmt"
	"html/template"
	"strings"

	"lead-intake-go/internal/types"
)

// The follow-up body arrives from the extractor as pre-built HTML; every
// other lead field is escaped by html/template on the way in.

var courtesyTmpl = template.Must(template.New("courtesy").Parse(`
<div style="font-family: serif; padding: 20px; line-height: 1.6; color: #111;">
    <p style="white-space: pre-line;">{{.Body}}</p>
    <br>
    <hr style="border: 0; border-top: 1px solid #eee;">
    <p style="color: #444; font-size: 0.9em;">
        <strong>Amy</strong><br>
        Client Facilitator<br>
        <span style="color: #1E3A8A;">Insight Enterprises</span>
    </p>
</div>
`))

var internalAlertTmpl = template.Must(template.New("alert").Parse(`
<div style="font-family: sans-serif; padding: 20px; line-height: 1.5; color: #333; background-color: #f9f9f9; border: 1px solid #ddd; border-radius: 8px;">
    <div style="border-bottom: 2px solid #1E3A8A; padding-bottom: 10px; margin-bottom: 15px;">
        <h2 style="color: #1E3A8A; margin: 0;">New Sales Lead</h2>
        <p style="margin: 5px 0 0 0; color: #666; font-size: 14px;">Conversation ID: {{.ConversationID}}</p>
    </div>

    <h3 style="margin-bottom: 10px; color: #111;">Contact</h3>
    <p style="margin: 5px 0;"><strong>Name:</strong> {{.Lead.LeadName}}</p>
    <p style="margin: 5px 0;"><strong>Email:</strong> {{.Lead.LeadEmail}}</p>
    <p style="margin: 5px 0;"><strong>Phone:</strong> {{.Lead.LeadPhone}}</p>

    <h3 style="color: #111;">Inquiry</h3>
    <p style="margin: 5px 0;"><strong>Type:</strong> {{.Lead.InquiryType}}</p>
    <p style="margin: 5px 0;"><strong>Qualification:</strong> {{.Lead.QualificationStatus}}</p>
    <p style="margin: 5px 0;"><strong>Budget / Timeline:</strong> {{.Lead.BudgetTimeline}}</p>
    <p style="margin: 5px 0;"><strong>Current Setup:</strong> {{.Lead.CurrentSetup}}</p>

    <h3 style="color: #111;">Pain Points</h3>
    <ul style="background: #fff; padding: 15px 20px; border-radius: 4px; border: 1px solid #e5e5e5;">
        {{range .Lead.PainPoints}}<li>{{.}}</li>{{else}}<li>None captured</li>{{end}}
    </ul>

    <h3 style="color: #DC2626;">Blockers / Competitors</h3>
    {{if .Lead.Blockers}}
    <ul style="background: #fee2e2; padding: 15px 20px; border-radius: 4px; border: 1px solid #fecaca; color: #991b1b;">
        {{range .Lead.Blockers}}<li>{{.}}</li>{{end}}
    </ul>
    {{else}}
    <p style="color: #166534; background: #dcfce7; padding: 10px; border-radius: 4px;">No blockers detected.</p>
    {{end}}

    <h3 style="color: #111;">Summary</h3>
    <div style="background: #f3f4f6; padding: 15px; border-radius: 4px; margin-bottom: 20px;">{{.Lead.Summary}}</div>

    <div style="background: #eff6ff; padding: 20px; border-radius: 6px; border: 2px solid #1E3A8A;">
        <h3 style="margin-top: 0; color: #1E3A8A;">Recommended Next Steps</h3>
        <ul style="margin-bottom: 0;">
            {{range .Lead.NextSteps}}<li><strong>{{.}}</strong></li>{{else}}<li>Manual follow-up required</li>{{end}}
        </ul>
    </div>

    <div style="text-align: center; margin-top: 30px;">
        {{if .RecordingURL}}
        <a href="{{.RecordingURL}}" style="background-color: #111; color: #fff; padding: 12px 25px; text-decoration: none; border-radius: 6px; font-weight: bold;">View Conversation Recording</a>
        {{else}}
        <span>Recording Processing...</span>
        {{end}}
    </div>
</div>
`))

var contactFormTmpl = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; color: #333;">
    <div style="background: #1E3A8A; color: white; padding: 20px; border-radius: 8px 8px 0 0;">
        <h2 style="margin: 0;">IT Discovery Inquiry</h2>
    </div>
    <div style="background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb;">
        <p><strong>Name:</strong> {{.Name}}</p>
        <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
        <p><strong>Phone:</strong> {{.Phone}}</p>
        <p><strong>Company:</strong> {{.Company}}</p>
        <p><strong>Message:</strong></p>
        <p style="padding: 10px; background: white; border-radius: 4px;">{{.Message}}</p>
    </div>
</div>
`))

// CourtesyEmailHTML renders the follow-up message sent to the lead.
func CourtesyEmailHTML(lead types.LeadRecord) string {
	var buf strings.Builder
	_ = courtesyTmpl.Execute(&buf, struct{ Body template.HTML }{Body: template.HTML(lead.FollowUpEmail)})
	return buf.String()
}

// InternalAlertHTML renders the ops alert exposing every structured field.
func InternalAlertHTML(lead types.LeadRecord, conversationID, recordingURL string) string {
	var buf strings.Builder
	_ = internalAlertTmpl.Execute(&buf, struct {
		Lead           types.LeadRecord
		ConversationID string
		RecordingURL   string
	}{lead, conversationID, recordingURL})
	return buf.String()
}

// InternalAlertSubject builds the ops alert subject line.
func InternalAlertSubject(lead types.LeadRecord) string {
	return fmt.Sprintf("[NEW LEAD] %s - %s", lead.InquiryType, lead.LeadName)
}

// ContactSubmission is a contact-form payload rendered into the internal
// notification email.
type ContactSubmission struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
}

// ContactFormHTML renders the internal notification for a form submission.
func ContactFormHTML(sub ContactSubmission) string {
	if sub.Phone == "" {
		sub.Phone = "Not provided"
	}
	if sub.Company == "" {
		sub.Company = "Not provided"
	}
	if sub.Message == "" {
		sub.Message = "No message provided"
	}
	var buf strings.Builder
	_ = contactFormTmpl.Execute(&buf, sub)
	return buf.String()
}

var contactConfirmTmpl = template.Must(template.New("confirm").Parse(
	`<p>Hi {{.}},<br><br>Thank you for reaching out to Insight. We received your inquiry and a specialist will review it and contact you shortly.<br><br>Best regards,<br>Amy</p>`))

// ContactConfirmationHTML renders the acknowledgment sent back to the submitter.
func ContactConfirmationHTML(name string) string {
	var buf strings.Builder
	_ = contactConfirmTmpl.Execute(&buf, name)
	return buf.String()
}
