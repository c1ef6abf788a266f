package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/studionord/backend/models"
)

var clientConfirmationTmpl = template.Must(template.New("clientConfirmation").Parse(`
<div style="font-family: Helvetica, Arial, sans-serif; max-width: 560px; margin: 0 auto;">
  <h2>Thank you for reaching out, {{.Name}}</h2>
  <p>We received your message and will get back to you within two business days.</p>
  <blockquote style="border-left: 3px solid #111; padding-left: 12px; color: #555;">{{.Message}}</blockquote>
  <p>— Studio Nord</p>
</div>`))

var adminNotificationTmpl = template.Must(template.New("adminNotification").Parse(`
<div style="font-family: Helvetica, Arial, sans-serif; max-width: 560px; margin: 0 auto;">
  <h2>New contact submission</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
  {{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
  <p><strong>Marketing consent:</strong> {{if .MarketingConsent}}yes{{else}}no{{end}}</p>
  <p><strong>Message:</strong></p>
  <blockquote style="border-left: 3px solid #111; padding-left: 12px; color: #555;">{{.Message}}</blockquote>
</div>`))

// BuildClientConfirmationHTML renders the confirmation sent to the visitor.
func BuildClientConfirmationHTML(submission models.ContactSubmission) (string, error) {
	var buf bytes.Buffer
	if err := clientConfirmationTmpl.Execute(&buf, submission); err != nil {
		return "", fmt.Errorf("render client confirmation: %w", err)
	}
	return buf.String(), nil
}

// BuildAdminNotificationHTML renders the internal notification.
func BuildAdminNotificationHTML(submission models.ContactSubmission) (string, error) {
	var buf bytes.Buffer
	if err := adminNotificationTmpl.Execute(&buf, submission); err != nil {
		return "", fmt.Errorf("render admin notification: %w", err)
	}
	return buf.String(), nil
}
