// services/email_service.go
package services

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"

	"cleaning-crm/models"
	"cleaning-crm/utils"
)

// Mailer is the messaging collaborator. SendBookingConfirmation returns the
// rendered HTML so callers can log it as a communication record.
type Mailer interface {
	SendBookingConfirmation(booking models.Booking, calendarLink string) (string, error)
	SendReminder(booking models.Booking) error
	Send(to, subject, html string) error
}

// SMTPMailer sends multipart mail over plain SMTP. When the SMTP env vars
// are absent it logs the message instead of sending, so local development
// works without a mail account.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

func NewSMTPMailerFromEnv() *SMTPMailer {
	return &SMTPMailer{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		FromName: utils.EnvOrDefault("SMTP_FROM_NAME", "RECT Cleaning"),
	}
}

func (m *SMTPMailer) configured() bool {
	return m.Host != "" && m.Port != "" && m.Username != "" && m.Password != ""
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Booking Confirmation</title></head>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:700px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
  <h2>Booking Confirmation</h2>
  <p>Dear {{.CustomerName}},</p>
  <p>Thank you for booking with {{.CompanyName}}. Here are your booking details:</p>
  <p><b>Cleaning type:</b> {{.CleaningType}}</p>
  <p><b>Area:</b> {{.Area}} sq meters</p>
  <p><b>Date:</b> {{.DateTime}}</p>
  <p><b>Duration:</b> {{.Duration}}</p>
  <p><b>Price:</b> EUR {{.Price}}</p>
  <p><b>Address:</b> {{.Address}}</p>
  {{if .ServiceItems}}
  <p><b>Additional services:</b></p>
  <ul>
    {{range .ServiceItems}}<li>{{.Name}}{{if .Frequency}} ({{.Frequency}}){{end}}{{if .Description}}: {{.Description}}{{end}}</li>{{end}}
  </ul>
  {{end}}
  {{if .CalendarLink}}<p><a href="{{.CalendarLink}}">View this appointment in your calendar</a></p>{{end}}
  <p>Your invoice is attached as a PDF.</p>
  <p>Best regards,<br>{{.CompanyName}}</p>
</div>
</body>
</html>`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Reminder</title></head>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:700px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
  <h2>Your cleaning service is coming soon</h2>
  <p>Dear {{.CustomerName}},</p>
  <p>This is a reminder that your {{.CleaningType}} cleaning ({{.Area}} sq meters)
  is scheduled for <b>{{.DateTime}}</b> at {{.Address}}.</p>
  <p>Price: EUR {{.Price}}</p>
  <p>Questions? Call us at {{.SupportPhone}}.</p>
  <p>Best regards,<br>{{.CompanyName}}</p>
</div>
</body>
</html>`))

type confirmationData struct {
	CustomerName string
	CompanyName  string
	CleaningType string
	Area         string
	DateTime     string
	Duration     string
	Price        string
	Address      string
	ServiceItems []models.ServiceItem
	CalendarLink string
}

// SendBookingConfirmation renders the confirmation HTML, builds the invoice
// PDF and dispatches both to the booking's customer.
func (m *SMTPMailer) SendBookingConfirmation(booking models.Booking, calendarLink string) (string, error) {
	companyName := utils.EnvOrDefault("COMPANY_NAME", "RECT")

	var body strings.Builder
	err := confirmationTmpl.Execute(&body, confirmationData{
		CustomerName: booking.Customer.Name,
		CompanyName:  companyName,
		CleaningType: booking.CleaningType,
		Area:         fmt.Sprintf("%.0f", booking.Area),
		DateTime:     booking.DateTime.Format("2 January 2006, 15:04"),
		Duration:     fmt.Sprintf("%d hours", booking.Duration),
		Price:        fmt.Sprintf("%.2f", booking.Price),
		Address:      booking.Customer.Address,
		ServiceItems: booking.ServiceItems,
		CalendarLink: calendarLink,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}

	pdf, err := utils.BuildInvoicePDF(booking, companyName)
	if err != nil {
		return "", err
	}

	subject := "Booking Confirmation"
	if err := m.sendWithAttachment(booking.Customer.Email, subject, body.String(), "invoice.pdf", pdf); err != nil {
		return body.String(), fmt.Errorf("failed to send booking confirmation email: %w", err)
	}
	return body.String(), nil
}

// SendReminder dispatches the pre-service reminder used by the sweep.
func (m *SMTPMailer) SendReminder(booking models.Booking) error {
	var body strings.Builder
	err := reminderTmpl.Execute(&body, map[string]string{
		"CustomerName": booking.Customer.Name,
		"CompanyName":  utils.EnvOrDefault("COMPANY_NAME", "RECT"),
		"CleaningType": booking.CleaningType,
		"Area":         fmt.Sprintf("%.0f", booking.Area),
		"DateTime":     booking.DateTime.Format("2 January 2006, 15:04"),
		"Price":        fmt.Sprintf("%.2f", booking.Price),
		"Address":      booking.Customer.Address,
		"SupportPhone": utils.EnvOrDefault("SUPPORT_PHONE", "+1234567890"),
	})
	if err != nil {
		return fmt.Errorf("failed to render reminder email: %w", err)
	}

	return m.Send(booking.Customer.Email, "Reminder: Your Cleaning Service is Coming Soon!", body.String())
}

// Send dispatches a plain HTML email with no attachment.
func (m *SMTPMailer) Send(to, subject, html string) error {
	return m.sendWithAttachment(to, subject, html, "", nil)
}

func (m *SMTPMailer) sendWithAttachment(to, subject, html, attachmentName string, attachment []byte) error {
	if !m.configured() {
		log.Printf("[MOCK EMAIL] to:%s subject:%q attachment:%s (%d bytes)",
			to, subject, attachmentName, len(attachment))
		return nil
	}

	from := fmt.Sprintf("%s <%s>", m.FromName, m.Username)
	boundary := "----=_CRM_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", strings.ReplaceAll(subject, "\r\n", " ")))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(html + "\r\n")

	if len(attachment) > 0 {
		sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		sb.WriteString("Content-Type: application/pdf\r\n")
		sb.WriteString("Content-Transfer-Encoding: base64\r\n")
		sb.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", attachmentName))

		encoded := base64.StdEncoding.EncodeToString(attachment)
		for len(encoded) > 76 {
			sb.WriteString(encoded[:76] + "\r\n")
			encoded = encoded[76:]
		}
		sb.WriteString(encoded + "\r\n")
	}

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)

	if err := smtp.SendMail(addr, auth, m.Username, []string{to}, []byte(sb.String())); err != nil {
		log.Printf("failed to send email to %s: %v", to, err)
		return err
	}

	log.Printf("email sent to %s (%s)", to, subject)
	return nil
}

var _ Mailer = (*SMTPMailer)(nil)

// sentAtNow is split out so tests can pin communication timestamps.
var sentAtNow = func() time.Time { return time.Now() }
