// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/config"
)

const contactTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.RestaurantName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">New message for {{.RestaurantName}}</h1>
        <p><strong>From:</strong> {{.VisitorName}} &lt;{{.VisitorEmail}}&gt;</p>
        <p><strong>Received:</strong> {{.SubmittedAt}}</p>
        <p style="white-space: pre-wrap;">{{.Message}}</p>
        <hr>
        <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.RestaurantName}}</p>
    </div>
</body>
</html>`

// EmailService sends notification emails through the configured provider
type EmailService struct {
	config    *config.Config
	templates map[string]*template.Template
	client    *http.Client
	log       *logrus.Logger
	now       func() time.Time

	resendURL   string
	sendGridURL string
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config, log *logrus.Logger) *EmailService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EmailService{
		config: cfg,
		templates: map[string]*template.Template{
			string(EmailTypeContactNotification): template.Must(template.New("contact").Parse(contactTemplate)),
		},
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log:         log,
		now:         time.Now,
		resendURL:   "https://api.resend.com/emails",
		sendGridURL: "https://api.sendgrid.com/v3/mail/send",
	}
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "resend":
		return s.sendResendEmail(ctx, email)
	case "sendgrid":
		return s.sendSendGridEmail(ctx, email)
	case "log", "":
		s.log.WithFields(logrus.Fields{
			"to":      email.To,
			"subject": email.Subject,
			"type":    email.Type,
		}).Info("Email not sent, log provider configured")
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendContactNotification forwards a contact form submission to the restaurant
func (s *EmailService) SendContactNotification(ctx context.Context, name, visitorEmail, message string) error {
	to := s.config.Restaurant.ContactEmail
	if to == "" {
		return fmt.Errorf("restaurant contact email not configured")
	}

	data := newContactNotificationData(s.config.Restaurant.Name, name, visitorEmail, message, s.now())
	htmlContent, err := s.renderTemplate(string(EmailTypeContactNotification), data)
	if err != nil {
		return fmt.Errorf("failed to render contact notification template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{to},
		Subject:     fmt.Sprintf("New message from %s", name),
		HTMLContent: htmlContent,
		ReplyTo:     visitorEmail,
		Type:        EmailTypeContactNotification,
		Data:        map[string]interface{}{"visitor_email": visitorEmail},
	})
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

func (s *EmailService) fromAddress() string {
	if s.config.External.Email.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.External.Email.FromName, s.config.External.Email.FromEmail)
	}
	return s.config.External.Email.FromEmail
}

func (s *EmailService) replyTo(email *Email) string {
	if email.ReplyTo != "" {
		return email.ReplyTo
	}
	return s.config.External.Email.ReplyTo
}
