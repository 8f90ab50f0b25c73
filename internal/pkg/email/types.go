// internal/pkg/email/types.go
package email

import "time"

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeContactNotification EmailType = "contact_notification"
)

// Email represents an email message
type Email struct {
	To          []string               `json:"to"`
	Subject     string                 `json:"subject"`
	HTMLContent string                 `json:"html_content"`
	ReplyTo     string                 `json:"reply_to,omitempty"`
	Type        EmailType              `json:"type"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// ContactNotificationData is rendered into the message the restaurant receives
// when a visitor submits the contact form
type ContactNotificationData struct {
	RestaurantName string
	VisitorName    string
	VisitorEmail   string
	Message        string
	SubmittedAt    string
	Year           int
}

func newContactNotificationData(restaurant, name, email, message string, now time.Time) ContactNotificationData {
	return ContactNotificationData{
		RestaurantName: restaurant,
		VisitorName:    name,
		VisitorEmail:   email,
		Message:        message,
		SubmittedAt:    now.Format("Mon, 02 Jan 2006 15:04 MST"),
		Year:           now.Year(),
	}
}
