// cmd/mailcheck/main.go sends a sample contact notification through the
// configured email provider.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/config"
	"github.com/your-org/restaurant-site/internal/domain/contact"
	"github.com/your-org/restaurant-site/internal/pkg/email"
	"github.com/your-org/restaurant-site/internal/pkg/logger"
)

func main() {
	name := flag.String("name", "Mail Check", "visitor name on the sample message")
	from := flag.String("from", "visitor@example.com", "visitor email on the sample message")
	message := flag.String("message", "This is a test message from the contact form.", "sample message body")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log := logger.New(cfg.Logging)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The sample runs through the same validation as the form so a bad flag
	// is reported before anything is sent.
	svc := contact.NewService(nil, log)
	sub := contact.Submission{Name: *name, Email: *from, Message: *message}
	if msgs := svc.Validate(&sub); len(msgs) > 0 {
		log.WithField("errors", msgs).Fatal("Sample submission is invalid")
	}

	mailer := email.NewEmailService(cfg, log)
	if err := mailer.SendContactNotification(ctx, sub.Name, sub.Email, sub.Message); err != nil {
		log.WithError(err).WithField("provider", cfg.External.Email.Provider).Fatal("Send failed")
	}

	log.WithFields(logrus.Fields{
		"provider": cfg.External.Email.Provider,
		"to":       cfg.Restaurant.ContactEmail,
	}).Info("Contact notification sent")
}
