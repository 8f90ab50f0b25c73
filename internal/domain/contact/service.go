// internal/domain/contact/service.go
package contact

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	MsgName    = "Please enter your full name."
	MsgEmail   = "Please enter a valid email."
	MsgMessage = "Message should be at least 10 characters."
	MsgThanks  = "Thanks! We will be in touch shortly."
)

// formSpace is the whitespace class a browser uses for \s and trim(). RE2's
// \s alone is ASCII only.
const formSpace = `\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var emailPattern = regexp.MustCompile(`^[^` + formSpace + `@]+@[^` + formSpace + `@]+\.[^` + formSpace + `@]+$`)

func isFormSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x2028, 0x2029, 0xFEFF:
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// textLength counts UTF-16 code units, which is how the browser measures
// form input. Characters outside the BMP count twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

// Submission is a filled-in contact or reservation form
type Submission struct {
	Name    string `json:"name" form:"name" validate:"text_min=2"`
	Email   string `json:"email" form:"email" validate:"site_email"`
	Message string `json:"message" form:"message" validate:"text_min=10"`
}

// Result is what the form status line shows
type Result struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// OK reports whether the submission was accepted
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Notifier forwards accepted submissions to the restaurant
type Notifier interface {
	SendContactNotification(ctx context.Context, name, email, message string) error
}

// Service validates contact submissions and notifies the restaurant
type Service struct {
	validate *validator.Validate
	notifier Notifier
	log      *logrus.Logger
}

// NewService creates a contact service. notifier may be nil.
func NewService(notifier Notifier, log *logrus.Logger) *Service {
	v := validator.New()
	// Both rules are registered once at construction, so the errors can be ignored.
	_ = v.RegisterValidation("site_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("text_min", func(fl validator.FieldLevel) bool {
		min, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return textLength(fl.Field().String()) >= min
	})

	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Service{
		validate: v,
		notifier: notifier,
		log:      log,
	}
}

// Validate trims the fields and returns the user-facing messages for every
// failing field, in form order.
func (s *Service) Validate(sub *Submission) []string {
	sub.Name = strings.TrimFunc(sub.Name, isFormSpace)
	sub.Email = strings.TrimFunc(sub.Email, isFormSpace)
	sub.Message = strings.TrimFunc(sub.Message, isFormSpace)

	err := s.validate.Struct(sub)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()] = true
	}

	var msgs []string
	if failed["Name"] {
		msgs = append(msgs, MsgName)
	}
	if failed["Email"] {
		msgs = append(msgs, MsgEmail)
	}
	if failed["Message"] {
		msgs = append(msgs, MsgMessage)
	}
	return msgs
}

// Submit validates sub and, when it passes, notifies the restaurant. A failed
// notification is logged; the visitor still sees the success message.
func (s *Service) Submit(ctx context.Context, sub Submission) Result {
	if msgs := s.Validate(&sub); len(msgs) > 0 {
		return Result{
			Status:  StatusError,
			Message: strings.Join(msgs, " "),
			Errors:  msgs,
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendContactNotification(ctx, sub.Name, sub.Email, sub.Message); err != nil {
			s.log.WithError(err).WithField("from", sub.Email).Error("Failed to send contact notification")
		}
	}

	s.log.WithField("from", sub.Email).Info("Contact form submitted")
	return Result{Status: StatusSuccess, Message: MsgThanks}
}
