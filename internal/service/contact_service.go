package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"littlestars/internal/notify"
	"littlestars/internal/validation"
)

var ErrMissingFields = errors.New("required fields missing")

// contactRequired are the form fields that must be filled in
var contactRequired = []string{"name", "email", "message"}

// ContactMessage is a submission of the contact form
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func (m ContactMessage) fields() map[string]string {
	return map[string]string{
		"name":    m.Name,
		"email":   m.Email,
		"phone":   m.Phone,
		"message": m.Message,
	}
}

type contactMailer interface {
	IsEnabled() bool
	SendContactMessage(ctx context.Context, inbox string, msg ContactMessage) error
}

// ContactService accepts contact-form submissions
type ContactService struct {
	mailer contactMailer
	inbox  string
}

// NewContactService creates a contact service. Messages are forwarded to
// inbox when the mailer is enabled.
func NewContactService(mailer contactMailer, inbox string) *ContactService {
	return &ContactService{mailer: mailer, inbox: inbox}
}

// Submit checks the form and returns the names of the fields that need
// attention. Delivery problems are logged, not shown to the visitor.
func (s *ContactService) Submit(ctx context.Context, v *Visitor, msg ContactMessage) ([]string, error) {
	if missing := validation.MissingFields(msg.fields(), contactRequired...); len(missing) > 0 {
		v.Notifier.Notify("Please fill in all required fields.", notify.Error)
		return missing, ErrMissingFields
	}
	msg.Email = strings.TrimSpace(msg.Email)
	if err := validation.ValidateEmail(msg.Email); err != nil {
		v.Notifier.Notify("Please enter a valid email address.", notify.Error)
		return []string{"email"}, err
	}
	if err := validation.ValidateMessage(msg.Message); err != nil {
		v.Notifier.Notify("Your message is too long.", notify.Error)
		return []string{"message"}, err
	}

	log.Printf("Contact message received from %s", msg.Email)
	if s.mailer != nil && s.mailer.IsEnabled() && s.inbox != "" {
		if err := s.mailer.SendContactMessage(ctx, s.inbox, msg); err != nil {
			log.Printf("Failed to forward contact message: %v", err)
		}
	}

	v.Notifier.Notify("Thank you! Your message has been sent successfully. We'll get back to you soon!", notify.Success)
	return nil, nil
}
