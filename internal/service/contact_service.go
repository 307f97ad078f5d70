package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// ContactStore persists contact-form messages.
type ContactStore interface {
	Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactService struct {
	store ContactStore
}

func NewContactService(store ContactStore) *ContactService { return &ContactService{store: store} }

// Send stores a message from an anonymous visitor.
func (s *ContactService) Send(ctx context.Context, in ContactInput) (model.ContactMessage, error) {
	m := model.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
	var missing []string
	if m.Name == "" {
		missing = append(missing, "name")
	}
	if m.Email == "" {
		missing = append(missing, "email")
	}
	if m.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return model.ContactMessage{}, invalid("please fill in all required fields: %s", strings.Join(missing, ", "))
	}
	if !strings.Contains(m.Email, "@") {
		return model.ContactMessage{}, invalid("email address is not valid")
	}

	out, err := s.store.Create(ctx, m)
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("store contact message: %w", err)
	}
	return out, nil
}

// List returns every message, newest first.
func (s *ContactService) List(ctx context.Context, p model.Principal) ([]model.ContactMessage, error) {
	if err := authorize(p, model.CapabilityReadContactMessages); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}
