package model

import "time"

// ContactMessage is a write-once message left through the public contact
// form.  It has no status and no owner.
type ContactMessage struct {
	ID        uint64    `json:"id"`        // contact_messages.id
	Name      string    `json:"name"`      // contact_messages.name
	Email     string    `json:"email"`     // contact_messages.email
	Message   string    `json:"message"`   // contact_messages.message
	CreatedAt time.Time `json:"createdAt"` // contact_messages.created_at
}
