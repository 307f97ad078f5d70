package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// ContactRepo stores contact-form messages.  Rows are never updated.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

// Create inserts m and returns it with ID and CreatedAt populated.
func (r *ContactRepo) Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages (name, email, message) VALUES (?,?,?)", m.Name, m.Email, m.Message)
	if err != nil {
		return model.ContactMessage{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContactMessage{}, err
	}
	m.ID = uint64(id)
	err = r.db.QueryRowContext(ctx, "SELECT created_at FROM contact_messages WHERE id = ?", m.ID).Scan(&m.CreatedAt)
	return m, err
}

// List returns all messages, newest first.
func (r *ContactRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, email, message, created_at FROM contact_messages ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ContactMessage, 0)
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
