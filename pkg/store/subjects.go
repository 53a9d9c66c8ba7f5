package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Subject is a person the user manages or works with, plus free-form
// saved notes that feed the prompt's profile-context addendum.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Role         string    `db:"role" json:"role"`
	Relationship string    `db:"relationship" json:"relationship"`
	Notes        string    `db:"notes" json:"notes"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (s *Store) CreateSubject(ctx context.Context, name, role, relationship string) (Subject, error) {
	subject := Subject{
		ID:           uuid.New().String(),
		Name:         name,
		Role:         role,
		Relationship: relationship,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subjects (id, name, role, relationship, notes, created_at)
		VALUES (?, ?, ?, ?, '', ?)
	`, subject.ID, subject.Name, subject.Role, subject.Relationship, subject.CreatedAt)
	if err != nil {
		return Subject{}, errors.Wrap(err, "creating subject")
	}
	return subject, nil
}

// GetSubject returns nil (not an error) when the subject does not exist,
// so the pipeline can degrade to its generic persona defaults.
func (s *Store) GetSubject(ctx context.Context, id string) (*Subject, error) {
	var subject Subject
	err := s.db.GetContext(ctx, &subject, `
		SELECT id, name, role, relationship, notes, created_at FROM subjects WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying subject")
	}
	return &subject, nil
}

// AppendSubjectNotes adds text to a subject's saved notes, separated
// from earlier notes by a blank line.
func (s *Store) AppendSubjectNotes(ctx context.Context, id string, notes string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE subjects
		SET notes = CASE WHEN notes = '' THEN ? ELSE notes || char(10) || char(10) || ? END
		WHERE id = ?
	`, notes, notes, id)
	return errors.Wrap(err, "appending subject notes")
}
