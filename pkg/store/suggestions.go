package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/arborhq/arbor/pkg/coaching"
)

// SavedSuggestion is a suggestion group the user approved for save-back.
type SavedSuggestion struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	GroupID        string    `db:"group_id" json:"group_id"`
	Type           string    `db:"type" json:"type"`
	Title          string    `db:"title" json:"title"`
	BodyMarkdown   string    `db:"body_markdown" json:"body_markdown"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

func (s *Store) SaveSuggestionGroup(ctx context.Context, conversationID string, group coaching.SuggestionGroup) (SavedSuggestion, error) {
	saved := SavedSuggestion{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		GroupID:        group.ID,
		Type:           string(group.Type),
		Title:          group.Title,
		BodyMarkdown:   group.BodyMarkdown,
		CreatedAt:      time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_suggestions (id, conversation_id, group_id, type, title, body_markdown, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, saved.ID, saved.ConversationID, saved.GroupID, saved.Type, saved.Title, saved.BodyMarkdown, saved.CreatedAt)
	if err != nil {
		return SavedSuggestion{}, errors.Wrap(err, "saving suggestion group")
	}
	return saved, nil
}

func (s *Store) ListSavedSuggestions(ctx context.Context, conversationID string) ([]SavedSuggestion, error) {
	var saved []SavedSuggestion
	err := s.db.SelectContext(ctx, &saved, `
		SELECT id, conversation_id, group_id, type, title, body_markdown, created_at
		FROM saved_suggestions WHERE conversation_id = ? ORDER BY created_at ASC, id ASC
	`, conversationID)
	if err != nil {
		return nil, errors.Wrap(err, "querying saved suggestions")
	}
	return saved, nil
}
