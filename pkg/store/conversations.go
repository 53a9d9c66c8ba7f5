package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Conversation struct {
	ID        string         `db:"id" json:"id"`
	SubjectID sql.NullString `db:"subject_id" json:"subject_id"`
	Mode      string         `db:"mode" json:"mode"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	Speaker        string    `db:"speaker" json:"speaker"`
	Text           string    `db:"text" json:"text"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

func (s *Store) CreateConversation(ctx context.Context, subjectID string, mode string) (Conversation, error) {
	conversation := Conversation{
		ID:        uuid.New().String(),
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
	}
	if subjectID != "" {
		conversation.SubjectID = sql.NullString{String: subjectID, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, subject_id, mode, created_at) VALUES (?, ?, ?, ?)
	`, conversation.ID, conversation.SubjectID, conversation.Mode, conversation.CreatedAt)
	if err != nil {
		return Conversation{}, errors.Wrap(err, "creating conversation")
	}
	return conversation, nil
}

func (s *Store) GetConversation(ctx context.Context, id string) (Conversation, error) {
	var conversation Conversation
	err := s.db.GetContext(ctx, &conversation, `
		SELECT id, subject_id, mode, created_at FROM conversations WHERE id = ?
	`, id)
	if err != nil {
		return Conversation{}, errors.Wrap(err, "querying conversation")
	}
	return conversation, nil
}

func (s *Store) AddMessage(ctx context.Context, conversationID, speaker, text string) (Message, error) {
	message := Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Speaker:        speaker,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, speaker, text, created_at) VALUES (?, ?, ?, ?, ?)
	`, message.ID, message.ConversationID, message.Speaker, message.Text, message.CreatedAt)
	if err != nil {
		return Message{}, errors.Wrap(err, "adding message")
	}
	return message, nil
}

// GetMessages returns all messages of a conversation in insertion order.
func (s *Store) GetMessages(ctx context.Context, conversationID string) ([]Message, error) {
	var messages []Message
	err := s.db.SelectContext(ctx, &messages, `
		SELECT id, conversation_id, speaker, text, created_at
		FROM messages WHERE conversation_id = ? ORDER BY created_at ASC, id ASC
	`, conversationID)
	if err != nil {
		return nil, errors.Wrap(err, "querying messages")
	}
	return messages, nil
}
