package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/arborhq/arbor/pkg/coaching"
	"github.com/arborhq/arbor/pkg/store"
)

// Speaker labels used in stored messages and prompt history.
const (
	speakerUser      = "User"
	speakerAssistant = "Arbor"
)

type createSubjectRequest struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Relationship string `json:"relationship"`
}

func (s *Server) createSubject(w http.ResponseWriter, r *http.Request) {
	var req createSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	subject, err := s.store.CreateSubject(r.Context(), req.Name, req.Role, req.Relationship)
	if err != nil {
		s.logger.Error("failed to create subject", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create subject")
		return
	}
	s.writeJSON(w, http.StatusCreated, subject)
}

type updatePreferencesRequest struct {
	Experience string `json:"experience"`
	Tone       string `json:"tone"`
}

func (s *Server) updatePreferences(w http.ResponseWriter, r *http.Request) {
	var req updatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prefs := coaching.Preferences{
		Experience: coaching.ExperienceLevel(req.Experience),
		Tone:       coaching.TonePreference(req.Tone),
	}
	if err := s.store.UpsertPreferences(r.Context(), store.DefaultUserID, prefs); err != nil {
		s.logger.Error("failed to update preferences", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}
	s.writeJSON(w, http.StatusOK, prefs)
}

type createConversationRequest struct {
	SubjectID string `json:"subject_id"`
	Mode      string `json:"mode"`
}

func (s *Server) createConversation(w http.ResponseWriter, r *http.Request) {
	var req createConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode := coaching.DialogueMode(req.Mode)
	switch mode {
	case coaching.ModePersonFocused, coaching.ModeSelfReflection, coaching.ModeGeneralStrategic:
	default:
		s.writeError(w, http.StatusBadRequest, "unknown mode")
		return
	}
	conversation, err := s.store.CreateConversation(r.Context(), req.SubjectID, req.Mode)
	if err != nil {
		s.logger.Error("failed to create conversation", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create conversation")
		return
	}
	s.writeJSON(w, http.StatusCreated, conversation)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	messages, err := s.store.GetMessages(r.Context(), conversationID)
	if err != nil {
		s.logger.Error("failed to list messages", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	s.writeJSON(w, http.StatusOK, messages)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	Reply       string                     `json:"reply"`
	Situation   coaching.SituationTag      `json:"situation"`
	Approach    coaching.ApproachTag       `json:"approach"`
	Suggestions []coaching.SuggestionGroup `json:"suggestions"`
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	conversation, err := s.store.GetConversation(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		s.logger.Error("failed to load conversation", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}

	var subject *store.Subject
	if conversation.SubjectID.Valid {
		subject, err = s.store.GetSubject(r.Context(), conversation.SubjectID.String)
		if err != nil {
			s.logger.Error("failed to load subject", "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to load subject")
			return
		}
	}

	prefs, err := s.store.GetPreferences(r.Context(), store.DefaultUserID)
	if err != nil {
		// Personalization is an enhancement; degrade to unknowns.
		s.logger.Error("failed to load preferences", "error", err)
		prefs = coaching.Preferences{Experience: coaching.ExperienceUnknown, Tone: coaching.ToneUnknown}
	}

	messages, err := s.store.GetMessages(r.Context(), conversationID)
	if err != nil {
		s.logger.Error("failed to load history", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	input := coaching.TurnInput{
		ConversationID: conversationID,
		Utterance:      req.Text,
		Mode:           coaching.DialogueMode(conversation.Mode),
		Subject:        toCoachingSubject(subject),
		Preferences:    prefs,
		History: lo.Map(messages, func(m store.Message, _ int) coaching.HistoryEntry {
			return coaching.HistoryEntry{Speaker: m.Speaker, Text: m.Text}
		}),
		Context: buildContextBundle(subject),
	}

	output, err := s.engine.RespondToTurn(r.Context(), input)
	if err != nil {
		s.logger.Error("pipeline failed", "conversation_id", conversationID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to produce a reply")
		return
	}

	// Persist the user message first; a reply without the turn that
	// prompted it would skew the next turn's history window, so the
	// assistant write is skipped when the user write fails.
	if _, err := s.store.AddMessage(r.Context(), conversationID, speakerUser, req.Text); err != nil {
		s.logger.Error("failed to persist user message", "error", err)
	} else if _, err := s.store.AddMessage(r.Context(), conversationID, speakerAssistant, output.Reply); err != nil {
		s.logger.Error("failed to persist assistant message", "error", err)
	}

	s.writeJSON(w, http.StatusOK, sendMessageResponse{
		Reply:       output.Reply,
		Situation:   output.Situation,
		Approach:    output.Approach,
		Suggestions: output.Suggestions,
	})
}

func (s *Server) listSavedSuggestions(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	saved, err := s.store.ListSavedSuggestions(r.Context(), conversationID)
	if err != nil {
		s.logger.Error("failed to list saved suggestions", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list saved suggestions")
		return
	}
	s.writeJSON(w, http.StatusOK, saved)
}

type saveSuggestionRequest struct {
	Group coaching.SuggestionGroup `json:"group"`
}

// saveSuggestion persists a user-approved suggestion group. Approved
// notes also flow back into the subject's saved profile notes.
func (s *Server) saveSuggestion(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	var req saveSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Group.ID == "" {
		s.writeError(w, http.StatusBadRequest, "group is required")
		return
	}

	saved, err := s.store.SaveSuggestionGroup(r.Context(), conversationID, req.Group)
	if err != nil {
		s.logger.Error("failed to save suggestion group", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save suggestion group")
		return
	}

	if req.Group.Type == coaching.SuggestionNotes && len(req.Group.Items) > 0 {
		if conversation, err := s.store.GetConversation(r.Context(), conversationID); err == nil && conversation.SubjectID.Valid {
			notes := strings.Join(req.Group.Items, "\n")
			if err := s.store.AppendSubjectNotes(r.Context(), conversation.SubjectID.String, notes); err != nil {
				s.logger.Error("failed to append subject notes", "error", err)
			}
		}
	}

	s.writeJSON(w, http.StatusCreated, saved)
}

func toCoachingSubject(subject *store.Subject) *coaching.Subject {
	if subject == nil {
		return nil
	}
	return &coaching.Subject{
		Name:         subject.Name,
		Role:         subject.Role,
		Relationship: subject.Relationship,
	}
}

// buildContextBundle assembles the pre-formatted background block the
// compositor inserts verbatim. Saved subject notes travel separately as
// the profile addendum so they append after the base context.
func buildContextBundle(subject *store.Subject) coaching.ContextBundle {
	if subject == nil {
		return coaching.ContextBundle{}
	}
	parts := []string{fmt.Sprintf("%s is the user's %s.", subject.Name, orUnknown(subject.Relationship, "team member"))}
	if subject.Role != "" {
		parts = append(parts, fmt.Sprintf("They work as %s.", subject.Role))
	}
	return coaching.ContextBundle{
		Text:            strings.Join(parts, " "),
		HasContext:      true,
		ProfileAddendum: subject.Notes,
	}
}

func orUnknown(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
