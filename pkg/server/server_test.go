package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhq/arbor/pkg/ai"
	"github.com/arborhq/arbor/pkg/coaching"
	"github.com/arborhq/arbor/pkg/store"
)

func newTestServer(t *testing.T, mock *ai.MockService) (*Server, *store.Store) {
	t.Helper()
	logger := log.New(nil)

	st, err := store.NewStore(logger, filepath.Join(t.TempDir(), "arbor_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	engine := coaching.NewEngine(logger, mock, coaching.NewCompositor(coaching.DefaultTemplates()), nil, "test-model")
	return NewServer(logger, st, engine), st
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestSendMessageEndToEnd(t *testing.T) {
	mock := &ai.MockService{Reply: "Start here:\n- Set up a weekly 1:1 with Bob\n- Put the expectations in writing"}
	srv, st := newTestServer(t, mock)
	handler := srv.Handler()

	res := doJSON(t, handler, http.MethodPost, "/api/subjects", map[string]string{
		"name": "Bob", "role": "staff engineer", "relationship": "direct report",
	})
	require.Equal(t, http.StatusCreated, res.Code)
	var subject store.Subject
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &subject))

	res = doJSON(t, handler, http.MethodPost, "/api/conversations", map[string]string{
		"subject_id": subject.ID, "mode": string(coaching.ModePersonFocused),
	})
	require.Equal(t, http.StatusCreated, res.Code)
	var conversation store.Conversation
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &conversation))

	res = doJSON(t, handler, http.MethodPost, fmt.Sprintf("/api/conversations/%s/messages", conversation.ID), map[string]string{
		"text": "Bob is underperforming and I need to decide today, it's urgent",
	})
	require.Equal(t, http.StatusOK, res.Code)

	var reply sendMessageResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &reply))
	assert.Equal(t, mock.Reply, reply.Reply)
	assert.Equal(t, coaching.SituationPerformance, reply.Situation)
	assert.Equal(t, coaching.ApproachUrgent, reply.Approach)
	require.Len(t, reply.Suggestions, 1)
	assert.Equal(t, coaching.SuggestionSchedule, reply.Suggestions[0].Type)

	// Both turns persisted.
	messages, err := st.GetMessages(context.Background(), conversation.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, speakerUser, messages[0].Speaker)
	assert.Equal(t, speakerAssistant, messages[1].Speaker)
}

func TestSendMessageValidation(t *testing.T) {
	srv, _ := newTestServer(t, &ai.MockService{Reply: "ok"})
	handler := srv.Handler()

	res := doJSON(t, handler, http.MethodPost, "/api/conversations/missing/messages", map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = doJSON(t, handler, http.MethodPost, "/api/conversations/missing/messages", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestSendMessageStoreFailureIsNotNotFound(t *testing.T) {
	srv, st := newTestServer(t, &ai.MockService{Reply: "ok"})
	handler := srv.Handler()

	// A failing database is a server fault, not a missing conversation.
	require.NoError(t, st.Close())

	res := doJSON(t, handler, http.MethodPost, "/api/conversations/some-id/messages", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusInternalServerError, res.Code)
}

func TestSendMessageNoReplyWithoutUserTurn(t *testing.T) {
	logger := log.New(nil)
	dbPath := filepath.Join(t.TempDir(), "arbor_test.db")
	st, err := store.NewStore(logger, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	mock := &ai.MockService{Reply: "Try this:\n- Write the expectations down"}
	engine := coaching.NewEngine(logger, mock, coaching.NewCompositor(coaching.DefaultTemplates()), nil, "test-model")
	handler := NewServer(logger, st, engine).Handler()

	ctx := context.Background()
	conversation, err := st.CreateConversation(ctx, "", string(coaching.ModeGeneralStrategic))
	require.NoError(t, err)

	// A second connection to the same file installs a trigger that fails
	// inserts of user turns only, leaving the assistant insert able to
	// succeed if it were attempted.
	raw, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = raw.Close()
	})
	_, err = raw.Exec(`CREATE TRIGGER fail_user_turns BEFORE INSERT ON messages
		WHEN NEW.speaker = 'User'
		BEGIN SELECT RAISE(ABORT, 'simulated write failure'); END`)
	require.NoError(t, err)

	res := doJSON(t, handler, http.MethodPost, fmt.Sprintf("/api/conversations/%s/messages", conversation.ID), map[string]string{
		"text": "How should I structure our planning cycles?",
	})
	require.Equal(t, http.StatusOK, res.Code)

	// Stored history must never contain a reply without the turn that
	// prompted it.
	messages, err := st.GetMessages(ctx, conversation.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestCreateConversationRejectsUnknownMode(t *testing.T) {
	srv, _ := newTestServer(t, &ai.MockService{Reply: "ok"})
	handler := srv.Handler()

	res := doJSON(t, handler, http.MethodPost, "/api/conversations", map[string]string{"mode": "freeform"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestSaveSuggestionAppendsNotes(t *testing.T) {
	srv, st := newTestServer(t, &ai.MockService{Reply: "ok"})
	handler := srv.Handler()
	ctx := context.Background()

	subject, err := st.CreateSubject(ctx, "Maria", "designer", "direct report")
	require.NoError(t, err)
	conversation, err := st.CreateConversation(ctx, subject.ID, string(coaching.ModePersonFocused))
	require.NoError(t, err)

	group := coaching.SuggestionGroup{
		ID:           "notes_0",
		Type:         coaching.SuggestionNotes,
		Title:        "Notes about Maria",
		BodyMarkdown: "### Notes about Maria\n\n- [ ] Remember she prefers async updates\n",
		PreviewText:  "Remember she prefers async updates",
		Items:        []string{"Remember she prefers async updates"},
	}

	res := doJSON(t, handler, http.MethodPost, fmt.Sprintf("/api/conversations/%s/suggestions", conversation.ID), map[string]any{"group": group})
	require.Equal(t, http.StatusCreated, res.Code)

	saved, err := st.ListSavedSuggestions(ctx, conversation.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)

	// Approved notes flow back into the subject profile.
	updated, err := st.GetSubject(ctx, subject.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Contains(t, updated.Notes, "Remember she prefers async updates")
}

func TestUpdatePreferences(t *testing.T) {
	srv, st := newTestServer(t, &ai.MockService{Reply: "ok"})
	handler := srv.Handler()

	res := doJSON(t, handler, http.MethodPut, "/api/preferences", map[string]string{
		"experience": "new", "tone": "warm",
	})
	require.Equal(t, http.StatusOK, res.Code)

	prefs, err := st.GetPreferences(context.Background(), store.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, coaching.ExperienceNew, prefs.Experience)
	assert.Equal(t, coaching.ToneWarm, prefs.Tone)
}
