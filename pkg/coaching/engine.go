package coaching

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go"
	"github.com/pkg/errors"

	"github.com/arborhq/arbor/pkg/ai"
	"github.com/arborhq/arbor/pkg/helpers"
)

// NATS subjects for fire-and-forget pipeline events. Publish failures
// are logged and swallowed; they never affect the user-visible reply.
const (
	traceSubject             = "arbor.analytics.trace"
	suggestionsSubjectFormat = "arbor.suggestions.%s"
)

// TurnInput carries one user turn plus everything the stored collaborators
// know about it. Preferences and Context may be partially or fully absent.
type TurnInput struct {
	ConversationID string
	Utterance      string
	Mode           DialogueMode
	Subject        *Subject
	Preferences    Preferences
	History        []HistoryEntry
	Context        ContextBundle
}

// TurnOutput is the reply plus everything derived from it.
type TurnOutput struct {
	Reply       string
	Situation   SituationTag
	Approach    ApproachTag
	Suggestions []SuggestionGroup
	Prompt      string
}

// Engine runs the dialogue-shaping pipeline for one turn: guidance
// decisions, prompt composition, the completion call, and suggestion
// extraction. All decision functions are pure and request-scoped, so
// Engine is safe for arbitrary concurrent use.
type Engine struct {
	logger     *log.Logger
	ai         ai.Completions
	compositor *Compositor
	extractor  *Extractor
	nc         *nats.Conn
	model      string
}

func NewEngine(logger *log.Logger, aiService ai.Completions, compositor *Compositor, nc *nats.Conn, model string) *Engine {
	return &Engine{
		logger:     logger,
		ai:         aiService,
		compositor: compositor,
		extractor:  NewExtractor(logger),
		nc:         nc,
		model:      model,
	}
}

// RespondToTurn composes the instruction for one turn, requests a
// completion, and mines the reply for suggestions. The completion call is
// the only asynchronous boundary: composition finishes before it starts
// and extraction begins only once the full reply text is available.
func (e *Engine) RespondToTurn(ctx context.Context, in TurnInput) (*TurnOutput, error) {
	trace := NewTrace(e.logger)

	recentHistory := helpers.SafeLastN(in.History, historyWindow)

	situation := Classify(in.Utterance)
	approach := SelectApproach(in.Utterance, recentHistory, in.Preferences.Experience)

	fragments := []GuidanceFragment{
		{Origin: "situation", Text: situationGuidance[situation]},
		{Origin: "approach", Text: approachGuidance[approach]},
	}

	prompt, err := e.compositor.Compose(ComposeRequest{
		Mode:            in.Mode,
		Subject:         in.Subject,
		Fragments:       fragments,
		UserContext:     ResolvePersonalization(in.Preferences),
		Context:         in.Context,
		History:         recentHistory,
		LengthDirective: LengthGuidance(in.Utterance, in.Preferences.Experience, recentHistory),
	})
	if err != nil {
		return nil, errors.Wrap(err, "composing coaching prompt")
	}
	trace.Record(CheckpointComposed)

	completion, err := e.ai.Completions(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(prompt),
		openai.UserMessage(in.Utterance),
	}, e.model)
	if err != nil {
		return nil, errors.Wrap(err, "completion request failed")
	}
	trace.Record(CheckpointReplyReceived)

	subjectName := ""
	if in.Subject != nil {
		subjectName = in.Subject.Name
	}
	suggestions := e.extractor.Extract(completion.Content, subjectName)
	trace.Record(CheckpointExtracted)

	report := trace.Finish(map[string]any{
		"conversation_id": in.ConversationID,
		"mode":            in.Mode,
		"situation":       situation,
		"approach":        approach,
		"suggestions":     len(suggestions),
	})
	e.publish(traceSubject, report)
	if len(suggestions) > 0 {
		e.publish(fmt.Sprintf(suggestionsSubjectFormat, in.ConversationID), suggestions)
	}

	return &TurnOutput{
		Reply:       completion.Content,
		Situation:   situation,
		Approach:    approach,
		Suggestions: suggestions,
		Prompt:      prompt,
	}, nil
}

func (e *Engine) publish(subject string, payload any) {
	if e.nc == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		e.logger.Error("failed to marshal event", "subject", subject, "error", err)
		return
	}
	if err := e.nc.Publish(subject, data); err != nil {
		e.logger.Error("failed to publish event", "subject", subject, "error", err)
	}
}
