package coaching

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/arborhq/arbor/pkg/helpers"
)

// historyWindow is how many trailing history entries are included in the
// prompt and considered by the approach heuristics.
const historyWindow = 10

// profileAddendumHeader introduces saved profile notes appended after
// the base context block. The addendum never replaces the base context.
const profileAddendumHeader = "### Saved profile notes"

const (
	placeholderUserContext  = "{user_context}"
	placeholderName         = "{name}"
	placeholderRole         = "{role}"
	placeholderRelationship = "{relationship}"
	placeholderGuidance     = "{coaching_guidance}"
	placeholderContext      = "{context}"
	placeholderHistory      = "{conversation_history}"
	placeholderLength       = "{response_length_guidance}"
)

// knownPlaceholders is the full substitution surface; after composition
// none of these may survive in the output.
var knownPlaceholders = []string{
	placeholderUserContext,
	placeholderName,
	placeholderRole,
	placeholderRelationship,
	placeholderGuidance,
	placeholderContext,
	placeholderHistory,
	placeholderLength,
}

// ComposeRequest carries every input the compositor substitutes. All
// fields beyond Mode are optional; missing ones degrade to neutral text.
type ComposeRequest struct {
	Mode            DialogueMode
	Subject         *Subject
	Fragments       []GuidanceFragment
	UserContext     string
	Context         ContextBundle
	History         []HistoryEntry
	LengthDirective string
}

// Compositor merges guidance fragments, context and history into one
// instruction string. It is pure and deterministic: identical requests
// produce byte-identical output.
type Compositor struct {
	templates Templates
}

func NewCompositor(templates Templates) *Compositor {
	return &Compositor{templates: templates}
}

// Compose selects the base template for the request's mode and performs
// the ordered, idempotent substitutions. A residual placeholder after
// substitution is an internal error; the result must never be shipped.
func (c *Compositor) Compose(req ComposeRequest) (string, error) {
	prompt, err := c.baseTemplate(req.Mode)
	if err != nil {
		return "", err
	}

	prompt = strings.ReplaceAll(prompt, placeholderUserContext, userContextText(req.UserContext))

	if req.Mode == ModePersonFocused {
		prompt = substituteSubject(prompt, req.Subject)
	}

	prompt = strings.ReplaceAll(prompt, placeholderGuidance, guidanceText(req.Fragments))
	prompt = strings.ReplaceAll(prompt, placeholderContext, contextText(req.Context))
	prompt = strings.ReplaceAll(prompt, placeholderHistory, historyText(req.History))
	prompt = strings.ReplaceAll(prompt, placeholderLength, req.LengthDirective)

	if leftover := residualPlaceholders(prompt); len(leftover) > 0 {
		return "", errors.Errorf("composed prompt has unresolved placeholders: %s", strings.Join(leftover, ", "))
	}

	return prompt, nil
}

func (c *Compositor) baseTemplate(mode DialogueMode) (string, error) {
	switch mode {
	case ModePersonFocused:
		return c.templates.PersonFocused, nil
	case ModeSelfReflection:
		return c.templates.SelfReflection, nil
	case ModeGeneralStrategic:
		return c.templates.GeneralStrategic, nil
	default:
		return "", errors.Errorf("unknown dialogue mode %q", mode)
	}
}

func substituteSubject(prompt string, subject *Subject) string {
	name, role, relationship := "this person", "an unspecified role", "team member"
	if subject != nil {
		if subject.Name != "" {
			name = subject.Name
		}
		if subject.Role != "" {
			role = subject.Role
		}
		if subject.Relationship != "" {
			relationship = subject.Relationship
		}
	}
	prompt = strings.ReplaceAll(prompt, placeholderName, name)
	prompt = strings.ReplaceAll(prompt, placeholderRole, role)
	return strings.ReplaceAll(prompt, placeholderRelationship, relationship)
}

func userContextText(userContext string) string {
	if userContext == "" {
		return "No stored preferences for this user yet."
	}
	return userContext
}

func guidanceText(fragments []GuidanceFragment) string {
	lines := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if fragment.Text == "" {
			continue
		}
		lines = append(lines, fragment.Text)
	}
	if len(lines) == 0 {
		return "Coach in whatever way serves the user best this turn."
	}
	return strings.Join(lines, "\n")
}

func contextText(bundle ContextBundle) string {
	base := bundle.Text
	if !bundle.HasContext || base == "" {
		base = "No background context available."
	}
	if bundle.ProfileAddendum != "" {
		base = base + "\n\n" + profileAddendumHeader + "\n" + bundle.ProfileAddendum
	}
	return base
}

func historyText(history []HistoryEntry) string {
	recent := helpers.SafeLastN(history, historyWindow)
	if len(recent) == 0 {
		return "(no prior messages)"
	}
	lines := make([]string, 0, len(recent))
	for _, entry := range recent {
		lines = append(lines, fmt.Sprintf("%s: %s", entry.Speaker, entry.Text))
	}
	return strings.Join(lines, "\n")
}

func residualPlaceholders(prompt string) []string {
	var leftover []string
	for _, placeholder := range knownPlaceholders {
		if strings.Contains(prompt, placeholder) {
			leftover = append(leftover, placeholder)
		}
	}
	return leftover
}
