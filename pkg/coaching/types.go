package coaching

// DialogueMode selects the base template and whether subject
// substitutions apply.
type DialogueMode string

const (
	ModePersonFocused    DialogueMode = "person_focused"
	ModeSelfReflection   DialogueMode = "self_reflection"
	ModeGeneralStrategic DialogueMode = "general_strategic"
)

// SituationTag is the classified concern category of an utterance.
type SituationTag string

const (
	SituationSelfReflection SituationTag = "self_reflection"
	SituationInterpersonal  SituationTag = "interpersonal"
	SituationPerformance    SituationTag = "performance"
	SituationStrategic      SituationTag = "strategic"
	SituationTactical       SituationTag = "tactical"
	SituationNone           SituationTag = ""
)

// ApproachTag is the selected coaching stance.
type ApproachTag string

const (
	ApproachUrgent        ApproachTag = "urgent"
	ApproachSocraticEarly ApproachTag = "socratic_early"
	ApproachDirectAdvice  ApproachTag = "direct_advice"
	ApproachExploratory   ApproachTag = "exploratory"
	ApproachBalanced      ApproachTag = "balanced"
)

type ExperienceLevel string

const (
	ExperienceNew         ExperienceLevel = "new"
	ExperienceExperienced ExperienceLevel = "experienced"
	ExperienceVeteran     ExperienceLevel = "veteran"
	ExperienceUnknown     ExperienceLevel = "unknown"
)

type TonePreference string

const (
	ToneDirect         TonePreference = "direct"
	ToneWarm           TonePreference = "warm"
	ToneConversational TonePreference = "conversational"
	ToneAnalytical     TonePreference = "analytical"
	ToneUnknown        TonePreference = "unknown"
)

// Preferences are the stored, read-only user preferences. Either field
// may be absent; absent is treated as unknown.
type Preferences struct {
	Experience ExperienceLevel
	Tone       TonePreference
}

// HistoryEntry is one (speaker, text) pair of prior conversation.
type HistoryEntry struct {
	Speaker string
	Text    string
}

// Subject is the person a person-focused conversation is about.
type Subject struct {
	Name         string
	Role         string
	Relationship string
}

// ContextBundle is opaque pre-formatted background text assembled by a
// context-builder collaborator. Text is inserted verbatim. A non-empty
// ProfileAddendum is appended under a fixed header, never replacing Text.
type ContextBundle struct {
	Text            string
	HasContext      bool
	ProfileAddendum string
}

// GuidanceFragment is text produced by one sub-decision, tagged by
// origin. Fragments are additive and order-stable.
type GuidanceFragment struct {
	Origin string
	Text   string
}

type SuggestionType string

const (
	SuggestionActionItems SuggestionType = "action_items"
	SuggestionSchedule    SuggestionType = "schedule"
	SuggestionNotes       SuggestionType = "notes"
	SuggestionInsights    SuggestionType = "insights"
)

// SuggestionGroup is a cluster of list items extracted from a model
// reply, typed and re-rendered for user review. Groups are ephemeral;
// they are only persisted if the user approves a save-back.
type SuggestionGroup struct {
	ID           string         `json:"id"`
	Type         SuggestionType `json:"type"`
	Title        string         `json:"title"`
	BodyMarkdown string         `json:"bodyMarkdown"`
	PreviewText  string         `json:"previewText"`
	Items        []string       `json:"items"`
}
