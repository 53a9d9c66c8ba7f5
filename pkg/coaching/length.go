package coaching

import (
	"regexp"
	"strings"
)

// Untuned heuristics, named so they can be revisited: an utterance under
// quickQuestionMaxChars with quick-question vocabulary gets the shortest
// directive; one over complexUtteranceMinChars counts as complex.
const (
	quickQuestionMaxChars    = 50
	complexUtteranceMinChars = 200
)

// explanatoryInterrogative marks questions that ask for an explanation,
// not just an answer.
var explanatoryInterrogative = regexp.MustCompile(`(?i)\b(why|how)\b[^?]*\?`)

const (
	lengthShortest = "Answer in two or three sentences at most. No preamble."
	lengthTeaching = "Give a thorough answer that teaches as it goes: explain the reasoning, define any management concepts you rely on, and walk through an example."
	lengthMedium   = "Give a moderately detailed answer with enough context to justify your reasoning, but stay under five short paragraphs."
	lengthDefault  = "Keep the response concise and focused; two short paragraphs is usually right."
)

// LengthGuidance derives the single verbosity directive substituted into
// the base template. Exactly one rule fires.
func LengthGuidance(utterance string, experience ExperienceLevel, history []HistoryEntry) string {
	lowered := strings.ToLower(utterance)
	complex := len(utterance) > complexUtteranceMinChars || explanatoryInterrogative.MatchString(utterance)

	switch {
	case len(utterance) < quickQuestionMaxChars && containsAny(lowered, quickQuestionVocab):
		return lengthShortest
	case experience == ExperienceNew && complex:
		return lengthTeaching
	case complex:
		return lengthMedium
	default:
		return lengthDefault
	}
}
