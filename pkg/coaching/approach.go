package coaching

import "strings"

// socraticHistoryMax is the history length below which a conversation
// still counts as "early" for the Socratic opener.
const socraticHistoryMax = 3

var approachGuidance = map[ApproachTag]string{
	ApproachUrgent:        "The user is under time pressure. Skip open-ended questions and give your best direct recommendation now, with a short rationale.",
	ApproachSocraticEarly: "The conversation is just starting and the user is exploring. Lead with one or two genuine questions before offering any advice.",
	ApproachDirectAdvice:  "The user is explicitly asking for advice. Give a clear recommendation first, then the reasoning behind it.",
	ApproachExploratory:   "The user is thinking out loud. Reflect back what you hear and ask questions that deepen their thinking; keep advice light.",
	ApproachBalanced:      "Blend listening and advising: acknowledge the situation, ask at most one clarifying question, and offer a concrete next step.",
}

// SelectApproach decides the coaching stance for one turn. Rules fire in
// a fixed order; urgency always wins, Balanced is the terminator.
func SelectApproach(utterance string, history []HistoryEntry, experience ExperienceLevel) ApproachTag {
	lowered := strings.ToLower(utterance)

	seeksAdvice := containsAny(lowered, adviceSeekingVocab)
	explores := containsAny(lowered, explorationVocab)

	switch {
	case containsAny(lowered, urgencyVocab):
		return ApproachUrgent
	case len(history) < socraticHistoryMax && !seeksAdvice && explores:
		return ApproachSocraticEarly
	case seeksAdvice:
		return ApproachDirectAdvice
	case explores:
		return ApproachExploratory
	default:
		return ApproachBalanced
	}
}
