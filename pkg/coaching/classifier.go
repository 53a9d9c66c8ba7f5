package coaching

import "strings"

// situationRule pairs a tag with its predicate. Rules are evaluated in
// slice order, so the order below IS the tie-break policy: an utterance
// matching two categories always resolves to the earlier one.
type situationRule struct {
	Tag   SituationTag
	Match func(lowered string) bool
}

var situationRules = []situationRule{
	{SituationSelfReflection, matchesAny(selfReflectionVocab)},
	{SituationInterpersonal, matchesAny(interpersonalVocab)},
	{SituationPerformance, matchesAny(performanceVocab)},
	{SituationStrategic, matchesAny(strategicVocab)},
	{SituationTactical, matchesAny(tacticalVocab)},
}

// situationGuidance maps each tag to the fragment merged into the
// coaching-guidance block. SituationNone contributes nothing.
var situationGuidance = map[SituationTag]string{
	SituationSelfReflection: "The user is reflecting on their own leadership. Hold space for self-examination before offering frameworks.",
	SituationInterpersonal:  "This is an interpersonal issue. Help the user see both perspectives before they act.",
	SituationPerformance:    "This is a performance concern. Help the user separate observed behavior from interpretation, and move toward a fair, concrete plan.",
	SituationStrategic:      "This is a strategic question. Widen the frame: time horizon, stakeholders, and second-order effects.",
	SituationTactical:       "This is a tactical question. Be practical and concrete; a good-enough answer now beats a perfect one later.",
}

// Classify pattern-matches an utterance against concern categories and
// returns the highest-priority match, or SituationNone if nothing fires.
func Classify(utterance string) SituationTag {
	lowered := strings.ToLower(utterance)
	for _, rule := range situationRules {
		if rule.Match(lowered) {
			return rule.Tag
		}
	}
	return SituationNone
}

func matchesAny(vocab []string) func(string) bool {
	return func(lowered string) bool {
		return containsAny(lowered, vocab)
	}
}

func containsAny(lowered string, vocab []string) bool {
	for _, term := range vocab {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
