package coaching

import "strings"

var experienceGuidance = map[ExperienceLevel]string{
	ExperienceNew:         "The user is new to managing people: spell out the basics and name the concepts you use.",
	ExperienceExperienced: "The user has a few years of management experience: skip the fundamentals unless asked.",
	ExperienceVeteran:     "The user is a veteran leader: engage at a peer level and challenge their thinking directly.",
}

var toneGuidance = map[TonePreference]string{
	ToneDirect:         "They prefer direct, no-hedging answers.",
	ToneWarm:           "They prefer a warm, encouraging tone.",
	ToneConversational: "They prefer a casual, conversational register.",
	ToneAnalytical:     "They prefer structured, analytical responses.",
}

// ResolvePersonalization turns stored preferences into guidance text.
// Absent or unknown fields contribute nothing; when both are unknown the
// result is empty with no stray separators.
func ResolvePersonalization(prefs Preferences) string {
	parts := make([]string, 0, 2)
	if text, ok := experienceGuidance[prefs.Experience]; ok {
		parts = append(parts, text)
	}
	if text, ok := toneGuidance[prefs.Tone]; ok {
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
