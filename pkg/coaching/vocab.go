package coaching

// Vocabulary lists are data, not logic: keep them here so reviewers can
// audit and amend them without touching the decision functions. Matching
// is lowercase substring; false positives and negatives are accepted
// behavior.
//
// Revision 4 (2026-08).

var selfReflectionVocab = []string{
	"i feel like i",
	"i'm struggling",
	"i am struggling",
	"imposter",
	"burned out",
	"burnout",
	"overwhelmed",
	"my own growth",
	"am i a good",
	"doubting myself",
	"my leadership style",
}

var interpersonalVocab = []string{
	"conflict",
	"tension between",
	"doesn't trust",
	"trust issue",
	"difficult conversation",
	"personality clash",
	"not getting along",
	"friction with",
	"communication breakdown",
}

var performanceVocab = []string{
	"underperform",
	"performance",
	"not delivering",
	"missing deadlines",
	"missed deadlines",
	"low quality work",
	"quality of their work",
	"pip",
	"falling behind",
}

var strategicVocab = []string{
	"roadmap",
	"long-term",
	"long term",
	"vision",
	"strategy",
	"strategic",
	"org design",
	"reorg",
	"headcount",
	"quarterly goals",
	"next quarter",
}

var tacticalVocab = []string{
	"how do i run",
	"agenda",
	"meeting format",
	"template",
	"checklist",
	"status update",
	"standup",
	"process for",
}

var urgencyVocab = []string{
	"urgent",
	"asap",
	"as soon as possible",
	"today",
	"immediately",
	"right away",
	"by tomorrow",
	"emergency",
	"can't wait",
}

var adviceSeekingVocab = []string{
	"what should i",
	"should i",
	"how should i",
	"how do i",
	"what would you",
	"give me advice",
	"any advice",
	"recommend",
	"tell me what to do",
}

var explorationVocab = []string{
	"i'm thinking",
	"i am thinking",
	"thinking about",
	"i've been thinking",
	"wondering",
	"i wonder",
	"not sure",
	"unsure",
	"torn between",
	"mulling over",
	"want to explore",
	"reflect on",
}

var quickQuestionVocab = []string{
	"quick question",
	"real quick",
	"quickly",
	"just checking",
	"one small thing",
}

var scheduleKeywords = []string{
	"schedule",
	"1:1",
	"one-on-one",
	"meeting",
	"calendar",
	"set up",
	"book",
}

var notesKeywords = []string{
	"remember",
	"note",
	"keep in mind",
	"worth noting",
	"don't forget",
}

var insightsKeywords = []string{
	"insight",
	"pattern",
	"realization",
	"it seems",
	"notice that",
	"underlying",
}
