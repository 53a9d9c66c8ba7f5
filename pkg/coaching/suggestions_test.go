package coaching

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor() *Extractor {
	return NewExtractor(log.New(nil))
}

func TestExtractScenarioTwoGroups(t *testing.T) {
	reply := "Here's what I'd suggest:\n- Set up weekly 1:1s\n- Clarify priorities in writing\n\nSeparately, some notes:\n- Remember she prefers async updates"

	groups := newTestExtractor().Extract(reply, "Maria")
	require.Len(t, groups, 2)

	first := groups[0]
	assert.Equal(t, SuggestionSchedule, first.Type)
	assert.Equal(t, "schedule_0", first.ID)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, "2 items", first.PreviewText)
	assert.Contains(t, first.Title, "Maria")
	assert.Contains(t, first.BodyMarkdown, "- [ ] Set up weekly 1:1s")
	assert.Contains(t, first.BodyMarkdown, "- [ ] Clarify priorities in writing")

	second := groups[1]
	assert.Equal(t, SuggestionNotes, second.Type)
	assert.Equal(t, "notes_1", second.ID)
	assert.Len(t, second.Items, 1)
	assert.Equal(t, "Remember she prefers async updates", second.PreviewText)
}

func TestExtractProseOnly(t *testing.T) {
	reply := "I hear you. This sounds genuinely hard, and there is no single right answer here. Take the weekend before deciding anything."
	groups := newTestExtractor().Extract(reply, "Bob")
	assert.Empty(t, groups)
}

func TestExtractDistantListsSplit(t *testing.T) {
	filler := strings.Repeat("Some connecting commentary to think about. ", 6) // > 200 chars
	reply := "- First action to take\n\n" + filler + "\n- Second action to take"

	groups := newTestExtractor().Extract(reply, "Bob")
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"First action to take"}, groups[0].Items)
	assert.Equal(t, []string{"Second action to take"}, groups[1].Items)
}

func TestExtractAdjacentItemsShareGroup(t *testing.T) {
	reply := "- Write down the two options you keep going back and forth on\n- Sleep on it"
	groups := newTestExtractor().Extract(reply, "Bob")
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Items, 2)
}

func TestExtractCompleteness(t *testing.T) {
	reply := "1. Gather the delivery data\n2. Draft the talking points\n3. Schedule the conversation\n\nAnd later on:\n• Debrief with your own manager"

	groups := newTestExtractor().Extract(reply, "Bob")

	var all []string
	for _, group := range groups {
		all = append(all, group.Items...)
	}
	assert.ElementsMatch(t, []string{
		"Gather the delivery data",
		"Draft the talking points",
		"Schedule the conversation",
		"Debrief with your own manager",
	}, all)

	seen := map[string]bool{}
	for _, item := range all {
		assert.False(t, seen[item], "item %q appears in two groups", item)
		seen[item] = true
	}
}

func TestExtractLoneItem(t *testing.T) {
	groups := newTestExtractor().Extract("One thing to try:\n- Ask him directly in your next 1:1", "Bob")
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Items, 1)
	assert.Equal(t, "Ask him directly in your next 1:1", groups[0].PreviewText)
}

func TestExtractBareMarkerFiltered(t *testing.T) {
	reply := "- Actually useful item\n- \n- Another useful item"
	groups := newTestExtractor().Extract(reply, "Bob")
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"Actually useful item", "Another useful item"}, groups[0].Items)
}

func TestExtractPreviewTruncation(t *testing.T) {
	long := "Document every missed commitment with dates so the conversation stays factual"
	groups := newTestExtractor().Extract("- "+long, "Bob")
	require.Len(t, groups, 1)
	assert.Equal(t, long[:50]+"...", groups[0].PreviewText)
	assert.Len(t, groups[0].PreviewText, 53)
}

func TestExtractPreviewTruncationMultiByte(t *testing.T) {
	// A rune straddling the cutoff must not be split mid-sequence.
	long := strings.Repeat("a", 49) + "é and a longer tail so truncation actually fires"
	groups := newTestExtractor().Extract("- "+long, "Bob")
	require.Len(t, groups, 1)

	preview := groups[0].PreviewText
	assert.True(t, utf8.ValidString(preview))
	assert.Equal(t, string([]rune(long)[:50])+"...", preview)
}

func TestExtractTypePriority(t *testing.T) {
	// First item carries both schedule and notes keywords; schedule wins.
	reply := "- Note the schedule conflict in your calendar\n- Follow up next week"
	groups := newTestExtractor().Extract(reply, "Bob")
	require.Len(t, groups, 1)
	assert.Equal(t, SuggestionSchedule, groups[0].Type)
}

func TestExtractInsightsType(t *testing.T) {
	reply := "- It seems the underlying issue is unclear ownership\n- The team mirrors your urgency"
	groups := newTestExtractor().Extract(reply, "")
	require.Len(t, groups, 1)
	assert.Equal(t, SuggestionInsights, groups[0].Type)
	assert.Contains(t, groups[0].Title, "you")
}

func TestExtractDefaultsToActionItems(t *testing.T) {
	reply := "- Talk to her before the all-hands"
	groups := newTestExtractor().Extract(reply, "Bob")
	require.Len(t, groups, 1)
	assert.Equal(t, SuggestionActionItems, groups[0].Type)
	assert.Equal(t, "action_items_0", groups[0].ID)
}
