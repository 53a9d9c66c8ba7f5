package coaching

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// Untuned grouping heuristic: consecutive list items whose start offsets
// are closer than this many characters can share a group.
const groupProximityChars = 200

// previewMaxChars bounds the single-item preview text.
const previewMaxChars = 50

var (
	listItemPattern  = regexp.MustCompile(`(?m)^[ \t]*(?:[-•]|\d+\.)[ \t]+.*$`)
	listMarkerPrefix = regexp.MustCompile(`^[ \t]*(?:[-•]|\d+\.)[ \t]+`)
)

var suggestionTitles = map[SuggestionType]string{
	SuggestionActionItems: "Action items for %s",
	SuggestionSchedule:    "Scheduling follow-ups for %s",
	SuggestionNotes:       "Notes about %s",
	SuggestionInsights:    "Insights about %s",
}

// Extractor mines a model reply for bullet and numbered list items and
// folds them into typed, reviewable suggestion groups. It never errors:
// prose with no list items yields an empty result.
type Extractor struct {
	logger *log.Logger
}

func NewExtractor(logger *log.Logger) *Extractor {
	return &Extractor{logger: logger}
}

type listItem struct {
	start int
	end   int
	text  string
}

// Extract scans replyText for list items, groups them, and renders one
// SuggestionGroup per cluster. Marker stripping happens per group, after
// grouping; items whose content is empty after stripping (a bare "- "
// line) are dropped there, and a group left with no items is dropped
// whole, so every surviving item lands in exactly one group.
func (e *Extractor) Extract(replyText string, subjectName string) []SuggestionGroup {
	items := scanListItems(replyText)
	if len(items) == 0 {
		return nil
	}

	clusters := groupItems(replyText, items)

	groups := make([]SuggestionGroup, 0, len(clusters))
	for _, cluster := range clusters {
		cleaned := cleanCluster(cluster)
		if len(cleaned) == 0 {
			continue
		}
		groups = append(groups, renderGroup(cleaned, len(groups), subjectName))
	}

	e.logger.Debug("extracted suggestion groups", "items", len(items), "groups", len(groups))
	return groups
}

func scanListItems(replyText string) []listItem {
	locations := listItemPattern.FindAllStringIndex(replyText, -1)
	items := make([]listItem, 0, len(locations))
	for _, loc := range locations {
		items = append(items, listItem{start: loc[0], end: loc[1], text: replyText[loc[0]:loc[1]]})
	}
	return items
}

func cleanCluster(cluster []listItem) []string {
	cleaned := make([]string, 0, len(cluster))
	for _, item := range cluster {
		text := strings.TrimSpace(listMarkerPrefix.ReplaceAllString(item.text, ""))
		if text == "" {
			continue
		}
		cleaned = append(cleaned, text)
	}
	return cleaned
}

// groupItems walks items in document order. An item joins the open group
// when it sits within the proximity threshold of the previous item AND
// nothing but whitespace separates them; intervening prose (a list that
// resumes after commentary) closes the group and opens a new one.
func groupItems(replyText string, items []listItem) [][]listItem {
	var clusters [][]listItem
	var current []listItem
	for i, item := range items {
		if i > 0 {
			previous := items[i-1]
			between := replyText[previous.end:item.start]
			if item.start-previous.start >= groupProximityChars || strings.TrimSpace(between) != "" {
				clusters = append(clusters, current)
				current = nil
			}
		}
		current = append(current, item)
	}
	if len(current) > 0 {
		clusters = append(clusters, current)
	}
	return clusters
}

// classifyGroup inspects the first cleaned item for type keywords, in
// priority order schedule > notes > insights.
func classifyGroup(items []string) SuggestionType {
	first := strings.ToLower(items[0])
	switch {
	case containsAny(first, scheduleKeywords):
		return SuggestionSchedule
	case containsAny(first, notesKeywords):
		return SuggestionNotes
	case containsAny(first, insightsKeywords):
		return SuggestionInsights
	default:
		return SuggestionActionItems
	}
}

func renderGroup(items []string, index int, subjectName string) SuggestionGroup {
	groupType := classifyGroup(items)

	if subjectName == "" {
		subjectName = "you"
	}
	title := fmt.Sprintf(suggestionTitles[groupType], subjectName)

	var body strings.Builder
	body.WriteString("### " + title + "\n\n")
	for _, item := range items {
		body.WriteString("- [ ] " + item + "\n")
	}

	return SuggestionGroup{
		ID:           fmt.Sprintf("%s_%d", groupType, index),
		Type:         groupType,
		Title:        title,
		BodyMarkdown: body.String(),
		PreviewText:  previewText(items),
		Items:        items,
	}
}

func previewText(items []string) string {
	if len(items) == 1 {
		runes := []rune(items[0])
		if len(runes) > previewMaxChars {
			return string(runes[:previewMaxChars]) + "..."
		}
		return items[0]
	}
	return fmt.Sprintf("%d items", len(items))
}
