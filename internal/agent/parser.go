// AngelaMos | 2026
// parser.go

package agent

import (
	"regexp"
	"strings"
)

var (
	hashtagPattern    = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	listMarkerPattern = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s*`)
)

// ExtractHashtags pulls every #tag out of free-form model output,
// preserving order and dropping duplicates case-insensitively.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(matches))
	hashtags := make([]string, 0, len(matches))

	for _, m := range matches {
		key := strings.ToLower(m)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		hashtags = append(hashtags, m)
	}

	return hashtags
}

// SplitSummaryAndList separates a model response shaped as prose followed
// by a list: everything before the first marked line is the summary, the
// rest is parsed as list items.
func SplitSummaryAndList(text string) (string, []string) {
	lines := strings.Split(text, "\n")

	boundary := len(lines)
	for i, line := range lines {
		if listMarkerPattern.MatchString(line) &&
			strings.TrimSpace(line) != "" {
			boundary = i
			break
		}
	}

	summaryLines := make([]string, 0, boundary)
	for _, line := range lines[:boundary] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			summaryLines = append(summaryLines, trimmed)
		}
	}

	summary := strings.Join(summaryLines, " ")
	items := SplitListItems(strings.Join(lines[boundary:], "\n"))

	return summary, items
}

// SplitListItems turns a numbered or bulleted model response into an
// ordered slice of items, stripping the leading markers. Blank lines and
// lines with no content after the marker are skipped.
func SplitListItems(text string) []string {
	lines := strings.Split(text, "\n")
	items := make([]string, 0, len(lines))

	for _, line := range lines {
		item := listMarkerPattern.ReplaceAllString(line, "")
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		items = append(items, item)
	}

	return items
}
