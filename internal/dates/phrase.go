package dates

import (
	"strings"
	"time"
)

var weekdayNames = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

var basicPhrases = []string{"today", "yesterday", "tomorrow"}

// ParsePhrase interprets a free-text phrase as a calendar date relative
// to now. Recognized: "today", "yesterday", "tomorrow", "this <day>"
// and "last <day>". Matching is case-insensitive and ignores
// surrounding whitespace. The second return is false when the phrase is
// not recognized; callers treat the input as literal.
func ParsePhrase(text string, now time.Time) (time.Time, bool) {
	phrase := strings.ToLower(strings.TrimSpace(text))
	today := midnight(now)

	switch phrase {
	case "today":
		return today, true
	case "yesterday":
		return today.AddDate(0, 0, -1), true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	}

	if day, ok := strings.CutPrefix(phrase, "this "); ok {
		if target, ok := weekdayByName(day); ok {
			// Next occurrence on or after today; offset 0 when the
			// named day is today itself.
			offset := (int(target) - int(today.Weekday()) + 7) % 7
			return today.AddDate(0, 0, offset), true
		}
	}

	if day, ok := strings.CutPrefix(phrase, "last "); ok {
		if target, ok := weekdayByName(day); ok {
			// Most recent occurrence strictly before today; "last" of
			// today's own weekday means a full week ago, never today.
			offset := (int(today.Weekday()) - int(target) + 7) % 7
			if offset == 0 {
				offset = 7
			}
			return today.AddDate(0, 0, -offset), true
		}
	}

	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func weekdayByName(name string) (time.Weekday, bool) {
	for i, n := range weekdayNames {
		if n == name {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// maxSuggestions caps the list returned by Suggest.
const maxSuggestions = 10

// Suggest proposes date phrases for a partial query: basic phrases
// containing the query first, then "this <day>"/"last <day>" for every
// weekday matching the query (substring either direction), in canonical
// weekday order. A query already starting with "this " or "last " is
// completed against weekday names instead. Deduplicated, capped at 10.
func Suggest(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []string
	seen := make(map[string]bool)
	add := func(phrase string) {
		if !seen[phrase] && len(out) < maxSuggestions {
			seen[phrase] = true
			out = append(out, phrase)
		}
	}

	for _, phrase := range basicPhrases {
		if strings.Contains(phrase, q) {
			add(phrase)
		}
	}

	for _, prefix := range []string{"this ", "last "} {
		if rest, ok := strings.CutPrefix(q, prefix); ok {
			for _, day := range weekdayNames {
				if strings.HasPrefix(day, rest) {
					add(prefix + day)
				}
			}
		}
	}

	for _, day := range weekdayNames {
		if q != "" && (strings.Contains(day, q) || strings.Contains(q, day)) {
			add("this " + day)
			add("last " + day)
		}
	}

	return out
}
