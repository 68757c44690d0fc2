package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pattern tokens understood by Format and ParseFilename. Anything else
// in a pattern is treated as literal text: the pattern is a template,
// not a grammar.
//
//	ddd  day-of-week abbreviation ("Tue")
//	HH   zero-padded hour, 24h
//	mm   zero-padded minute
//	ss   zero-padded second
var tokens = []string{"ddd", "HH", "mm", "ss"}

// ErrUnparseable reports that a filename does not match the configured
// timestamp pattern. Callers branch on it with errors.Is.
var ErrUnparseable = errors.New("does not match timestamp pattern")

var dayAbbrevs = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Format renders t according to pattern, e.g. pattern "ddd HH mm ss"
// yields "Tue 09 41 00".
func Format(t time.Time, pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		switch token := tokenAt(pattern, i); token {
		case "ddd":
			b.WriteString(dayAbbrevs[int(t.Weekday())])
			i += 3
		case "HH":
			fmt.Fprintf(&b, "%02d", t.Hour())
			i += 2
		case "mm":
			fmt.Fprintf(&b, "%02d", t.Minute())
			i += 2
		case "ss":
			fmt.Fprintf(&b, "%02d", t.Second())
			i += 2
		default:
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

func tokenAt(pattern string, i int) string {
	for _, token := range tokens {
		if strings.HasPrefix(pattern[i:], token) {
			return token
		}
	}
	return ""
}

// ParseFilename is the strict inverse of Format: basename must match
// pattern exactly, with no partial or fuzzy matching. The recovered
// point in time is anchored to the most recent occurrence of the
// parsed weekday on or before now (or now's own date when the pattern
// carries no ddd token). Failures wrap ErrUnparseable and name both
// the offending basename and the pattern.
func ParseFilename(basename, pattern string, now time.Time) (time.Time, error) {
	re, order := patternRegexp(pattern)
	match := re.FindStringSubmatch(basename)
	if match == nil {
		return time.Time{}, fmt.Errorf("cannot parse %q with pattern %q: %w", basename, pattern, ErrUnparseable)
	}

	weekday := -1
	hour, minute, second := 0, 0, 0
	for idx, token := range order {
		group := match[idx+1]
		switch token {
		case "ddd":
			for d, abbrev := range dayAbbrevs {
				if group == abbrev {
					weekday = d
				}
			}
		case "HH":
			hour, _ = strconv.Atoi(group)
			if hour > 23 {
				return time.Time{}, fmt.Errorf("cannot parse %q with pattern %q: hour %d out of range: %w", basename, pattern, hour, ErrUnparseable)
			}
		case "mm":
			minute, _ = strconv.Atoi(group)
			if minute > 59 {
				return time.Time{}, fmt.Errorf("cannot parse %q with pattern %q: minute %d out of range: %w", basename, pattern, minute, ErrUnparseable)
			}
		case "ss":
			second, _ = strconv.Atoi(group)
			if second > 59 {
				return time.Time{}, fmt.Errorf("cannot parse %q with pattern %q: second %d out of range: %w", basename, pattern, second, ErrUnparseable)
			}
		}
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, now.Location())
	if weekday >= 0 {
		back := (int(now.Weekday()) - weekday + 7) % 7
		day = day.AddDate(0, 0, -back)
	}
	return day, nil
}

// patternRegexp compiles pattern into an anchored regexp with one
// capture group per token, returned in pattern order.
func patternRegexp(pattern string) (*regexp.Regexp, []string) {
	var b strings.Builder
	var order []string
	b.WriteString(`^`)
	for i := 0; i < len(pattern); {
		switch token := tokenAt(pattern, i); token {
		case "ddd":
			b.WriteString(`(` + strings.Join(dayAbbrevs, "|") + `)`)
			order = append(order, token)
			i += 3
		case "HH", "mm", "ss":
			b.WriteString(`(\d{2})`)
			order = append(order, token)
			i += 2
		default:
			b.WriteString(regexp.QuoteMeta(string(pattern[i])))
			i++
		}
	}
	b.WriteString(`$`)
	return regexp.MustCompile(b.String()), order
}
