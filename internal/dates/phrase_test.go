package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParsePhraseBasics(t *testing.T) {
	tests := []struct {
		phrase string
		want   time.Time
	}{
		{"today", date(2024, 3, 15)},
		{"yesterday", date(2024, 3, 14)},
		{"tomorrow", date(2024, 3, 16)},
		{"  ToDaY  ", date(2024, 3, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, ok := ParsePhrase(tt.phrase, fixedNow)
			if !ok {
				t.Fatalf("ParsePhrase(%q) not recognized", tt.phrase)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParsePhrase(%q) = %v, want %v", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestParsePhraseThisWeekday(t *testing.T) {
	today := date(2024, 3, 15)
	for _, w := range weekdayNames {
		got, ok := ParsePhrase("this "+w, fixedNow)
		if !ok {
			t.Fatalf("this %s not recognized", w)
		}
		if name := weekdayNames[int(got.Weekday())]; name != w {
			t.Errorf("this %s landed on %s", w, name)
		}
		days := int(got.Sub(today).Hours() / 24)
		if days < 0 || days > 6 {
			t.Errorf("this %s is %d days away, want 0..6", w, days)
		}
	}

	// "this <today's weekday>" is today itself.
	got, _ := ParsePhrase("this friday", fixedNow)
	if !got.Equal(today) {
		t.Errorf("this friday = %v, want today", got)
	}
}

func TestParsePhraseLastWeekday(t *testing.T) {
	today := date(2024, 3, 15)
	for _, w := range weekdayNames {
		got, ok := ParsePhrase("last "+w, fixedNow)
		if !ok {
			t.Fatalf("last %s not recognized", w)
		}
		if name := weekdayNames[int(got.Weekday())]; name != w {
			t.Errorf("last %s landed on %s", w, name)
		}
		days := int(today.Sub(got).Hours() / 24)
		if days < 1 || days > 7 {
			t.Errorf("last %s is %d days ago, want 1..7", w, days)
		}
	}

	// "last <today's weekday>" is a full week back, never today.
	got, _ := ParsePhrase("last friday", fixedNow)
	if !got.Equal(date(2024, 3, 8)) {
		t.Errorf("last friday = %v, want 2024-03-08", got)
	}
}

func TestParsePhraseUnrecognized(t *testing.T) {
	for _, phrase := range []string{"", "next tuesday", "this weekend", "last", "2024-03-15", "this fridays"} {
		if _, ok := ParsePhrase(phrase, fixedNow); ok {
			t.Errorf("ParsePhrase(%q) should not be recognized", phrase)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Run("empty query proposes basics", func(t *testing.T) {
		got := Suggest("")
		want := []string{"today", "yesterday", "tomorrow"}
		if len(got) != len(want) {
			t.Fatalf("Suggest(\"\") = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Suggest(\"\") = %v, want %v", got, want)
			}
		}
	})

	t.Run("weekday substring proposes this and last", func(t *testing.T) {
		got := Suggest("frid")
		assertContains(t, got, "this friday")
		assertContains(t, got, "last friday")
	})

	t.Run("basic matches come before weekday matches", func(t *testing.T) {
		// "da" hits "today" and "yesterday" and the -day weekdays.
		got := Suggest("da")
		if len(got) == 0 || got[0] != "today" {
			t.Fatalf("Suggest(\"da\") = %v, expected today first", got)
		}
	})

	t.Run("prefix completion", func(t *testing.T) {
		got := Suggest("this s")
		assertContains(t, got, "this sunday")
		assertContains(t, got, "this saturday")
		for _, s := range got {
			if s == "last sunday" {
				t.Errorf("Suggest(\"this s\") should not propose last-phrases, got %v", got)
			}
		}
	})

	t.Run("capped at ten", func(t *testing.T) {
		if got := Suggest("day"); len(got) > 10 {
			t.Errorf("Suggest returned %d suggestions, cap is 10", len(got))
		}
	})

	t.Run("deduplicated", func(t *testing.T) {
		got := Suggest("this monday")
		seen := make(map[string]int)
		for _, s := range got {
			seen[s]++
			if seen[s] > 1 {
				t.Errorf("duplicate suggestion %q in %v", s, got)
			}
		}
	})
}

func assertContains(t *testing.T, list []string, want string) {
	t.Helper()
	for _, s := range list {
		if s == want {
			return
		}
	}
	t.Errorf("expected %q in %v", want, list)
}
