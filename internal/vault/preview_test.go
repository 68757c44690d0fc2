package vault

import (
	"strings"
	"testing"
)

func TestSummarizeFrontmatterTitle(t *testing.T) {
	content := "---\ntitle: Weekly review\n---\n\nSome body text here."
	s := Summarize(Note{Path: "a.md"}, content)
	if s.Title != "Weekly review" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Preview != "Some body text here." {
		t.Errorf("Preview = %q", s.Preview)
	}
}

func TestSummarizeHeadingTitle(t *testing.T) {
	content := "# Meeting notes\n\nFirst paragraph.\n\nSecond paragraph."
	s := Summarize(Note{Path: "a.md"}, content)
	if s.Title != "Meeting notes" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Preview != "First paragraph. Second paragraph." {
		t.Errorf("Preview = %q", s.Preview)
	}
}

func TestSummarizeFallsBackToBasename(t *testing.T) {
	s := Summarize(Note{Path: "000_inbox/quick thought.md"}, "just some text")
	if s.Title != "quick thought" {
		t.Errorf("Title = %q", s.Title)
	}
}

func TestSummarizePreviewTruncated(t *testing.T) {
	long := strings.Repeat("word ", 40)
	s := Summarize(Note{Path: "a.md"}, "# T\n\n"+long)
	if len(s.Preview) > 60 {
		t.Errorf("preview too long: %d chars", len(s.Preview))
	}
	if !strings.HasSuffix(s.Preview, "...") {
		t.Errorf("expected ellipsis, got %q", s.Preview)
	}
}
