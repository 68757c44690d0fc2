package inbox

import (
	"errors"
	"strings"
	"testing"
	"time"

	"triage/internal/config"
	"triage/internal/notify"
	"triage/internal/vault"
)

type recorder struct {
	messages []string
}

func (r *recorder) Notify(message string) {
	r.messages = append(r.messages, message)
}

func (r *recorder) last(t *testing.T) string {
	t.Helper()
	if len(r.messages) == 0 {
		t.Fatal("expected a notification")
	}
	return r.messages[len(r.messages)-1]
}

func testConfig() *config.Config {
	return &config.Config{
		InboxFolder:     "000_inbox",
		DailyFolder:     "001_journal",
		TimestampFormat: "ddd HH mm ss",
	}
}

func newTestService(t *testing.T, notifier notify.Notifier) (*serviceImpl, *vault.Vault) {
	t.Helper()
	v, err := vault.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	svc := NewService(v, testConfig(), notifier).(*serviceImpl)
	svc.now = func() time.Time {
		return time.Date(2024, 3, 15, 9, 41, 0, 0, time.Local)
	}
	return svc, v
}

func mustCreate(t *testing.T, v *vault.Vault, path, content string) vault.Note {
	t.Helper()
	n, err := v.Create(path, content)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	return n
}

func TestListOnlyReturnsInboxNotes(t *testing.T) {
	svc, v := newTestService(t, notify.Discard)
	mustCreate(t, v, "000_inbox/a.md", "")
	mustCreate(t, v, "001_journal/2024-03-15.md", "")
	mustCreate(t, v, "elsewhere.md", "")

	notes, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 1 || notes[0].Path != "000_inbox/a.md" {
		t.Errorf("List = %v", notes)
	}
}

func TestNextAfter(t *testing.T) {
	svc, v := newTestService(t, notify.Discard)
	for _, name := range []string{"b.md", "a.md", "c.md"} {
		mustCreate(t, v, "000_inbox/"+name, "")
	}

	tests := []struct {
		name    string
		current string // "" means none
		want    string
	}{
		{"no current note", "", "a.md"},
		{"middle of the cycle", "a.md", "b.md"},
		{"wraps past the end", "c.md", "a.md"},
		{"current outside inbox", "elsewhere.md", "a.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var current *vault.Note
			if tt.current != "" {
				n := vault.Note{Path: "000_inbox/" + tt.current}
				if tt.current == "elsewhere.md" {
					n = vault.Note{Path: tt.current}
				}
				current = &n
			}
			next, err := svc.NextAfter(current)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if next.Name() != tt.want {
				t.Errorf("NextAfter = %q, want %q", next.Name(), tt.want)
			}
		})
	}
}

func TestNextAfterEmptyInbox(t *testing.T) {
	rec := &recorder{}
	svc, _ := newTestService(t, rec)

	_, err := svc.NextAfter(nil)
	if !errors.Is(err, ErrEmptyInbox) {
		t.Fatalf("expected ErrEmptyInbox, got %v", err)
	}
	if !strings.Contains(rec.last(t), "empty") {
		t.Errorf("notification = %q", rec.last(t))
	}
}

func TestMarkAsRead(t *testing.T) {
	rec := &recorder{}
	svc, v := newTestService(t, rec)
	note := mustCreate(t, v, "000_inbox/x.md", "body")

	renamed, err := svc.MarkAsRead(note)
	if err != nil {
		t.Fatalf("mark as read: %v", err)
	}
	if renamed.Name() != "(READ) x.md" {
		t.Errorf("renamed to %q", renamed.Name())
	}
	if _, ok := v.GetByPath("000_inbox/(READ) x.md"); !ok {
		t.Error("renamed note missing from vault")
	}
}

func TestMarkAsReadIdempotent(t *testing.T) {
	rec := &recorder{}
	svc, v := newTestService(t, rec)
	note := mustCreate(t, v, "000_inbox/(READ) x.md", "body")

	same, err := svc.MarkAsRead(note)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if same.Path != note.Path {
		t.Errorf("note should be untouched, got %q", same.Path)
	}
	if !strings.Contains(rec.last(t), "already") {
		t.Errorf("expected already-marked notice, got %q", rec.last(t))
	}
}

func TestSnooze(t *testing.T) {
	svc, v := newTestService(t, notify.Discard)
	note := mustCreate(t, v, "000_inbox/idea.md", "body")

	renamed, err := svc.Snooze(note)
	if err != nil {
		t.Fatalf("snooze: %v", err)
	}
	if renamed.Name() != "Fri 09 41 00 (snoozed).md" {
		t.Errorf("renamed to %q", renamed.Name())
	}
}

func TestSnoozeSameSecondCollision(t *testing.T) {
	rec := &recorder{}
	svc, v := newTestService(t, rec)
	a := mustCreate(t, v, "000_inbox/a.md", "")
	b := mustCreate(t, v, "000_inbox/b.md", "")

	if _, err := svc.Snooze(a); err != nil {
		t.Fatalf("first snooze: %v", err)
	}
	// Frozen clock: second snooze targets the identical name.
	_, err := svc.Snooze(b)
	if !errors.Is(err, vault.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if !strings.Contains(rec.last(t), "already exists") {
		t.Errorf("collision not surfaced: %q", rec.last(t))
	}
}

func TestMerge(t *testing.T) {
	rec := &recorder{}
	svc, v := newTestService(t, rec)
	a := mustCreate(t, v, "000_inbox/a.md", "A")
	b := mustCreate(t, v, "000_inbox/b.md", "B")

	// Selection order should not matter; names decide.
	merged, err := svc.Merge([]vault.Note{b, a}, "merged")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.Path != "000_inbox/merged.md" {
		t.Errorf("merged path = %q", merged.Path)
	}

	content, err := v.Read(merged)
	if err != nil {
		t.Fatalf("read merged: %v", err)
	}
	if content != "A\n\nB" {
		t.Errorf("merged content = %q, want %q", content, "A\n\nB")
	}

	for _, gone := range []string{"000_inbox/a.md", "000_inbox/b.md"} {
		if _, ok := v.GetByPath(gone); ok {
			t.Errorf("%s should be deleted", gone)
		}
	}
}

func TestMergeSkipsEmptyPieces(t *testing.T) {
	svc, v := newTestService(t, notify.Discard)
	a := mustCreate(t, v, "000_inbox/a.md", "A")
	blank := mustCreate(t, v, "000_inbox/blank.md", "   \n")

	merged, err := svc.Merge([]vault.Note{a, blank}, "merged")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if content, _ := v.Read(merged); content != "A" {
		t.Errorf("merged content = %q, want %q", content, "A")
	}
}

func TestMergeRejections(t *testing.T) {
	rec := &recorder{}
	svc, v := newTestService(t, rec)
	a := mustCreate(t, v, "000_inbox/a.md", "A")
	b := mustCreate(t, v, "000_inbox/b.md", "B")
	mustCreate(t, v, "000_inbox/taken.md", "")

	tests := []struct {
		name  string
		notes []vault.Note
		into  string
	}{
		{"single note", []vault.Note{a}, "merged"},
		{"empty name", []vault.Note{a, b}, "   "},
		{"target exists", []vault.Note{a, b}, "taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Merge(tt.notes, tt.into); err == nil {
				t.Fatal("expected rejection")
			}
			// No mutation on rejection
			for _, p := range []string{"000_inbox/a.md", "000_inbox/b.md"} {
				if _, ok := v.GetByPath(p); !ok {
					t.Errorf("%s should be untouched", p)
				}
			}
			if _, ok := v.GetByPath("000_inbox/merged.md"); ok {
				t.Error("merged.md should not exist")
			}
		})
	}
}
