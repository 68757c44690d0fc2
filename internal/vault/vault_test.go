package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func TestOpenRejectsMissingDir(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestCreateReadModifyDelete(t *testing.T) {
	v := newTestVault(t)

	note, err := v.Create("000_inbox/a.md", "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.Path != "000_inbox/a.md" {
		t.Errorf("unexpected path %q", note.Path)
	}

	content, err := v.Read(note)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if content != "hello" {
		t.Errorf("read = %q, want %q", content, "hello")
	}

	if err := v.Modify(note, "bye"); err != nil {
		t.Fatalf("modify: %v", err)
	}
	if content, _ := v.Read(note); content != "bye" {
		t.Errorf("after modify read = %q", content)
	}

	if err := v.Delete(note); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := v.GetByPath(note.Path); ok {
		t.Error("note should be gone")
	}
}

func TestCreateFailsWhenPathTaken(t *testing.T) {
	v := newTestVault(t)
	if _, err := v.Create("a.md", "one"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := v.Create("a.md", "two")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	// Original content untouched
	if content, _ := v.Read(Note{Path: "a.md"}); content != "one" {
		t.Errorf("content clobbered: %q", content)
	}
}

func TestRename(t *testing.T) {
	v := newTestVault(t)
	note, _ := v.Create("a.md", "x")

	renamed, err := v.Rename(note, "(READ) a.md")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name() != "(READ) a.md" {
		t.Errorf("renamed to %q", renamed.Name())
	}
	if _, ok := v.GetByPath("a.md"); ok {
		t.Error("old path still exists")
	}
}

func TestRenameFailsOnCollision(t *testing.T) {
	v := newTestVault(t)
	a, _ := v.Create("a.md", "x")
	v.Create("b.md", "y")

	if _, err := v.Rename(a, "b.md"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestReadMissingNote(t *testing.T) {
	v := newTestVault(t)
	if _, err := v.Read(Note{Path: "ghost.md"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSkipsHiddenAndTagsFolders(t *testing.T) {
	v := newTestVault(t)
	v.Create("000_inbox/a.md", "")
	v.Create("000_inbox/b.md", "")
	v.Create("other/c.md", "")
	os.MkdirAll(filepath.Join(v.Root(), ".obsidian"), 0755)
	os.WriteFile(filepath.Join(v.Root(), ".obsidian", "app.json"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(v.Root(), ".hidden.md"), []byte(""), 0644)

	entries, err := v.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var notes, folders int
	for _, e := range entries {
		switch e.Kind {
		case KindNote:
			notes++
		case KindFolder:
			folders++
		}
	}
	if notes != 3 {
		t.Errorf("expected 3 notes, got %d (%v)", notes, entries)
	}
	if folders != 2 {
		t.Errorf("expected 2 folders, got %d (%v)", folders, entries)
	}

	if got := Notes(entries); len(got) != 3 {
		t.Errorf("Notes() = %d entries", len(got))
	}
}

func TestNoteAccessors(t *testing.T) {
	n := Note{Path: "000_inbox/nested/Tue 09 41 00 (snoozed).md"}

	if got := n.Name(); got != "Tue 09 41 00 (snoozed).md" {
		t.Errorf("Name = %q", got)
	}
	if got := n.Basename(); got != "Tue 09 41 00 (snoozed)" {
		t.Errorf("Basename = %q", got)
	}
	if got := n.Extension(); got != "md" {
		t.Errorf("Extension = %q", got)
	}
	if got := n.Folder(); got != "000_inbox/nested" {
		t.Errorf("Folder = %q", got)
	}
}

func TestInFolder(t *testing.T) {
	tests := []struct {
		path   string
		folder string
		want   bool
	}{
		{"000_inbox/a.md", "000_inbox", true},
		{"000_inbox/sub/a.md", "000_inbox", true},
		{"000_inbox2/a.md", "000_inbox", false},
		{"a.md", "000_inbox", false},
		{"001_journal/2024-03-15.md", "001_journal", true},
	}

	for _, tt := range tests {
		n := Note{Path: tt.path}
		if got := n.InFolder(tt.folder); got != tt.want {
			t.Errorf("InFolder(%q, %q) = %v, want %v", tt.path, tt.folder, got, tt.want)
		}
	}
}
