package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for the store's collision and lookup failures.
var (
	ErrExists   = errors.New("a note already exists at that path")
	ErrNotFound = errors.New("note not found")
)

// Store is the note storage contract consumed by the workflow
// services. Vault is the on-disk implementation; tests may substitute
// their own.
type Store interface {
	List() ([]Entry, error)
	Read(note Note) (string, error)
	Create(notePath, content string) (Note, error)
	Modify(note Note, content string) error
	Rename(note Note, newPath string) (Note, error)
	Delete(note Note) error
	GetByPath(notePath string) (Note, bool)
}

// Vault is a directory of notes on disk.
type Vault struct {
	root string
}

// Open returns a Vault rooted at dir. The directory must exist.
func Open(dir string) (*Vault, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("vault directory not found: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", dir)
	}
	return &Vault{root: dir}, nil
}

// Root returns the vault's absolute directory.
func (v *Vault) Root() string {
	return v.root
}

// Abs converts a vault-relative path to an absolute filesystem path.
func (v *Vault) Abs(notePath string) string {
	return filepath.Join(v.root, filepath.FromSlash(notePath))
}

// List walks the vault and returns every entry, skipping hidden files
// and directories. Order is unspecified; callers sort.
func (v *Vault) List() ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == v.root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		kind := KindNote
		if d.IsDir() {
			kind = KindFolder
		}
		entries = append(entries, Entry{Kind: kind, Path: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list vault %s: %w", v.root, err)
	}
	return entries, nil
}

// Read returns the note's full content.
func (v *Vault) Read(note Note) (string, error) {
	data, err := os.ReadFile(v.Abs(note.Path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", note.Path, ErrNotFound)
		}
		return "", fmt.Errorf("read %s: %w", note.Path, err)
	}
	return string(data), nil
}

// Create writes a new note. Fails with ErrExists when the path is
// already taken.
func (v *Vault) Create(notePath, content string) (Note, error) {
	abs := v.Abs(notePath)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return Note{}, fmt.Errorf("create %s: %w", notePath, err)
	}
	f, err := os.OpenFile(abs, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Note{}, fmt.Errorf("%s: %w", notePath, ErrExists)
		}
		return Note{}, fmt.Errorf("create %s: %w", notePath, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return Note{}, fmt.Errorf("create %s: %w", notePath, err)
	}
	return Note{Path: notePath}, nil
}

// Modify overwrites the note's content.
func (v *Vault) Modify(note Note, content string) error {
	if _, ok := v.GetByPath(note.Path); !ok {
		return fmt.Errorf("%s: %w", note.Path, ErrNotFound)
	}
	if err := os.WriteFile(v.Abs(note.Path), []byte(content), 0644); err != nil {
		return fmt.Errorf("modify %s: %w", note.Path, err)
	}
	return nil
}

// Rename moves the note to newPath. Fails with ErrExists when a note
// already occupies the target.
func (v *Vault) Rename(note Note, newPath string) (Note, error) {
	if _, ok := v.GetByPath(newPath); ok {
		return Note{}, fmt.Errorf("%s: %w", newPath, ErrExists)
	}
	absNew := v.Abs(newPath)
	if err := os.MkdirAll(filepath.Dir(absNew), 0755); err != nil {
		return Note{}, fmt.Errorf("rename %s: %w", note.Path, err)
	}
	if err := os.Rename(v.Abs(note.Path), absNew); err != nil {
		return Note{}, fmt.Errorf("rename %s to %s: %w", note.Path, newPath, err)
	}
	return Note{Path: newPath}, nil
}

// Delete removes the note.
func (v *Vault) Delete(note Note) error {
	if err := os.Remove(v.Abs(note.Path)); err != nil {
		return fmt.Errorf("delete %s: %w", note.Path, err)
	}
	return nil
}

// GetByPath returns the note at the given vault-relative path, if a
// regular file exists there.
func (v *Vault) GetByPath(notePath string) (Note, bool) {
	info, err := os.Stat(v.Abs(notePath))
	if err != nil || info.IsDir() {
		return Note{}, false
	}
	return Note{Path: notePath}, true
}
