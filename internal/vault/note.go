package vault

import (
	"path"
	"strings"
)

// Kind tags a vault entry as either a regular note file or a folder.
type Kind int

const (
	KindNote Kind = iota
	KindFolder
)

// Entry is a single filesystem entry inside the vault, identified by
// its vault-relative, slash-separated path.
type Entry struct {
	Kind Kind
	Path string
}

// Note is a regular file inside the vault.
type Note struct {
	Path string // vault-relative, slash-separated
}

// Name returns the filename including extension.
func (n Note) Name() string {
	return path.Base(n.Path)
}

// Basename returns the filename without its extension.
func (n Note) Basename() string {
	name := n.Name()
	return strings.TrimSuffix(name, path.Ext(name))
}

// Extension returns the filename extension without the leading dot.
func (n Note) Extension() string {
	return strings.TrimPrefix(path.Ext(n.Path), ".")
}

// Folder returns the parent folder path, "" for vault-root notes.
func (n Note) Folder() string {
	dir := path.Dir(n.Path)
	if dir == "." {
		return ""
	}
	return dir
}

// InFolder reports whether the note lives in folder or any of its
// subfolders.
func (n Note) InFolder(folder string) bool {
	return n.Folder() == folder || strings.HasPrefix(n.Path, folder+"/")
}

// Notes filters entries down to the note variant.
func Notes(entries []Entry) []Note {
	var notes []Note
	for _, e := range entries {
		if e.Kind == KindNote {
			notes = append(notes, Note{Path: e.Path})
		}
	}
	return notes
}
