package inbox

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"triage/internal/config"
	"triage/internal/dates"
	"triage/internal/logs"
	"triage/internal/notify"
	"triage/internal/vault"
)

// ReadMarker prefixes the filename of a note that has been marked read.
const ReadMarker = "(READ) "

// ErrEmptyInbox is returned by NextAfter when the inbox holds no notes.
var ErrEmptyInbox = errors.New("inbox is empty")

// Service defines inbox operations: membership, cycling, mark-read,
// snooze, and merge. Operations report their outcome through the
// notifier; callers should not notify again on the returned errors.
type Service interface {
	List() ([]vault.Note, error)
	Contains(note vault.Note) bool
	NextAfter(current *vault.Note) (vault.Note, error)
	MarkAsRead(note vault.Note) (vault.Note, error)
	Snooze(note vault.Note) (vault.Note, error)
	Merge(notes []vault.Note, name string) (vault.Note, error)
}

type serviceImpl struct {
	store    vault.Store
	cfg      *config.Config
	notifier notify.Notifier
	now      func() time.Time
}

// NewService creates an inbox Service over the given store.
func NewService(store vault.Store, cfg *config.Config, notifier notify.Notifier) Service {
	return &serviceImpl{
		store:    store,
		cfg:      cfg,
		notifier: notifier,
		now:      time.Now,
	}
}

// List returns every note in the inbox folder, order unspecified.
func (s *serviceImpl) List() ([]vault.Note, error) {
	entries, err := s.store.List()
	if err != nil {
		return nil, err
	}
	var inbox []vault.Note
	for _, n := range vault.Notes(entries) {
		if n.InFolder(s.cfg.InboxFolder) {
			inbox = append(inbox, n)
		}
	}
	return inbox, nil
}

// Contains reports whether the note belongs to the inbox folder.
func (s *serviceImpl) Contains(note vault.Note) bool {
	return note.InFolder(s.cfg.InboxFolder)
}

// NextAfter returns the note following current in alphabetical order,
// wrapping past the end. With no current note, or one outside the
// inbox, the first note is returned.
func (s *serviceImpl) NextAfter(current *vault.Note) (vault.Note, error) {
	inbox, err := s.List()
	if err != nil {
		return vault.Note{}, err
	}
	if len(inbox) == 0 {
		s.notifier.Notify("Inbox is empty")
		return vault.Note{}, ErrEmptyInbox
	}

	sortByName(inbox)

	index := -1
	if current != nil && s.Contains(*current) {
		for i, n := range inbox {
			if n.Path == current.Path {
				index = i
				break
			}
		}
	}
	return inbox[(index+1)%len(inbox)], nil
}

// MarkAsRead prefixes the note's filename with the read marker.
// Idempotent: an already-marked note is left alone and reported.
func (s *serviceImpl) MarkAsRead(note vault.Note) (vault.Note, error) {
	if strings.HasPrefix(note.Name(), ReadMarker) {
		s.notifier.Notify(fmt.Sprintf("%s is already marked as read", note.Name()))
		return note, nil
	}

	renamed, err := s.store.Rename(note, joinFolder(note.Folder(), ReadMarker+note.Name()))
	if err != nil {
		s.notifier.Notify(fmt.Sprintf("Could not mark %s as read: %v", note.Name(), err))
		return vault.Note{}, err
	}
	s.notifier.Notify(fmt.Sprintf("Marked %s as read", note.Name()))
	return renamed, nil
}

// Snooze renames the note to a timestamped name. Two snoozes within
// the same second collide on the target name; the conflict is
// surfaced, not swallowed.
func (s *serviceImpl) Snooze(note vault.Note) (vault.Note, error) {
	stamp := dates.Format(s.now(), s.cfg.TimestampFormat)
	newName := fmt.Sprintf("%s (snoozed).%s", stamp, note.Extension())

	renamed, err := s.store.Rename(note, joinFolder(note.Folder(), newName))
	if err != nil {
		if errors.Is(err, vault.ErrExists) {
			s.notifier.Notify(fmt.Sprintf("Could not snooze %s: %s already exists", note.Name(), newName))
		} else {
			s.notifier.Notify(fmt.Sprintf("Could not snooze %s: %v", note.Name(), err))
		}
		return vault.Note{}, err
	}
	s.notifier.Notify(fmt.Sprintf("Snoozed %s", note.Name()))
	return renamed, nil
}

// Merge concatenates the selected notes, alphabetically by name, into
// a new inbox note and deletes the originals. Deletions past a failure
// are still attempted; the merged note is never rolled back.
func (s *serviceImpl) Merge(notes []vault.Note, name string) (vault.Note, error) {
	name = strings.TrimSpace(name)
	if len(notes) < 2 {
		s.notifier.Notify("Select at least two notes to merge")
		return vault.Note{}, fmt.Errorf("merge needs at least two notes, got %d", len(notes))
	}
	if name == "" {
		s.notifier.Notify("Merge needs a name for the new note")
		return vault.Note{}, errors.New("merge target name is empty")
	}

	targetPath := path.Join(s.cfg.InboxFolder, name+".md")
	if _, ok := s.store.GetByPath(targetPath); ok {
		s.notifier.Notify(fmt.Sprintf("A note named %s.md already exists", name))
		return vault.Note{}, fmt.Errorf("%s: %w", targetPath, vault.ErrExists)
	}

	sorted := make([]vault.Note, len(notes))
	copy(sorted, notes)
	sortByName(sorted)

	var pieces []string
	for _, n := range sorted {
		content, err := s.store.Read(n)
		if err != nil {
			s.notifier.Notify(fmt.Sprintf("Could not read %s: %v", n.Name(), err))
			return vault.Note{}, err
		}
		if strings.TrimSpace(content) != "" {
			pieces = append(pieces, content)
		}
	}

	merged, err := s.store.Create(targetPath, strings.Join(pieces, "\n\n"))
	if err != nil {
		s.notifier.Notify(fmt.Sprintf("Could not create %s.md: %v", name, err))
		return vault.Note{}, err
	}

	var failed []string
	for _, n := range sorted {
		if err := s.store.Delete(n); err != nil {
			logs.Logger.WithError(err).Warnf("merge: could not delete %s", n.Path)
			failed = append(failed, n.Name())
		}
	}
	if len(failed) > 0 {
		s.notifier.Notify(fmt.Sprintf("Merged into %s.md, but could not delete: %s", name, strings.Join(failed, ", ")))
	} else {
		s.notifier.Notify(fmt.Sprintf("Merged %d notes into %s.md", len(sorted), name))
	}
	return merged, nil
}

func sortByName(notes []vault.Note) {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Name() < notes[j].Name()
	})
}

func joinFolder(folder, name string) string {
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}
