package daily

import (
	"fmt"
	"path"
	"strings"
	"time"

	"triage/internal/config"
	"triage/internal/dates"
	"triage/internal/logs"
	"triage/internal/notify"
	"triage/internal/vault"
)

// DateLayout keys daily notes by calendar date.
const DateLayout = "2006-01-02"

// Service moves content between daily notes and the inbox. State is
// carried by note content itself; the only stored marker is the
// settings' LastImportDate guard.
type Service interface {
	NotePath(day time.Time) string
	HasContent(day time.Time) (bool, error)
	ShouldPrompt(today time.Time) bool
	ImportToInbox(day time.Time) error
	MoveToDaily(note vault.Note, day time.Time) error
}

type serviceImpl struct {
	store    vault.Store
	cfg      *config.Config
	notifier notify.Notifier
	persist  func() error // saves cfg after LastImportDate changes
	now      func() time.Time
}

// NewService creates a daily-note Service. persist is invoked whenever
// the service mutates the settings' import marker.
func NewService(store vault.Store, cfg *config.Config, notifier notify.Notifier, persist func() error) Service {
	return &serviceImpl{
		store:    store,
		cfg:      cfg,
		notifier: notifier,
		persist:  persist,
		now:      time.Now,
	}
}

// NotePath returns the vault-relative path of the daily note for day.
func (s *serviceImpl) NotePath(day time.Time) string {
	return path.Join(s.cfg.DailyFolder, day.Format(DateLayout)+".md")
}

// HasContent reports whether the daily note for day exists and holds
// non-whitespace content.
func (s *serviceImpl) HasContent(day time.Time) (bool, error) {
	note, ok := s.store.GetByPath(s.NotePath(day))
	if !ok {
		return false, nil
	}
	content, err := s.store.Read(note)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(content) != "", nil
}

// ShouldPrompt decides whether the startup check should offer to
// import today's daily note. A background probe: failures are logged,
// never notified.
func (s *serviceImpl) ShouldPrompt(today time.Time) bool {
	if !s.cfg.AutoImport {
		return false
	}
	if s.cfg.LastImportDate == today.Format(DateLayout) {
		return false
	}
	has, err := s.HasContent(today)
	if err != nil {
		logs.Logger.WithError(err).Warn("auto-import check failed")
		return false
	}
	return has
}

// ImportToInbox empties the daily note for day into a new
// timestamp-named inbox note. A missing or whitespace-only daily note
// is a silent no-op. When day is today the import marker is advanced
// and persisted so the startup prompt does not recur today.
func (s *serviceImpl) ImportToInbox(day time.Time) error {
	note, ok := s.store.GetByPath(s.NotePath(day))
	if !ok {
		return nil
	}
	content, err := s.store.Read(note)
	if err != nil {
		s.notifier.Notify(fmt.Sprintf("Could not read %s: %v", note.Name(), err))
		return err
	}
	if strings.TrimSpace(content) == "" {
		return nil
	}

	stamp := dates.Format(s.now(), s.cfg.TimestampFormat)
	inboxPath := path.Join(s.cfg.InboxFolder, stamp+".md")
	if _, err := s.store.Create(inboxPath, content); err != nil {
		// Usually a same-second name collision. Low severity, but
		// never swallowed.
		logs.Logger.WithError(err).Errorf("import: could not create %s", inboxPath)
		return err
	}

	if err := s.store.Modify(note, ""); err != nil {
		s.notifier.Notify(fmt.Sprintf("Imported to inbox, but could not clear %s: %v", note.Name(), err))
		return err
	}

	today := s.now().Format(DateLayout)
	if day.Format(DateLayout) == today {
		s.cfg.LastImportDate = today
		if err := s.persist(); err != nil {
			logs.Logger.WithError(err).Warn("could not persist import marker")
		}
	}

	s.notifier.Notify(fmt.Sprintf("Imported %s into the inbox", note.Name()))
	return nil
}

// MoveToDaily appends the note's content to the daily note for day,
// creating it first when absent, then deletes the source. The three
// steps form one logical operation: a failure after the daily note was
// touched leaves a partial result, which is reported, never hidden.
func (s *serviceImpl) MoveToDaily(note vault.Note, day time.Time) error {
	content, err := s.store.Read(note)
	if err != nil {
		s.notifier.Notify(fmt.Sprintf("Could not read %s: %v", note.Name(), err))
		return err
	}

	dailyPath := s.NotePath(day)
	dailyNote, ok := s.store.GetByPath(dailyPath)
	if !ok {
		if dailyNote, err = s.store.Create(dailyPath, ""); err != nil {
			s.notifier.Notify(fmt.Sprintf("Could not create %s: %v", dailyPath, err))
			return err
		}
	}

	existing, err := s.store.Read(dailyNote)
	if err != nil {
		s.notifier.Notify(fmt.Sprintf("Could not read %s: %v", dailyNote.Name(), err))
		return err
	}

	updated := content
	if strings.TrimSpace(existing) != "" {
		updated = existing + "\n\n" + content
	}
	if err := s.store.Modify(dailyNote, updated); err != nil {
		s.notifier.Notify(fmt.Sprintf("Could not update %s: %v", dailyNote.Name(), err))
		return err
	}

	if err := s.store.Delete(note); err != nil {
		s.notifier.Notify(fmt.Sprintf("Moved content to %s, but could not delete %s: %v", dailyNote.Name(), note.Name(), err))
		return err
	}

	s.notifier.Notify(fmt.Sprintf("Moved %s to %s", note.Name(), dailyNote.Name()))
	return nil
}
