package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/piwi3910/ToonChess/internal/config"
	"github.com/piwi3910/ToonChess/internal/model"
)

// SettingsStore is the persistence the Session writes through.
type SettingsStore interface {
	Load() (map[string]string, error)
	Save(snapshot model.Snapshot) error
}

// Session holds the settings currently shown in the launcher and mirrors
// every change to disk. It is not safe for concurrent use; all calls come
// from the UI thread.
type Session struct {
	store     SettingsStore
	defaults  model.Snapshot
	current   model.Snapshot
	history   *History
	observers []func(key, value string)
	warnings  []error
	logger    *slog.Logger
}

// NewSession loads the persisted settings and merges them over defaults.
// Problems reading the file never prevent startup; they are logged and
// kept as warnings, and the affected settings fall back to their defaults.
func NewSession(store SettingsStore, defaults model.Snapshot, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		store:    store,
		defaults: defaults.Clone(),
		history:  NewHistory(),
		logger:   logger,
	}

	stored, err := store.Load()
	switch {
	case err == nil:
	case errors.Is(err, config.ErrMalformedLine):
		s.warn(err)
	default:
		s.warn(fmt.Errorf("using default settings: %w", err))
		stored = nil
	}

	valid := make(map[string]string, len(stored))
	for key, value := range stored {
		if model.IsInternal(key) {
			continue
		}
		if err := model.Validate(key, value); err != nil {
			s.warn(fmt.Errorf("ignoring stored setting: %w", err))
			continue
		}
		valid[key] = value
	}
	s.current = model.Merge(s.defaults, valid)
	return s
}

func (s *Session) warn(err error) {
	s.warnings = append(s.warnings, err)
	s.logger.Warn("settings problem", "error", err)
}

// Warnings returns the problems found while loading the settings file.
func (s *Session) Warnings() []error {
	return s.warnings
}

// Snapshot returns a copy of the current settings.
func (s *Session) Snapshot() model.Snapshot {
	return s.current.Clone()
}

// Value returns the current value of key.
func (s *Session) Value(key string) string {
	return s.current[key]
}

// History exposes the undo/redo stacks.
func (s *Session) History() *History {
	return s.history
}

// Subscribe registers fn to be called with every setting that changes,
// after the new value is in place.
func (s *Session) Subscribe(fn func(key, value string)) {
	s.observers = append(s.observers, fn)
}

// Save writes the current settings to disk.
func (s *Session) Save() error {
	return s.store.Save(s.current)
}

// Set validates and applies a single change, then saves. Setting a key to
// its current value does nothing. A save failure is returned after the
// change has been applied in memory.
func (s *Session) Set(key, value string) error {
	if err := model.Validate(key, value); err != nil {
		return err
	}
	if old, ok := s.current[key]; ok && old == value {
		return nil
	}

	label := key
	if spec, ok := model.Lookup(key); ok {
		label = spec.Label
	}
	s.history.Push(MakeCheckpoint(s.current, "Change "+label))

	s.current[key] = value
	s.logger.Debug("setting changed", "key", key, "value", value)
	s.notify(key, value)
	return s.Save()
}

// Reset restores every built-in default and saves. Settings the launcher
// does not know about are kept.
func (s *Session) Reset() error {
	next := s.defaults.Clone()
	for key, value := range s.current {
		if _, known := model.Lookup(key); !known {
			next[key] = value
		}
	}
	return s.apply(next, "Reset to defaults")
}

// Replace swaps in settings, for example from an imported backup. Missing
// known settings fall back to their defaults.
func (s *Session) Replace(settings model.Snapshot, label string) error {
	for key, value := range settings {
		if err := model.Validate(key, value); err != nil {
			return err
		}
	}
	return s.apply(model.Merge(s.defaults, settings.Persisted()), label)
}

// Undo reverts the most recent change and saves. It reports false when
// there was nothing to undo.
func (s *Session) Undo() (bool, error) {
	cp, ok := s.history.Undo(MakeCheckpoint(s.current, "Undo"))
	if !ok {
		return false, nil
	}
	return true, s.restore(cp.Settings)
}

// Redo re-applies the most recently undone change and saves.
func (s *Session) Redo() (bool, error) {
	cp, ok := s.history.Redo(MakeCheckpoint(s.current, "Redo"))
	if !ok {
		return false, nil
	}
	return true, s.restore(cp.Settings)
}

func (s *Session) apply(next model.Snapshot, label string) error {
	if next.Equal(s.current) {
		return s.Save()
	}
	s.history.Push(MakeCheckpoint(s.current, label))
	return s.restore(next)
}

func (s *Session) restore(next model.Snapshot) error {
	prev := s.current
	s.current = next.Clone()

	keys := model.Merge(prev, s.current).Keys()
	for _, key := range keys {
		if prev[key] != s.current[key] {
			s.notify(key, s.current[key])
		}
	}
	return s.Save()
}

func (s *Session) notify(key, value string) {
	for _, fn := range s.observers {
		fn(key, value)
	}
}
