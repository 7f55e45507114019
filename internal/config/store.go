// Package config persists launcher settings in the flat "key value" text
// file read by the game.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/ToonChess/internal/model"
)

// FileName is the name of the settings file inside the config directory.
const FileName = "config.txt"

// MaxLineLength is the longest line Load accepts; longer lines are
// treated as malformed.
const MaxLineLength = 4096

var (
	// ErrMalformedLine marks a config line that did not split into exactly
	// one key and one value.
	ErrMalformedLine = errors.New("malformed config line")
	// ErrWrite marks a failure to persist the settings file.
	ErrWrite = errors.New("config write failed")
)

// MalformedError lists the lines skipped by Load.
type MalformedError struct {
	Path  string
	Lines []int // 1-based line numbers
}

func (e *MalformedError) Error() string {
	nums := make([]string, len(e.Lines))
	for i, n := range e.Lines {
		nums[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("%s: skipped %d malformed line(s): %s", e.Path, len(e.Lines), strings.Join(nums, ", "))
}

func (e *MalformedError) Unwrap() error { return ErrMalformedLine }

// DefaultConfigDir returns the default directory for launcher configuration.
// On all platforms this is ~/.toonchess/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".toonchess")
}

// DefaultConfigPath returns the default path for the settings file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), FileName)
}

// Store reads and writes one settings file.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads all settings from disk. A missing file yields an empty map and
// no error. Lines that do not hold exactly two whitespace-separated tokens,
// or are longer than MaxLineLength, are skipped; in that case the parsed
// values are still returned together with a *MalformedError so the caller
// can warn and carry on.
func (s *Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	values, bad := parse(data)
	if len(bad) > 0 {
		return values, &MalformedError{Path: s.path, Lines: bad}
	}
	return values, nil
}

func parse(data []byte) (map[string]string, []int) {
	values := make(map[string]string)
	var bad []int

	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(line) > MaxLineLength || len(fields) != 2 {
			bad = append(bad, i+1)
			continue
		}
		values[fields[0]] = fields[1]
	}
	return values, bad
}

// Encode renders a snapshot in file format: one "key value" line per
// persisted entry, sorted by key. Internal keys are dropped. Values are
// written exactly as given, so every value must already be valid.
func Encode(snapshot model.Snapshot) ([]byte, error) {
	persisted := snapshot.Persisted()

	var buf bytes.Buffer
	for _, key := range persisted.Keys() {
		value := persisted[key]
		if err := model.Validate(key, value); err != nil {
			return nil, err
		}
		buf.WriteString(key)
		buf.WriteByte(' ')
		buf.WriteString(value)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Save replaces the settings file with the contents of snapshot. The new
// content is written to a temporary file in the same directory and renamed
// over the old one, so a failed save leaves the previous file intact.
func (s *Store) Save(snapshot model.Snapshot) error {
	data, err := Encode(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
