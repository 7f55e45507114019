package model

import (
	"image/color"
	"sort"
)

// Snapshot maps setting names to their string-encoded values. It may hold
// keys the launcher does not know about; those are carried along so they
// survive a save.
type Snapshot map[string]string

// Defaults returns a fresh snapshot holding every built-in default.
func Defaults() Snapshot {
	s := make(Snapshot, len(specs))
	for _, spec := range specs {
		s[spec.Key] = spec.Default
	}
	return s
}

// Merge overlays stored values on top of defaults. Stored values win on
// conflict; neither argument is modified.
func Merge(defaults, stored map[string]string) Snapshot {
	out := make(Snapshot, len(defaults)+len(stored))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range stored {
		out[k] = v
	}
	return out
}

// Get returns the value for key and whether it is present.
func (s Snapshot) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Set stores value under key without validation.
func (s Snapshot) Set(key, value string) {
	s[key] = value
}

// Bool returns the boolean value of key, false when missing or malformed.
func (s Snapshot) Bool(key string) bool {
	return s[key] == "true"
}

// SetBool stores a boolean as its literal text.
func (s Snapshot) SetBool(key string, v bool) {
	if v {
		s[key] = "true"
	} else {
		s[key] = "false"
	}
}

// Color parses the color stored under key. Missing or malformed values
// fall back to the built-in default for that key, or black.
func (s Snapshot) Color(key string) Color {
	if c, err := ParseColor(s[key]); err == nil {
		return c
	}
	if spec, ok := Lookup(key); ok {
		if c, err := ParseColor(spec.Default); err == nil {
			return c
		}
	}
	return Color{}
}

// SetColor stores c as "R,G,B", discarding any alpha.
func (s Snapshot) SetColor(key string, c color.Color) {
	s[key] = ColorFrom(c).String()
}

// Keys returns all keys in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Persisted returns the entries that belong in the config file, i.e.
// everything except internal keys.
func (s Snapshot) Persisted() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		if IsInternal(k) {
			continue
		}
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of s.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal reports whether s and other hold the same entries.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
