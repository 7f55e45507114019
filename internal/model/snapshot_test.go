package model

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeStoredValuesWin(t *testing.T) {
	defaults := Snapshot{KeyDifficulty: "easy", KeyAI: "stockfish"}
	stored := map[string]string{KeyDifficulty: "hard", "legacy_option": "1"}

	merged := Merge(defaults, stored)

	assert.Equal(t, "hard", merged[KeyDifficulty])
	assert.Equal(t, "stockfish", merged[KeyAI])
	assert.Equal(t, "1", merged["legacy_option"], "unknown keys are carried along")
	assert.Equal(t, "easy", defaults[KeyDifficulty], "defaults must not be modified")
}

func TestSnapshotColorFallsBackToDefault(t *testing.T) {
	s := Snapshot{KeyBoardColor1: "garbage"}
	assert.Equal(t, Color{R: 179, G: 153, B: 105}, s.Color(KeyBoardColor1))
	assert.Equal(t, Color{}, s.Color("unknown_color"))
}

func TestSnapshotSetColor(t *testing.T) {
	s := Snapshot{}
	s.SetColor(KeyBackgroundColor, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff})
	assert.Equal(t, "1,2,3", s[KeyBackgroundColor])
	assert.Equal(t, Color{R: 1, G: 2, B: 3}, s.Color(KeyBackgroundColor))
}

func TestSnapshotBool(t *testing.T) {
	s := Snapshot{}
	assert.False(t, s.Bool(KeyShowSuggestedMove))
	s.SetBool(KeyShowSuggestedMove, true)
	assert.Equal(t, "true", s[KeyShowSuggestedMove])
	assert.True(t, s.Bool(KeyShowSuggestedMove))
	s.SetBool(KeyShowSuggestedMove, false)
	assert.Equal(t, "false", s[KeyShowSuggestedMove])
}

func TestSnapshotPersistedDropsInternalKeys(t *testing.T) {
	s := Snapshot{KeyAI: "stockfish", "_window_x": "10", "dirty_": "true"}
	p := s.Persisted()
	assert.Equal(t, Snapshot{KeyAI: "stockfish"}, p)
	assert.Len(t, s, 3, "original is untouched")
}

func TestSnapshotCloneAndEqual(t *testing.T) {
	s := Defaults()
	c := s.Clone()
	assert.True(t, s.Equal(c))

	c[KeyMode] = "window"
	assert.False(t, s.Equal(c))
	assert.Equal(t, "fullscreen", s[KeyMode])

	var nilSnap Snapshot
	assert.Nil(t, nilSnap.Clone())
}

func TestSnapshotKeysSorted(t *testing.T) {
	s := Snapshot{"b": "1", "a": "2", "c": "3"}
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())
}
