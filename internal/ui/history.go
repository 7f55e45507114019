package ui

import "github.com/piwi3910/ToonChess/internal/model"

const defaultMaxDepth = 50

// Checkpoint captures the settings at a point in time.
type Checkpoint struct {
	Settings model.Snapshot
	Label    string // Human-readable description (e.g. "Change Difficulty")
}

// History manages undo/redo stacks of settings checkpoints.
type History struct {
	undoStack []Checkpoint
	redoStack []Checkpoint
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a checkpoint onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History) Push(c Checkpoint) {
	h.undoStack = append(h.undoStack, c)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent checkpoint from the undo stack and pushes
// the current state onto the redo stack. Returns the checkpoint to restore
// and true, or an empty checkpoint and false if nothing to undo.
func (h *History) Undo(current Checkpoint) (Checkpoint, bool) {
	if len(h.undoStack) == 0 {
		return Checkpoint{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent checkpoint from the redo stack and pushes
// the current state onto the undo stack. Returns the checkpoint to restore
// and true, or an empty checkpoint and false if nothing to redo.
func (h *History) Redo(current Checkpoint) (Checkpoint, bool) {
	if len(h.redoStack) == 0 {
		return Checkpoint{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one checkpoint to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one checkpoint to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoLabel returns the label of the change Undo would revert.
func (h *History) UndoLabel() string {
	if len(h.undoStack) == 0 {
		return ""
	}
	return h.undoStack[len(h.undoStack)-1].Label
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MakeCheckpoint creates a checkpoint holding a copy of settings.
func MakeCheckpoint(settings model.Snapshot, label string) Checkpoint {
	return Checkpoint{
		Settings: settings.Clone(),
		Label:    label,
	}
}
