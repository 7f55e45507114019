package ui

import (
	"fyne.io/fyne/v2/widget"
)

// commitEntry is a single-line entry that reports its text only when the
// user is done with it: on Enter or when focus leaves the field. Typing
// alone never commits.
type commitEntry struct {
	widget.Entry
	onCommit func(text string)
}

func newCommitEntry(onCommit func(text string)) *commitEntry {
	e := &commitEntry{onCommit: onCommit}
	e.ExtendBaseWidget(e)
	e.OnSubmitted = func(string) { e.commit() }
	return e
}

// FocusLost commits the current text.
func (e *commitEntry) FocusLost() {
	e.Entry.FocusLost()
	e.commit()
}

func (e *commitEntry) commit() {
	if e.onCommit != nil {
		e.onCommit(e.Text)
	}
}
