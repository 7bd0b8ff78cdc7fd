// Package form tracks the lifecycle of an edit over one record.
package form

import (
	"reflect"

	"adminconsole/internal/domain"
)

// Mode is the session's lifecycle phase.
type Mode int

const (
	// Viewing shows stored values; edits are not accepted.
	Viewing Mode = iota
	// Editing holds a draft the user is changing.
	Editing
	// Submitting means a save is in flight; further edits are blocked
	// until it settles.
	Submitting
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

// EditSession carries a record through view, edit, and save. The
// original snapshot is kept so a cancel can restore exactly what was
// loaded, and a failed save keeps the draft for another attempt.
type EditSession[T any] struct {
	mode     Mode
	original T
	draft    T
}

// NewEditSession starts in Viewing over the loaded record.
func NewEditSession[T any](record T) *EditSession[T] {
	return &EditSession[T]{mode: Viewing, original: record, draft: record}
}

func (s *EditSession[T]) Mode() Mode { return s.mode }

// Value returns the record as it should currently display: the draft
// while editing or submitting, the original otherwise.
func (s *EditSession[T]) Value() T {
	if s.mode == Viewing {
		return s.original
	}
	return s.draft
}

// Original returns the snapshot taken when the session started.
func (s *EditSession[T]) Original() T { return s.original }

// Dirty reports whether the draft has diverged from the original.
// Callers use it as the unsaved-changes guard before navigating away or
// cancelling: a clean session needs no confirmation.
func (s *EditSession[T]) Dirty() bool {
	if s.mode == Viewing {
		return false
	}
	return !reflect.DeepEqual(s.draft, s.original)
}

// Begin switches to Editing. The draft starts from the original.
func (s *EditSession[T]) Begin() error {
	if s.mode == Submitting {
		return domain.Invalid("session", "a save is already in progress")
	}
	s.draft = s.original
	s.mode = Editing
	return nil
}

// Apply replaces the draft. Only legal while editing.
func (s *EditSession[T]) Apply(draft T) error {
	if s.mode != Editing {
		return domain.Invalidf("session", "cannot edit while %s", s.mode)
	}
	s.draft = draft
	return nil
}

// Cancel abandons the draft and restores the original values.
func (s *EditSession[T]) Cancel() error {
	if s.mode == Submitting {
		return domain.Invalid("session", "cannot cancel while a save is in progress")
	}
	s.draft = s.original
	s.mode = Viewing
	return nil
}

// Submit runs save with the draft. On success the draft becomes the new
// original and the session returns to Viewing; on failure the draft is
// kept and the session stays in Editing.
func (s *EditSession[T]) Submit(save func(T) (T, error)) error {
	if s.mode != Editing {
		return domain.Invalidf("session", "cannot submit while %s", s.mode)
	}
	s.mode = Submitting
	saved, err := save(s.draft)
	if err != nil {
		s.mode = Editing
		return err
	}
	s.original = saved
	s.draft = saved
	s.mode = Viewing
	return nil
}
