package planner

import (
	"strings"
	"unicode/utf8"

	dayerr "github.com/daybook/daybook/internal/errors"
)

const (
	// MaxTitleLength bounds document and section titles
	MaxTitleLength = 120

	// MaxItemTextLength bounds a single checklist item
	MaxItemTextLength = 500

	// MaxNotesLength bounds a section's free-text notes
	MaxNotesLength = 10000
)

// ValidateTitle checks a document or section title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return dayerr.Validation("title cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return dayerr.Validationf("title exceeds %d characters", MaxTitleLength).
			WithMeta("length", utf8.RuneCountInString(trimmed))
	}
	return nil
}

// ValidateItemText checks a checklist item's text
func ValidateItemText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return dayerr.Validation("item text cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxItemTextLength {
		return dayerr.Validationf("item text exceeds %d characters", MaxItemTextLength).
			WithMeta("length", utf8.RuneCountInString(trimmed))
	}
	return nil
}

// ValidateNotes checks a section's free-text notes. Empty notes are
// valid; clearing notes is a normal edit.
func ValidateNotes(notes string) error {
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return dayerr.Validationf("notes exceed %d characters", MaxNotesLength).
			WithMeta("length", utf8.RuneCountInString(notes))
	}
	return nil
}
