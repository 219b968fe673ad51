package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Structural validation errors.
var (
	ErrMissingVariant  = errors.New("record has no payload for its declared type")
	ErrVariantMismatch = errors.New("record payload does not match its declared type")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a record against the intermediate schema. It is used by
// the folder scanner before a record is admitted into a build task: a record
// that fails here is skipped and reported, never silently packaged.
func (r *Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("record schema: %w", err)
	}

	if r.Variant() == nil {
		return ErrMissingVariant
	}
	set := 0
	if r.MultipleChoice != nil {
		set++
	}
	if r.TrueFalse != nil {
		set++
	}
	if r.Crossword != nil {
		set++
	}
	if set != 1 {
		return ErrVariantMismatch
	}

	switch r.Type {
	case MultipleChoice:
		// Zero or several correct options is a detection ambiguity, legal
		// only when the extractor recorded it as such.
		if r.MultipleChoice.CorrectCount() != 1 && len(r.Warnings) == 0 {
			return fmt.Errorf("multiple_choice record with %d correct options and no ambiguity warning",
				r.MultipleChoice.CorrectCount())
		}
	case Crossword:
		type key struct {
			dir Direction
			num int
		}
		seen := make(map[key]bool)
		for _, e := range r.Crossword.Entries {
			k := key{e.Direction, e.Number}
			if seen[k] {
				return fmt.Errorf("duplicate crossword entry %d (%s) in part %q",
					e.Number, e.Direction, r.Crossword.PartID)
			}
			seen[k] = true
		}
	}

	return nil
}
