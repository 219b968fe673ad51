package model

import (
	"fmt"
	"strings"
)

// QuestionType identifies the variant a Record carries.
type QuestionType string

const (
	// MultipleChoice is a stem with lettered options, one of them correct.
	MultipleChoice QuestionType = "multiple_choice"
	// TrueFalse is a statement with a boolean answer.
	TrueFalse QuestionType = "true_false"
	// Crossword is a set of numbered clues with across/down answers.
	Crossword QuestionType = "crossword"
)

// QuestionTypes lists all known types in a fixed, deterministic order.
var QuestionTypes = []QuestionType{MultipleChoice, TrueFalse, Crossword}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, TrueFalse, Crossword:
		return true
	}
	return false
}

// ParseQuestionType parses a type string as encoded in record filenames.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return t, nil
}

// Direction is a crossword entry orientation.
type Direction string

const (
	Across Direction = "across"
	Down   Direction = "down"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Across || d == Down
}

// Option is one answer choice of a multiple-choice question.
type Option struct {
	Label   string `json:"label" validate:"required"`
	Text    string `json:"text"`
	Correct bool   `json:"is_correct"`
}

// MultipleChoiceData is the multiple_choice record variant.
type MultipleChoiceData struct {
	Stem    string   `json:"stem" validate:"required"`
	Options []Option `json:"options" validate:"min=1,dive"`
}

// CorrectCount returns the number of options flagged correct.
func (d *MultipleChoiceData) CorrectCount() int {
	n := 0
	for _, o := range d.Options {
		if o.Correct {
			n++
		}
	}
	return n
}

// TrueFalseData is the true_false record variant.
type TrueFalseData struct {
	Statement string `json:"statement" validate:"required"`
	Correct   bool   `json:"correct_value"`
}

// Entry is one crossword clue/answer pair.
type Entry struct {
	Direction Direction `json:"direction" validate:"required,oneof=across down"`
	Number    int       `json:"number" validate:"min=1"`
	Clue      string    `json:"clue" validate:"required"`
	Answer    string    `json:"answer" validate:"required"`
}

// CrosswordData is the crossword record variant. One record covers one part
// of a source document's crossword activity.
type CrosswordData struct {
	PartID  string  `json:"part_id"`
	Entries []Entry `json:"entries" validate:"min=1,dive"`
}

// ImageRef describes an image bound to a record. The bytes themselves live
// in the intermediate directory's images/ subtree under Filename.
type ImageRef struct {
	SourceID string `json:"source_id" validate:"required"`
	Filename string `json:"filename" validate:"required"`
	Mime     string `json:"mime"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	SHA256   string `json:"sha256"`
}

// Record is one extracted question. Exactly one of the variant fields is
// set, matching Type. Warnings carry extraction ambiguities (for example a
// multiple-choice question with no emphasized option) so that packaging can
// surface them without re-reading the source document.
type Record struct {
	ActivityID string       `json:"activity_id" validate:"required"`
	OrderIndex int          `json:"order_index" validate:"min=1"`
	Type       QuestionType `json:"type" validate:"required,oneof=multiple_choice true_false crossword"`
	Images     []ImageRef   `json:"images,omitempty" validate:"dive"`
	Warnings   []string     `json:"warnings,omitempty"`

	MultipleChoice *MultipleChoiceData `json:"multiple_choice,omitempty"`
	TrueFalse      *TrueFalseData      `json:"true_false,omitempty"`
	Crossword      *CrosswordData      `json:"crossword,omitempty"`
}

// Variant returns the populated variant payload, or nil when the record is
// malformed (no payload, or payload not matching Type).
func (r *Record) Variant() any {
	switch r.Type {
	case MultipleChoice:
		if r.MultipleChoice != nil {
			return r.MultipleChoice
		}
	case TrueFalse:
		if r.TrueFalse != nil {
			return r.TrueFalse
		}
	case Crossword:
		if r.Crossword != nil {
			return r.Crossword
		}
	}
	return nil
}

// Filename returns the record's canonical file name within its activity
// directory: <type>_<order>.json with a zero-padded order index so that
// lexical and numeric ordering agree.
func (r *Record) Filename() string {
	return fmt.Sprintf("%s_%03d.json", r.Type, r.OrderIndex)
}

// AddWarning appends an extraction warning to the record.
func (r *Record) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
