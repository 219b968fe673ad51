package extract

import (
	"strings"

	"github.com/gmixoulis/docx-to-h5p/docx"
	"github.com/gmixoulis/docx-to-h5p/model"
)

// mcBuilder accumulates one multiple-choice question: the numbered stem line
// plus the option lines that follow it.
type mcBuilder struct {
	number  string
	stem    string
	options []model.Option
}

func newMCBuilder(number, stem string) *mcBuilder {
	return &mcBuilder{number: number, stem: strings.TrimSpace(stem)}
}

// continueStem appends a content line seen before the first option.
func (b *mcBuilder) continueStem(text string) {
	if b.stem == "" {
		b.stem = text
	} else {
		b.stem += " " + text
	}
}

// continueOption appends a content line seen after options started; wrapped
// option text keeps flowing into the last option.
func (b *mcBuilder) continueOption(text string) {
	opt := &b.options[len(b.options)-1]
	opt.Text += " " + text
}

// addOption records one lettered option. Correctness comes from emphasis:
// the option is correct iff any run on its line is bold.
func (b *mcBuilder) addOption(label, text string, line docx.Line) {
	b.options = append(b.options, model.Option{
		Label:   strings.ToLower(label),
		Text:    strings.TrimSpace(text),
		Correct: anyBold(line),
	})
}

// build finalizes the record. Ambiguous emphasis (zero or several bold
// options) is kept, flagged with a warning rather than guessed at. A
// question with no options at all yields no record.
func (b *mcBuilder) build(activity string, index int) (*model.Record, bool) {
	if len(b.options) == 0 {
		return nil, false
	}

	rec := &model.Record{
		ActivityID: activity,
		OrderIndex: index,
		Type:       model.MultipleChoice,
		MultipleChoice: &model.MultipleChoiceData{
			Stem:    b.stem,
			Options: b.options,
		},
	}
	if n := rec.MultipleChoice.CorrectCount(); n != 1 {
		rec.AddWarning("question %s: %d options emphasized, expected exactly 1", b.number, n)
	}
	return rec, true
}

// anyBold reports whether any run carrying visible text on the line is bold.
func anyBold(line docx.Line) bool {
	for _, r := range line.Runs {
		if r.Bold && strings.TrimSpace(r.Text) != "" {
			return true
		}
	}
	return false
}
