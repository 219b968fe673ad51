package extract

import (
	"strings"

	"github.com/gmixoulis/docx-to-h5p/docx"
	"github.com/gmixoulis/docx-to-h5p/model"
)

// tfBuilder accumulates one true/false statement. A statement may span
// several lines; it is terminated only by an emphasized trailing "True" or
// "False" marker.
type tfBuilder struct {
	parts []string
}

// add consumes one content line. It returns the finished record data when
// the line ends in an emphasized marker, or nil while the statement is still
// open.
func (b *tfBuilder) add(line docx.Line, text string) *model.TrueFalseData {
	fresh := len(b.parts) == 0

	value, raw, ok := trailingMarker(line)
	if ok {
		if i := strings.LastIndex(text, raw); i >= 0 {
			text = text[:i]
		}
	}
	text = strings.TrimSpace(text)
	if fresh {
		// Statements are often numbered like questions; the number is
		// presentation, not content.
		if m := questionRe.FindStringSubmatch(text); m != nil {
			text = strings.TrimSpace(m[2])
		}
	}
	if text != "" {
		b.parts = append(b.parts, text)
	}

	if !ok {
		return nil
	}
	return &model.TrueFalseData{
		Statement: strings.Join(b.parts, " "),
		Correct:   value,
	}
}

func (b *tfBuilder) open() bool {
	return len(b.parts) > 0
}

func (b *tfBuilder) preview() string {
	s := strings.Join(b.parts, " ")
	if len(s) > 60 {
		s = s[:60] + "…"
	}
	return s
}

// trailingMarker inspects the line's last visible run. If it is bold and
// normalizes to "true" or "false" it is the answer marker; an unemphasized
// literal is ordinary statement text.
func trailingMarker(line docx.Line) (value bool, raw string, ok bool) {
	for i := len(line.Runs) - 1; i >= 0; i-- {
		r := line.Runs[i]
		norm := normalizeMarker(r.Text)
		if norm == "" {
			continue
		}
		if !r.Bold {
			return false, "", false
		}
		switch norm {
		case "true":
			return true, r.Text, true
		case "false":
			return false, r.Text, true
		}
		return false, "", false
	}
	return false, "", false
}

// normalizeMarker case-folds and strips surrounding whitespace and trailing
// punctuation so "False." and " FALSE " both match.
func normalizeMarker(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimRight(s, ".,!;:")
}
