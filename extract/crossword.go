package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gmixoulis/docx-to-h5p/docx"
	"github.com/gmixoulis/docx-to-h5p/model"
)

// answerRe captures a parenthesized answer at the end of a clue line,
// e.g. "3. Capital of France (PARIS)".
var answerRe = regexp.MustCompile(`\(([^()]+)\)\s*$`)

// cwBuilder accumulates the entries of one crossword part.
type cwBuilder struct {
	part     string
	entries  []model.Entry
	seen     map[entryKey]bool
	warnings []string
}

type entryKey struct {
	dir model.Direction
	num int
}

func newCWBuilder(part string) *cwBuilder {
	return &cwBuilder{part: part, seen: make(map[entryKey]bool)}
}

// addClue parses one numbered clue line under the given direction. The
// answer is either the parenthesized token or a trailing emphasized run.
// It reports whether the line yielded an entry; the reason string is set
// when a malformed line is dropped.
func (b *cwBuilder) addClue(line docx.Line, text string, dir model.Direction) (ok bool, reason string) {
	m := questionRe.FindStringSubmatch(text)
	if m == nil {
		return false, ""
	}
	number, err := strconv.Atoi(m[1])
	if err != nil || number < 1 {
		return false, "clue number out of range"
	}
	rest := strings.TrimSpace(m[2])

	var clue, answer string
	if am := answerRe.FindStringSubmatch(rest); am != nil {
		answer = am[1]
		clue = strings.TrimSpace(rest[:len(rest)-len(am[0])])
	} else if raw, found := trailingBoldToken(line); found {
		answer = raw
		if i := strings.LastIndex(rest, raw); i >= 0 {
			clue = strings.TrimSpace(rest[:i])
		}
	} else {
		return false, "clue has no answer"
	}

	answer = normalizeAnswer(answer)
	if answer == "" || clue == "" {
		return false, "clue has no answer"
	}

	k := entryKey{dir, number}
	if b.seen[k] {
		// First entry wins; the conflict is reported, not resolved.
		b.warnings = append(b.warnings,
			"duplicate "+string(dir)+" clue number "+m[1]+": later entry dropped")
		return true, ""
	}
	b.seen[k] = true
	b.entries = append(b.entries, model.Entry{
		Direction: dir,
		Number:    number,
		Clue:      clue,
		Answer:    answer,
	})
	return true, ""
}

// build finalizes the part's record. A part that produced no entries yields
// no record.
func (b *cwBuilder) build(activity string, index int) (*model.Record, bool) {
	if len(b.entries) == 0 {
		return nil, false
	}
	rec := &model.Record{
		ActivityID: activity,
		OrderIndex: index,
		Type:       model.Crossword,
		Warnings:   b.warnings,
		Crossword: &model.CrosswordData{
			PartID:  b.part,
			Entries: b.entries,
		},
	}
	return rec, true
}

// trailingBoldToken returns the line's last visible run if it is emphasized.
func trailingBoldToken(line docx.Line) (string, bool) {
	for i := len(line.Runs) - 1; i >= 0; i-- {
		r := line.Runs[i]
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		if r.Bold {
			return r.Text, true
		}
		return "", false
	}
	return "", false
}

// normalizeAnswer uppercases the answer and strips whitespace and hyphens;
// grid answers carry neither.
func normalizeAnswer(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch r {
		case ' ', '\t', '-', '–':
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}
