package extract

import (
	"regexp"
	"strings"

	"github.com/gmixoulis/docx-to-h5p/model"
)

// tracker is the section state threaded through a single document pass. It
// never backtracks: each line either moves it to a new section or is handed
// to the extractor for the current question type.
type tracker struct {
	activity  string
	qtype     model.QuestionType // "" until a type boundary is seen
	part      string
	direction model.Direction
}

var (
	activityRe       = regexp.MustCompile(`(?i)^(activity|module|unit)\s*(\d+)\b\s*[-–:.]*\s*(.*)$`)
	trueFalseRe      = regexp.MustCompile(`(?i)^true\s*(or|/)\s*false\b`)
	crosswordRe      = regexp.MustCompile(`(?i)\bcrossword\b`)
	multipleChoiceRe = regexp.MustCompile(`(?i)^multiple[\s-]*choice\b`)
	partRe           = regexp.MustCompile(`(?i)^part\s+([ivxlcdm]+|\d+)\b\s*[-–:.]*\s*$`)
	directionRe      = regexp.MustCompile(`(?i)^(across|down)\s*:?\s*$`)
	questionRe       = regexp.MustCompile(`^\s*(\d+)[.)]\s*(.*)$`)
	cluesRe          = regexp.MustCompile(`(?i)^clues?\s*:?\s*$`)
)

// Headings are short. Anything longer is a sentence that happens to start
// with a heading keyword, not a section boundary.
const maxHeadingWords = 8

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// activityHeading matches "Activity N" / "Module N" / "Unit N" headings and
// returns the normalized activity name plus the remainder after the number
// (which may itself name a question type, e.g. "Activity 2 - True or False").
func activityHeading(line string) (activity, remainder string, ok bool) {
	m := activityRe.FindStringSubmatch(line)
	if m == nil || wordCount(line) > maxHeadingWords {
		return "", "", false
	}
	keyword := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
	return keyword + " " + m[2], m[3], true
}

// typeHeading matches a standalone question-type heading.
func typeHeading(line string) (model.QuestionType, bool) {
	s := strings.TrimSpace(line)
	if s == "" || wordCount(s) > maxHeadingWords || questionRe.MatchString(s) {
		return "", false
	}
	switch {
	case trueFalseRe.MatchString(s):
		return model.TrueFalse, true
	case crosswordRe.MatchString(s):
		return model.Crossword, true
	case multipleChoiceRe.MatchString(s):
		return model.MultipleChoice, true
	}
	return "", false
}

// partHeading matches a crossword "Part <roman-or-number>" heading.
func partHeading(line string) (string, bool) {
	m := partRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return "Part " + strings.ToUpper(m[1]), true
}

// directionHeading matches an "Across"/"Down" sub-heading.
func directionHeading(line string) (model.Direction, bool) {
	m := directionRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return model.Direction(strings.ToLower(m[1])), true
}
