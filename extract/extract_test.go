package extract

import (
	"strings"
	"testing"

	"github.com/gmixoulis/docx-to-h5p/docx"
	"github.com/gmixoulis/docx-to-h5p/model"
)

type fakeDoc struct {
	paras []docx.Paragraph
	media map[string]*docx.Media
}

func (d *fakeDoc) Paragraphs() []docx.Paragraph { return d.paras }

func (d *fakeDoc) Media(id string) (*docx.Media, bool) {
	m, ok := d.media[id]
	return m, ok
}

func plain(text string) docx.Line {
	return docx.Line{Text: text, Runs: []docx.Run{{Text: text}}}
}

func boldTail(prefix, bold string) docx.Line {
	return docx.Line{
		Text: prefix + bold,
		Runs: []docx.Run{{Text: prefix}, {Text: bold, Bold: true}},
	}
}

func para(lines ...docx.Line) docx.Paragraph {
	return docx.Paragraph{Lines: lines}
}

func extractAll(t *testing.T, doc *fakeDoc) (*Result, []Warning) {
	t.Helper()
	res, warnings, err := New(Options{}).Extract(doc, "fallback")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return res, warnings
}

func TestExtract_MultipleChoice(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(plain("Activity 1 - Multiple Choice")),
		para(
			plain("1. What color is the sky?"),
			plain("a. Green"),
			boldTail("b. ", "Blue"),
			plain("c. Red"),
			plain("d. Yellow"),
		),
	}}

	res, warnings := extractAll(t, doc)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}

	rec := res.Records[0]
	if rec.ActivityID != "Activity 1" {
		t.Errorf("ActivityID = %q, want %q", rec.ActivityID, "Activity 1")
	}
	if rec.Type != model.MultipleChoice || rec.OrderIndex != 1 {
		t.Errorf("Type/OrderIndex = %v/%d", rec.Type, rec.OrderIndex)
	}
	if got := rec.MultipleChoice.Stem; got != "What color is the sky?" {
		t.Errorf("Stem = %q", got)
	}
	wantCorrect := map[string]bool{"a": false, "b": true, "c": false, "d": false}
	if len(rec.MultipleChoice.Options) != 4 {
		t.Fatalf("got %d options, want 4", len(rec.MultipleChoice.Options))
	}
	for _, o := range rec.MultipleChoice.Options {
		if o.Correct != wantCorrect[o.Label] {
			t.Errorf("option %s correct = %v, want %v", o.Label, o.Correct, wantCorrect[o.Label])
		}
	}
	if len(rec.Warnings) != 0 {
		t.Errorf("unexpected record warnings: %v", rec.Warnings)
	}
}

func TestExtract_MultipleChoice_AmbiguousEmphasis(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(
			plain("1. Pick one"),
			plain("a. first"),
			plain("b. second"),
		),
	}}

	res, _ := extractAll(t, doc)
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	rec := res.Records[0]
	if len(rec.Warnings) != 1 || !strings.Contains(rec.Warnings[0], "0 options emphasized") {
		t.Errorf("Warnings = %v, want one ambiguity warning", rec.Warnings)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for warned ambiguity", err)
	}
}

func TestExtract_MultipleChoice_WrappedOptionText(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(
			plain("1. Which statement is true?"),
			plain("a. Water boils at 100 degrees Celsius"),
			plain("at sea level"),
			boldTail("b. ", "Ice is warm"),
		),
	}}

	res, warnings := extractAll(t, doc)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	opts := res.Records[0].MultipleChoice.Options
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2", len(opts))
	}
	if want := "Water boils at 100 degrees Celsius at sea level"; opts[0].Text != want {
		t.Errorf("option a = %q, want wrapped text %q", opts[0].Text, want)
	}
}

func TestExtract_TrueFalse(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(plain("Activity 3 - True or False")),
		para(boldTail("1. The sky is green. ", "False")),
		para(
			plain("2. Water boils at 100 degrees Celsius"),
			boldTail("at sea level. ", "True"),
		),
	}}

	res, warnings := extractAll(t, doc)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}

	first := res.Records[0]
	if first.Type != model.TrueFalse || first.OrderIndex != 1 {
		t.Errorf("first Type/OrderIndex = %v/%d", first.Type, first.OrderIndex)
	}
	if first.TrueFalse.Statement != "The sky is green." || first.TrueFalse.Correct {
		t.Errorf("first = %+v", first.TrueFalse)
	}

	second := res.Records[1]
	wantStmt := "Water boils at 100 degrees Celsius at sea level."
	if second.TrueFalse.Statement != wantStmt || !second.TrueFalse.Correct {
		t.Errorf("second = %+v, want statement %q correct=true", second.TrueFalse, wantStmt)
	}
}

func TestExtract_TrueFalse_UnterminatedDropped(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(plain("True or False")),
		// Literal "False" without emphasis is statement text, not a marker.
		para(plain("1. The sky is green. False")),
	}}

	res, warnings := extractAll(t, doc)
	if len(res.Records) != 0 {
		t.Fatalf("got %d records, want 0", len(res.Records))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "unterminated") {
		t.Errorf("warnings = %v, want one unterminated-statement drop", warnings)
	}
}

func TestExtract_Crossword(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(plain("Module 2: Crossword")),
		para(plain("Part I")),
		para(plain("Across")),
		para(plain("Clues:")),
		para(plain("3. Capital of France (PARIS)")),
		para(plain("3. Duplicate across (LOST)")),
		para(plain("Down")),
		para(boldTail("3. Opposite of early ", "late")),
		para(plain("Part II")),
		para(plain("Down")),
		para(plain("1. Frozen water (ICE CUBE)")),
	}}

	res, warnings := extractAll(t, doc)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(res.Records), res.Records)
	}

	first := res.Records[0]
	if first.ActivityID != "Module 2" || first.Type != model.Crossword {
		t.Errorf("first ActivityID/Type = %q/%v", first.ActivityID, first.Type)
	}
	if first.Crossword.PartID != "Part I" {
		t.Errorf("PartID = %q", first.Crossword.PartID)
	}
	want := []model.Entry{
		{Direction: model.Across, Number: 3, Clue: "Capital of France", Answer: "PARIS"},
		{Direction: model.Down, Number: 3, Clue: "Opposite of early", Answer: "LATE"},
	}
	if len(first.Crossword.Entries) != len(want) {
		t.Fatalf("entries = %+v, want %+v", first.Crossword.Entries, want)
	}
	for i, e := range want {
		if first.Crossword.Entries[i] != e {
			t.Errorf("entry %d = %+v, want %+v", i, first.Crossword.Entries[i], e)
		}
	}
	if len(first.Warnings) != 1 || !strings.Contains(first.Warnings[0], "duplicate") {
		t.Errorf("Warnings = %v, want duplicate-number conflict", first.Warnings)
	}

	second := res.Records[1]
	if second.Crossword.PartID != "Part II" || second.OrderIndex != 2 {
		t.Errorf("second PartID/OrderIndex = %q/%d", second.Crossword.PartID, second.OrderIndex)
	}
	if got := second.Crossword.Entries[0].Answer; got != "ICECUBE" {
		t.Errorf("answer = %q, want whitespace stripped", got)
	}
}

func TestExtract_CrosswordClueWithoutAnswer(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(plain("Crossword")),
		para(plain("Across")),
		para(plain("1. A clue nobody answered")),
	}}

	res, warnings := extractAll(t, doc)
	if len(res.Records) != 0 {
		t.Fatalf("got %d records, want 0", len(res.Records))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "no answer") {
		t.Errorf("warnings = %v, want missing-answer drop", warnings)
	}
}

func TestExtract_FallbackActivity(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(
			plain("1. Standalone question"),
			boldTail("a. ", "yes"),
			plain("b. no"),
		),
	}}

	res, _ := extractAll(t, doc)
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if got := res.Records[0].ActivityID; got != "fallback" {
		t.Errorf("ActivityID = %q, want fallback", got)
	}
}

func TestExtract_ImageBinding(t *testing.T) {
	data := []byte("not-an-image")
	doc := &fakeDoc{
		paras: []docx.Paragraph{
			// Image before any record closes attaches to the first one.
			{Lines: []docx.Line{plain("intro text")}, ImageIDs: []string{"rId1"}},
			para(
				plain("1. First question"),
				boldTail("a. ", "yes"),
				plain("b. no"),
			),
			// Same bytes again, queued until the first record closes.
			{Lines: nil, ImageIDs: []string{"rId2"}},
			para(
				plain("2. Second question"),
				plain("a. maybe"),
				boldTail("b. ", "sure"),
			),
		},
		media: map[string]*docx.Media{
			"rId1": {ID: "rId1", Target: "word/media/image1.png", Mime: "image/png", Data: data},
			"rId2": {ID: "rId2", Target: "word/media/image2.png", Mime: "image/png", Data: data},
		},
	}

	res, warnings := extractAll(t, doc)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}

	first, second := res.Records[0], res.Records[1]
	if len(first.Images) != 2 {
		t.Fatalf("first.Images = %+v, want pending image plus trailing image", first.Images)
	}
	if len(second.Images) != 0 {
		t.Errorf("second.Images = %+v, want none", second.Images)
	}

	// Identical bytes collapse onto one stored file.
	if len(res.Images) != 1 {
		t.Fatalf("stored %d images, want 1", len(res.Images))
	}
	if first.Images[0].Filename != first.Images[1].Filename {
		t.Errorf("refs name different files: %q vs %q",
			first.Images[0].Filename, first.Images[1].Filename)
	}
	ref := first.Images[0]
	if ref.Width != model.DefaultImageWidth || ref.Height != model.DefaultImageHeight {
		t.Errorf("undecodable image dims = %dx%d, want fallback", ref.Width, ref.Height)
	}
	if ref.SHA256 == "" || ref.Mime != "image/png" {
		t.Errorf("ref = %+v", ref)
	}
}

func TestExtract_MissingMediaWarns(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(
			plain("1. Question"),
			boldTail("a. ", "yes"),
		),
		{ImageIDs: []string{"rId9"}},
	}}

	res, warnings := extractAll(t, doc)
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "rId9") {
		t.Errorf("warnings = %v, want missing-media report", warnings)
	}
}

func TestExtract_TypeSwitchClosesOpenRecord(t *testing.T) {
	doc := &fakeDoc{paras: []docx.Paragraph{
		para(
			plain("1. Question"),
			boldTail("a. ", "yes"),
			plain("b. no"),
		),
		para(plain("True or False")),
		para(boldTail("The earth is round. ", "True")),
	}}

	res, _ := extractAll(t, doc)
	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}
	if res.Records[0].Type != model.MultipleChoice || res.Records[1].Type != model.TrueFalse {
		t.Errorf("types = %v, %v", res.Records[0].Type, res.Records[1].Type)
	}
	// Each type group numbers independently.
	if res.Records[0].OrderIndex != 1 || res.Records[1].OrderIndex != 1 {
		t.Errorf("order indexes = %d, %d, want 1, 1",
			res.Records[0].OrderIndex, res.Records[1].OrderIndex)
	}
}
