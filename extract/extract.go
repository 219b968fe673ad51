// Package extract turns a parsed document's paragraph stream into typed
// question records. A section tracker classifies headings and dispatches
// content lines to one of three extractors (multiple choice, true/false,
// crossword); an image binder attaches embedded media to records by stream
// proximity.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gmixoulis/docx-to-h5p/docx"
	"github.com/gmixoulis/docx-to-h5p/model"
)

// Document is the subset of the DOCX reader the extractor consumes.
type Document interface {
	Paragraphs() []docx.Paragraph
	Media(id string) (*docx.Media, bool)
}

// Options configures extraction.
type Options struct {
	// OptionAlphabet holds the letters accepted as multiple-choice option
	// labels, in order. Defaults to "abcd".
	OptionAlphabet string
}

// Warning is a non-fatal condition encountered while extracting one
// document: a dropped statement, a clue without an answer, an image with no
// record to bind to. Record-level ambiguities travel on the records
// themselves.
type Warning struct {
	Activity string
	Message  string
}

func (w Warning) String() string {
	if w.Activity == "" {
		return w.Message
	}
	return w.Activity + ": " + w.Message
}

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}

// Result is the outcome of extracting one document.
type Result struct {
	Records []model.Record
	// Images holds extracted image bytes keyed by ImageRef.Filename.
	// Identical bytes share one entry.
	Images map[string][]byte
}

// Extractor runs the extraction pass. Safe for reuse across documents; each
// Extract call owns its own state.
type Extractor struct {
	optionRe *regexp.Regexp
}

// New builds an Extractor for the given options.
func New(opts Options) *Extractor {
	alphabet := strings.ToLower(opts.OptionAlphabet)
	if alphabet == "" {
		alphabet = "abcd"
	}
	re := regexp.MustCompile(`(?i)^\s*([` + regexp.QuoteMeta(alphabet) + `])[.)]\s+(.*)$`)
	return &Extractor{optionRe: re}
}

// Extract runs a single pass over the document. fallbackActivity names the
// activity for records extracted before (or without) any activity heading,
// typically the source file's base name.
func (e *Extractor) Extract(doc Document, fallbackActivity string) (*Result, []Warning, error) {
	s := &session{
		ext:      e,
		doc:      doc,
		fallback: fallbackActivity,
		images:   make(map[string][]byte),
		counters: make(map[string]int),
	}

	for _, para := range doc.Paragraphs() {
		for _, line := range para.Lines {
			s.handleLine(line)
		}
		for _, id := range para.ImageIDs {
			s.anchorImage(id)
		}
	}
	s.closeOpen()

	for _, ref := range s.bind.unbound() {
		s.warnf("image %s not bound to any question", ref.SourceID)
	}
	s.pruneImages()

	records := make([]model.Record, len(s.records))
	for i, r := range s.records {
		records[i] = *r
	}
	return &Result{Records: records, Images: s.images}, s.warnings, nil
}

// session is the per-document extraction state.
type session struct {
	ext      *Extractor
	doc      Document
	fallback string

	trk  tracker
	bind binder

	mc *mcBuilder
	tf *tfBuilder
	cw *cwBuilder

	records  []*model.Record
	images   map[string][]byte
	counters map[string]int
	warnings []Warning
}

func (s *session) activity() string {
	if s.trk.activity != "" {
		return s.trk.activity
	}
	return s.fallback
}

func (s *session) warnf(format string, args ...any) {
	s.warnings = append(s.warnings, Warning{
		Activity: s.activity(),
		Message:  fmt.Sprintf(format, args...),
	})
}

// nextIndex returns the next 1-based order index within the current
// activity's type group.
func (s *session) nextIndex(t model.QuestionType) int {
	key := s.activity() + "/" + string(t)
	s.counters[key]++
	return s.counters[key]
}

func (s *session) emit(rec *model.Record) {
	s.records = append(s.records, rec)
	s.bind.closed(rec)
}

// closeOpen finalizes whichever builder is open. Called at every section
// boundary and at end of document.
func (s *session) closeOpen() {
	if s.mc != nil {
		if rec, ok := s.mc.build(s.activity(), s.nextIndex(model.MultipleChoice)); ok {
			s.emit(rec)
		} else {
			s.warnf("question %s dropped: no options found", s.mc.number)
		}
		s.mc = nil
	}
	if s.tf != nil {
		if s.tf.open() {
			s.warnf("unterminated true/false statement dropped: %q", s.tf.preview())
		}
		s.tf = nil
	}
	if s.cw != nil {
		if rec, ok := s.cw.build(s.activity(), s.nextIndex(model.Crossword)); ok {
			s.emit(rec)
		}
		s.cw = nil
	}
}

func (s *session) handleLine(line docx.Line) {
	text := strings.TrimSpace(line.Text)
	if text == "" {
		return
	}

	// Boundaries resolve by priority: activity > type > part > content.
	if activity, remainder, ok := activityHeading(text); ok {
		s.closeOpen()
		s.trk = tracker{activity: activity}
		if t, ok := typeHeading(remainder); ok {
			s.trk.qtype = t
		}
		return
	}
	if t, ok := typeHeading(text); ok {
		s.closeOpen()
		s.trk.qtype = t
		s.trk.part = ""
		s.trk.direction = ""
		return
	}

	switch s.trk.qtype {
	case model.Crossword:
		s.crosswordLine(line, text)
	case model.TrueFalse:
		s.trueFalseLine(line, text)
	default:
		s.choiceLine(line, text)
	}
}

// choiceLine handles lines in multiple-choice or untyped context. A numbered
// line starts a question (implying multiple-choice when no type is active);
// lettered lines become options of the open question.
func (s *session) choiceLine(line docx.Line, text string) {
	if m := questionRe.FindStringSubmatch(text); m != nil {
		s.closeOpen()
		s.trk.qtype = model.MultipleChoice
		s.mc = newMCBuilder(m[1], m[2])
		return
	}
	if s.mc == nil {
		// Preamble or title outside any question. Expected, not an error.
		return
	}
	if m := s.ext.optionRe.FindStringSubmatch(text); m != nil {
		s.mc.addOption(m[1], m[2], line)
		return
	}
	if len(s.mc.options) == 0 {
		s.mc.continueStem(text)
	} else {
		s.mc.continueOption(text)
	}
}

func (s *session) trueFalseLine(line docx.Line, text string) {
	if s.tf == nil {
		s.tf = &tfBuilder{}
	}
	if data := s.tf.add(line, text); data != nil {
		if data.Statement == "" {
			s.warnf("true/false marker with empty statement dropped")
		} else {
			rec := &model.Record{
				ActivityID: s.activity(),
				OrderIndex: s.nextIndex(model.TrueFalse),
				Type:       model.TrueFalse,
				TrueFalse:  data,
			}
			s.emit(rec)
		}
		s.tf = nil
	}
}

func (s *session) crosswordLine(line docx.Line, text string) {
	if part, ok := partHeading(text); ok {
		s.closeOpen()
		s.trk.part = part
		s.trk.direction = ""
		return
	}
	if dir, ok := directionHeading(text); ok {
		s.trk.direction = dir
		return
	}
	if cluesRe.MatchString(text) {
		return
	}
	if !questionRe.MatchString(text) {
		return
	}
	if s.trk.direction == "" {
		s.warnf("crossword clue before any Across/Down heading dropped: %q", text)
		return
	}
	if s.cw == nil {
		s.cw = newCWBuilder(s.trk.part)
	}
	if ok, reason := s.cw.addClue(line, text, s.trk.direction); !ok && reason != "" {
		s.warnf("crossword %s dropped: %q", reason, text)
	}
}

// anchorImage resolves an embedded image and hands it to the binder.
func (s *session) anchorImage(id string) {
	media, ok := s.doc.Media(id)
	if !ok {
		s.warnf("image %s referenced but missing from media store", id)
		return
	}
	ref := model.NewImageRef(id, media.Target, media.Mime, media.Data)
	s.images[ref.Filename] = media.Data
	s.bind.anchor(ref)
}

// pruneImages drops stored bytes that no record ended up referencing.
func (s *session) pruneImages() {
	referenced := make(map[string]bool)
	for _, rec := range s.records {
		for _, ref := range rec.Images {
			referenced[ref.Filename] = true
		}
	}
	for name := range s.images {
		if !referenced[name] {
			delete(s.images, name)
		}
	}
}
