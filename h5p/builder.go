// Package h5p renders build tasks into .h5p packages: the content document
// for the task's question type, the manifest, bound images, and optional
// language overlays, assembled into a deterministic archive.
package h5p

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/gmixoulis/docx-to-h5p/archive"
	"github.com/gmixoulis/docx-to-h5p/model"
	"github.com/gmixoulis/docx-to-h5p/store"
	"github.com/gmixoulis/docx-to-h5p/translate"
)

// DefaultPassPercentage is the quiz pass mark when the config does not set
// one.
const DefaultPassPercentage = 50

// DefaultTranslateTimeout bounds one overlay call.
const DefaultTranslateTimeout = 10 * time.Second

// Warning is a non-fatal condition from building one package.
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

// Package is one finished archive.
type Package struct {
	Filename  string
	Title     string
	Data      []byte
	Questions int
}

// Builder renders build tasks. The zero value builds with defaults and no
// overlays.
type Builder struct {
	// Translator supplies language overlays; nil disables them.
	Translator translate.Translator
	// Locales lists overlay target locales.
	Locales []string
	// PassPercentage for quiz packages. Zero means DefaultPassPercentage.
	PassPercentage int
	// TranslateTimeout bounds each overlay call. Zero means
	// DefaultTranslateTimeout.
	TranslateTimeout time.Duration
}

// Build renders one task into a package. Record warnings carried over from
// extraction are surfaced; a missing image degrades the question to one
// without media rather than failing the task.
func (b *Builder) Build(ctx context.Context, task store.Task) (*Package, []Warning, error) {
	var warnings []Warning
	warnf := func(format string, args ...any) {
		warnings = append(warnings, Warning{Activity: task.Activity, Message: fmt.Sprintf(format, args...)})
	}

	if len(task.Records) == 0 {
		return nil, nil, fmt.Errorf("build task %s/%s has no records", task.Activity, task.Type)
	}
	for _, rec := range task.Records {
		for _, w := range rec.Warnings {
			warnf("%s: %s", rec.Filename(), w)
		}
	}

	title := Title(task.Activity, task.Type)
	images := make(map[string][]byte)

	var content any
	var count int
	switch task.Type {
	case model.MultipleChoice:
		questions := make([]qsQuestion, 0, len(task.Records))
		for _, rec := range task.Records {
			med := b.loadMedia(task, rec, images, warnf)
			params := newMultiChoiceParams(rec.MultipleChoice, med)
			questions = append(questions, wrapQuestion(task, rec, params,
				libMultiChoice, "Multiple Choice"))
		}
		content = newQuestionSet(questions, b.passPercentage())
		count = len(questions)

	case model.TrueFalse:
		questions := make([]qsQuestion, 0, len(task.Records))
		for _, rec := range task.Records {
			params := newTrueFalseParams(rec.TrueFalse)
			questions = append(questions, wrapQuestion(task, rec, params,
				libTrueFalse, "True/False Question"))
		}
		content = newQuestionSet(questions, b.passPercentage())
		count = len(questions)

	case model.Crossword:
		params := newCrosswordParams(task.Records, title)
		content = params
		count = len(params.Words)

	default:
		return nil, warnings, fmt.Errorf("unknown question type %q", task.Type)
	}

	manifestJSON, err := encodeJSON(manifestFor(task.Type, title), false)
	if err != nil {
		return nil, warnings, fmt.Errorf("encoding manifest: %w", err)
	}
	contentJSON, err := encodeJSON(content, true)
	if err != nil {
		return nil, warnings, fmt.Errorf("encoding content: %w", err)
	}

	members := []archive.Member{
		{Path: "h5p.json", Data: manifestJSON},
		{Path: "content/content.json", Data: contentJSON},
	}
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		members = append(members, archive.Member{Path: "content/images/" + name, Data: images[name]})
	}
	members = append(members, b.overlayMembers(ctx, task, warnf)...)

	data, err := archive.Write(members)
	if err != nil {
		return nil, warnings, fmt.Errorf("assembling archive: %w", err)
	}

	return &Package{
		Filename:  FileName(task.Activity, task.Type),
		Title:     title,
		Data:      data,
		Questions: count,
	}, warnings, nil
}

func (b *Builder) passPercentage() int {
	if b.PassPercentage > 0 {
		return b.PassPercentage
	}
	return DefaultPassPercentage
}

// loadMedia resolves a record's bound images from the intermediate tree.
// Every referenced file lands in the archive; the first one that loads
// becomes the question's media wrapper. A missing file degrades to a plain
// question rather than failing the task.
func (b *Builder) loadMedia(task store.Task, rec model.Record, images map[string][]byte, warnf func(string, ...any)) *media {
	var first *model.ImageRef
	for i := range rec.Images {
		ref := &rec.Images[i]
		data, err := os.ReadFile(task.ImagePath(ref.Filename))
		if err != nil {
			warnf("%s: image %s missing, question built without it", rec.Filename(), ref.Filename)
			continue
		}
		images[ref.Filename] = data
		if first == nil {
			first = ref
		}
	}
	if first != nil {
		return imageMedia(*first, subContentID(task.Activity, string(task.Type), "image", rec.Filename()))
	}
	return noImageMedia()
}

// wrapQuestion puts rendered params into the question-set envelope.
func wrapQuestion(task store.Task, rec model.Record, params any, library, contentType string) qsQuestion {
	var text string
	switch task.Type {
	case model.MultipleChoice:
		text = rec.MultipleChoice.Stem
	case model.TrueFalse:
		text = rec.TrueFalse.Statement
	}
	return qsQuestion{
		Params:       params,
		Library:      library,
		SubContentID: subContentID(task.Activity, string(task.Type), rec.Filename()),
		Metadata: qsMetadata{
			Title:       metadataTitle(text),
			License:     "U",
			ContentType: contentType,
		},
	}
}

// overlayMembers renders one language/<locale>.json per requested locale.
// Overlay failure or timeout degrades to a warning; the package builds
// without that locale.
func (b *Builder) overlayMembers(ctx context.Context, task store.Task, warnf func(string, ...any)) []archive.Member {
	if b.Translator == nil || len(b.Locales) == 0 {
		return nil
	}
	timeout := b.TranslateTimeout
	if timeout <= 0 {
		timeout = DefaultTranslateTimeout
	}

	locales := append([]string(nil), b.Locales...)
	sort.Strings(locales)

	src := uiStrings(task.Type)
	var members []archive.Member
	for _, locale := range locales {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		table, err := b.Translator.Translate(callCtx, locale, src)
		cancel()
		if err != nil {
			warnf("overlay %s skipped: %v", locale, err)
			continue
		}
		// Maps encode with sorted keys, keeping overlay bytes stable.
		data, err := encodeJSON(table, true)
		if err != nil {
			warnf("overlay %s skipped: %v", locale, err)
			continue
		}
		members = append(members, archive.Member{Path: "language/" + locale + ".json", Data: data})
	}
	return members
}

// uiStrings lists the translatable fixed UI strings for a question type.
// Question content is never translated here.
func uiStrings(t model.QuestionType) map[string]string {
	switch t {
	case model.MultipleChoice:
		ui := defaultMCUI()
		return map[string]string{
			"showSolutionButton": ui.ShowSolutionButton,
			"tryAgainButton":     ui.TryAgainButton,
			"checkAnswerButton":  ui.CheckAnswerButton,
			"tipsLabel":          ui.TipsLabel,
			"scoreBarLabel":      ui.ScoreBarLabel,
			"tipAvailable":       ui.TipAvailable,
			"feedbackAvailable":  ui.FeedbackAvailable,
			"readFeedback":       ui.ReadFeedback,
			"wrongAnswer":        ui.WrongAnswer,
			"correctAnswer":      ui.CorrectAnswer,
			"shouldCheck":        ui.ShouldCheck,
			"shouldNotCheck":     ui.ShouldNotCheck,
			"noInput":            ui.NoInput,
			"submitAnswerButton": ui.SubmitAnswerButton,
		}
	case model.TrueFalse:
		l := defaultTFL10n()
		return map[string]string{
			"trueText":             l.TrueText,
			"falseText":            l.FalseText,
			"score":                l.Score,
			"checkAnswer":          l.CheckAnswer,
			"showSolutionButton":   l.ShowSolutionButton,
			"tryAgain":             l.TryAgain,
			"wrongAnswerMessage":   l.WrongAnswerMessage,
			"correctAnswerMessage": l.CorrectAnswerMessage,
			"scoreBarLabel":        l.ScoreBarLabel,
			"submitAnswer":         l.SubmitAnswer,
		}
	case model.Crossword:
		l := defaultCWL10n()
		return map[string]string{
			"across":       l.Across,
			"down":         l.Down,
			"checkAnswer":  l.CheckAnswer,
			"tryAgain":     l.TryAgain,
			"showSolution": l.ShowSolution,
			"extraClue":    l.ExtraClue,
			"closeWindow":  l.CloseWindow,
			"submitAnswer": l.SubmitAnswer,
		}
	}
	return nil
}

// contentNamespace seeds the deterministic subContentId space. The same
// inputs always produce the same archive bytes.
var contentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("docx-to-h5p"))

func subContentID(parts ...string) string {
	return uuid.NewSHA1(contentNamespace, []byte(strings.Join(parts, "/"))).String()
}

// metadataTitle derives a plain-text title from question text, capped at
// 100 characters.
func metadataTitle(text string) string {
	stripped := stripTags(text)
	runes := []rune(stripped)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return stripped
}

// stripTags removes markup, keeping text content only.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		if z.Next() == html.ErrorToken {
			break
		}
		if tok := z.Token(); tok.Type == html.TextToken {
			sb.WriteString(tok.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

// Title names a package the way the importing platform displays it.
func Title(activity string, t model.QuestionType) string {
	switch t {
	case model.MultipleChoice:
		return activity + " - Multiple Choice Quiz"
	case model.TrueFalse:
		return activity + " - True/False Quiz"
	case model.Crossword:
		return activity + " - Crossword Puzzle"
	}
	return activity
}

// FileName maps a task onto its output archive name.
func FileName(activity string, t model.QuestionType) string {
	prefix := strings.NewReplacer(" ", "_", "-", "_").Replace(activity)
	switch t {
	case model.TrueFalse:
		return prefix + "_truefalse.h5p"
	default:
		return prefix + "_" + string(t) + ".h5p"
	}
}

// encodeJSON marshals without HTML escaping; indent selects the pretty
// content-document form over the compact manifest form.
func encodeJSON(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
