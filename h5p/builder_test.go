package h5p

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gmixoulis/docx-to-h5p/model"
	"github.com/gmixoulis/docx-to-h5p/store"
)

func mcTask(t *testing.T, records ...model.Record) store.Task {
	t.Helper()
	return store.Task{
		Activity: "Activity 1",
		Type:     model.MultipleChoice,
		Dir:      t.TempDir(),
		Records:  records,
	}
}

func mcRecord(index int) model.Record {
	return model.Record{
		ActivityID: "Activity 1",
		OrderIndex: index,
		Type:       model.MultipleChoice,
		MultipleChoice: &model.MultipleChoiceData{
			Stem: "What color is the sky?",
			Options: []model.Option{
				{Label: "a", Text: "Green"},
				{Label: "b", Text: "Blue", Correct: true},
			},
		},
	}
}

func unzip(t *testing.T, data []byte) (names []string, files map[string][]byte) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	files = make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, f.Name)
		files[f.Name] = b
	}
	return names, files
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
	return m
}

func TestBuild_MultipleChoice(t *testing.T) {
	imgData := []byte("image-bytes")
	ref := model.NewImageRef("rId1", "word/media/image1.png", "image/png", imgData)

	withImage := mcRecord(1)
	withImage.Images = []model.ImageRef{ref}
	task := mcTask(t, withImage, mcRecord(2))

	if err := os.MkdirAll(filepath.Join(task.Dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(task.ImagePath(ref.Filename), imgData, 0o644); err != nil {
		t.Fatal(err)
	}

	pkg, warnings, err := (&Builder{}).Build(context.Background(), task)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if pkg.Filename != "Activity_1_multiple_choice.h5p" {
		t.Errorf("Filename = %q", pkg.Filename)
	}
	if pkg.Questions != 2 {
		t.Errorf("Questions = %d, want 2", pkg.Questions)
	}

	names, files := unzip(t, pkg.Data)
	wantNames := []string{"h5p.json", "content/content.json", "content/images/" + ref.Filename}
	if len(names) != len(wantNames) {
		t.Fatalf("members = %v, want %v", names, wantNames)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] {
			t.Errorf("member %d = %q, want %q", i, names[i], wantNames[i])
		}
	}

	manifest := decode(t, files["h5p.json"])
	if manifest["mainLibrary"] != "H5P.QuestionSet" {
		t.Errorf("mainLibrary = %v", manifest["mainLibrary"])
	}
	if manifest["title"] != "Activity 1 - Multiple Choice Quiz" {
		t.Errorf("title = %v", manifest["title"])
	}
	deps := manifest["preloadedDependencies"].([]any)
	if len(deps) != 2 {
		t.Fatalf("dependencies = %v", deps)
	}

	// Markup must survive encoding unescaped.
	if !bytes.Contains(files["content/content.json"], []byte("<div>Blue</div>\\n")) {
		t.Error("content.json lost or escaped the answer markup")
	}

	content := decode(t, files["content/content.json"])
	if content["progressType"] != "dots" {
		t.Errorf("progressType = %v", content["progressType"])
	}
	questions := content["questions"].([]any)
	if len(questions) != 2 {
		t.Fatalf("got %d questions", len(questions))
	}

	first := questions[0].(map[string]any)
	if first["library"] != "H5P.MultiChoice 1.16" {
		t.Errorf("library = %v", first["library"])
	}
	if first["subContentId"] == "" {
		t.Error("subContentId empty")
	}
	meta := first["metadata"].(map[string]any)
	if meta["title"] != "What color is the sky?" {
		t.Errorf("metadata title = %v", meta["title"])
	}

	params := first["params"].(map[string]any)
	if params["question"] != "<p>What color is the sky?</p>\n" {
		t.Errorf("question = %q", params["question"])
	}
	med := params["media"].(map[string]any)
	mt := med["type"].(map[string]any)
	file := mt["params"].(map[string]any)["file"].(map[string]any)
	if file["path"] != "images/"+ref.Filename {
		t.Errorf("media path = %v", file["path"])
	}

	// The second question has no image: media is the bare zoom flag.
	second := questions[1].(map[string]any)
	med2 := second["params"].(map[string]any)["media"].(map[string]any)
	if _, hasType := med2["type"]; hasType || med2["disableImageZooming"] != true {
		t.Errorf("imageless media = %v", med2)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	task := mcTask(t, mcRecord(1), mcRecord(2))
	b := &Builder{}

	first, _, err := b.Build(context.Background(), task)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := b.Build(context.Background(), task)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Error("repeated builds differ")
	}
}

func TestBuild_AllBoundImagesRideAlong(t *testing.T) {
	imgA := []byte("image-a")
	imgB := []byte("image-b")
	refA := model.NewImageRef("rId1", "word/media/image1.png", "image/png", imgA)
	refB := model.NewImageRef("rId2", "word/media/image2.png", "image/png", imgB)

	rec := mcRecord(1)
	rec.Images = []model.ImageRef{refA, refB}
	task := mcTask(t, rec)

	if err := os.MkdirAll(filepath.Join(task.Dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(task.ImagePath(refA.Filename), imgA, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(task.ImagePath(refB.Filename), imgB, 0o644); err != nil {
		t.Fatal(err)
	}

	pkg, warnings, err := (&Builder{}).Build(context.Background(), task)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	_, files := unzip(t, pkg.Data)
	for _, ref := range rec.Images {
		if _, ok := files["content/images/"+ref.Filename]; !ok {
			t.Errorf("archive missing bound image %s", ref.Filename)
		}
	}

	// The first bound image backs the media wrapper.
	content := decode(t, files["content/content.json"])
	q := content["questions"].([]any)[0].(map[string]any)
	mt := q["params"].(map[string]any)["media"].(map[string]any)["type"].(map[string]any)
	file := mt["params"].(map[string]any)["file"].(map[string]any)
	if file["path"] != "images/"+refA.Filename {
		t.Errorf("media path = %v, want first image", file["path"])
	}
}

func TestBuild_MissingImageDegrades(t *testing.T) {
	rec := mcRecord(1)
	rec.Images = []model.ImageRef{{
		SourceID: "rId1", Filename: "gone.png", Mime: "image/png",
		Width: 10, Height: 10, SHA256: "00",
	}}
	task := mcTask(t, rec)

	pkg, warnings, err := (&Builder{}).Build(context.Background(), task)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "missing") {
		t.Errorf("warnings = %v, want one missing-image report", warnings)
	}

	names, files := unzip(t, pkg.Data)
	if len(names) != 2 {
		t.Errorf("members = %v, want no image entries", names)
	}
	content := decode(t, files["content/content.json"])
	q := content["questions"].([]any)[0].(map[string]any)
	med := q["params"].(map[string]any)["media"].(map[string]any)
	if _, hasType := med["type"]; hasType {
		t.Errorf("media = %v, want degraded bare flag", med)
	}
}

func TestBuild_TrueFalse(t *testing.T) {
	task := store.Task{
		Activity: "Activity 3",
		Type:     model.TrueFalse,
		Dir:      t.TempDir(),
		Records: []model.Record{{
			ActivityID: "Activity 3",
			OrderIndex: 1,
			Type:       model.TrueFalse,
			TrueFalse:  &model.TrueFalseData{Statement: "The sky is green.", Correct: false},
		}},
	}

	pkg, _, err := (&Builder{}).Build(context.Background(), task)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if pkg.Filename != "Activity_3_truefalse.h5p" {
		t.Errorf("Filename = %q", pkg.Filename)
	}

	_, files := unzip(t, pkg.Data)
	manifest := decode(t, files["h5p.json"])
	deps := manifest["preloadedDependencies"].([]any)
	last := deps[len(deps)-1].(map[string]any)
	if last["machineName"] != "H5P.TrueFalse" || last["minorVersion"] != "8" {
		t.Errorf("dependency = %v", last)
	}

	content := decode(t, files["content/content.json"])
	q := content["questions"].([]any)[0].(map[string]any)
	if q["library"] != "H5P.TrueFalse 1.8" {
		t.Errorf("library = %v", q["library"])
	}
	params := q["params"].(map[string]any)
	if params["correct"] != "false" {
		t.Errorf("correct = %v, want the string form", params["correct"])
	}
	med := params["media"].(map[string]any)
	if med["disableImageZooming"] != false {
		t.Errorf("media = %v", med)
	}
	if _, hasType := med["type"]; !hasType {
		t.Error("true/false media lost its empty type object")
	}
}

func TestBuild_Crossword(t *testing.T) {
	task := store.Task{
		Activity: "Activity 3",
		Type:     model.Crossword,
		Dir:      t.TempDir(),
		Records: []model.Record{
			{
				ActivityID: "Activity 3", OrderIndex: 1, Type: model.Crossword,
				Crossword: &model.CrosswordData{PartID: "Part I", Entries: []model.Entry{
					{Direction: model.Across, Number: 3, Clue: "Capital of France", Answer: "PARIS"},
				}},
			},
			{
				ActivityID: "Activity 3", OrderIndex: 2, Type: model.Crossword,
				Crossword: &model.CrosswordData{PartID: "Part II", Entries: []model.Entry{
					{Direction: model.Down, Number: 1, Clue: "Frozen water", Answer: "ICE"},
				}},
			},
		},
	}

	pkg, _, err := (&Builder{}).Build(context.Background(), task)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if pkg.Questions != 2 {
		t.Errorf("Questions = %d, want merged word count 2", pkg.Questions)
	}

	_, files := unzip(t, pkg.Data)
	manifest := decode(t, files["h5p.json"])
	if manifest["mainLibrary"] != "H5P.Crossword" {
		t.Errorf("mainLibrary = %v", manifest["mainLibrary"])
	}

	content := decode(t, files["content/content.json"])
	words := content["words"].([]any)
	if len(words) != 2 {
		t.Fatalf("words = %v", words)
	}
	first := words[0].(map[string]any)
	if first["orientation"] != "across" || first["answer"] != "PARIS" || first["fixWord"] != false {
		t.Errorf("first word = %v", first)
	}
	// Crossword feedback ranges carry no feedback text.
	band := content["overallFeedback"].([]any)[0].(map[string]any)
	if _, has := band["feedback"]; has {
		t.Errorf("overallFeedback = %v", band)
	}
	if content["taskDescription"] != "<p>Activity 3 - Crossword Puzzle</p>\n" {
		t.Errorf("taskDescription = %v", content["taskDescription"])
	}
}

type fakeTranslator struct {
	fn func(ctx context.Context, locale string, src map[string]string) (map[string]string, error)
}

func (f fakeTranslator) Translate(ctx context.Context, locale string, src map[string]string) (map[string]string, error) {
	return f.fn(ctx, locale, src)
}

func TestBuild_Overlays(t *testing.T) {
	task := mcTask(t, mcRecord(1))
	b := &Builder{
		Locales: []string{"es", "el"},
		Translator: fakeTranslator{fn: func(_ context.Context, locale string, src map[string]string) (map[string]string, error) {
			if locale == "es" {
				return nil, errors.New("table unavailable")
			}
			out := make(map[string]string, len(src))
			for k := range src {
				out[k] = "(" + locale + ")"
			}
			return out, nil
		}},
	}

	pkg, warnings, err := b.Build(context.Background(), task)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "overlay es skipped") {
		t.Errorf("warnings = %v, want es overlay skip", warnings)
	}

	names, files := unzip(t, pkg.Data)
	if names[len(names)-1] != "language/el.json" {
		t.Errorf("members = %v, want trailing el overlay", names)
	}
	overlay := decode(t, files["language/el.json"])
	if overlay["submitAnswerButton"] != "(el)" {
		t.Errorf("overlay = %v", overlay)
	}
	if _, hasES := files["language/es.json"]; hasES {
		t.Error("failed overlay still landed in archive")
	}
}

func TestBuild_OverlayTimeout(t *testing.T) {
	task := mcTask(t, mcRecord(1))
	b := &Builder{
		Locales:          []string{"el"},
		TranslateTimeout: 10 * time.Millisecond,
		Translator: fakeTranslator{fn: func(ctx context.Context, _ string, _ map[string]string) (map[string]string, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}},
	}

	pkg, warnings, err := b.Build(context.Background(), task)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "overlay el skipped") {
		t.Errorf("warnings = %v, want timeout degradation", warnings)
	}
	names, _ := unzip(t, pkg.Data)
	for _, n := range names {
		if strings.HasPrefix(n, "language/") {
			t.Errorf("timed-out overlay %s still in archive", n)
		}
	}
}

func TestBuild_SurfacesRecordWarnings(t *testing.T) {
	rec := mcRecord(1)
	rec.MultipleChoice.Options[1].Correct = false
	rec.Warnings = []string{"question 1: 0 options emphasized, expected exactly 1"}
	task := mcTask(t, rec)

	_, warnings, err := (&Builder{}).Build(context.Background(), task)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "emphasized") {
		t.Errorf("warnings = %v, want carried extraction warning", warnings)
	}
}

func TestFileNameAndTitle(t *testing.T) {
	tests := []struct {
		qtype     model.QuestionType
		wantFile  string
		wantTitle string
	}{
		{model.MultipleChoice, "Activity_1_multiple_choice.h5p", "Activity 1 - Multiple Choice Quiz"},
		{model.TrueFalse, "Activity_1_truefalse.h5p", "Activity 1 - True/False Quiz"},
		{model.Crossword, "Activity_1_crossword.h5p", "Activity 1 - Crossword Puzzle"},
	}
	for _, tt := range tests {
		if got := FileName("Activity 1", tt.qtype); got != tt.wantFile {
			t.Errorf("FileName(%s) = %q, want %q", tt.qtype, got, tt.wantFile)
		}
		if got := Title("Activity 1", tt.qtype); got != tt.wantTitle {
			t.Errorf("Title(%s) = %q, want %q", tt.qtype, got, tt.wantTitle)
		}
	}
}
