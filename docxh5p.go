// Package docxh5p converts quiz-style DOCX documents into H5P
// interactive-content packages. Stage 1 extracts typed question records
// into an intermediate per-activity directory tree; stage 2 assembles
// those records into .h5p archives. The stages are independently
// invocable: the intermediate tree is a stable interface that can be
// inspected, hand-edited, and re-packaged without re-extraction.
package docxh5p

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmixoulis/docx-to-h5p/docx"
	"github.com/gmixoulis/docx-to-h5p/extract"
	"github.com/gmixoulis/docx-to-h5p/format"
	"github.com/gmixoulis/docx-to-h5p/h5p"
	"github.com/gmixoulis/docx-to-h5p/store"
)

// Warning is one non-fatal condition encountered during a run, tagged with
// the stage that produced it.
type Warning struct {
	Stage    string
	Activity string
	Message  string
}

func (w Warning) String() string {
	if w.Activity == "" {
		return "[" + w.Stage + "] " + w.Message
	}
	return "[" + w.Stage + "] " + w.Activity + ": " + w.Message
}

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}

// Summary aggregates what a run produced. Nothing is silently lost: every
// skipped document, dropped record, and degraded package appears in
// Warnings.
type Summary struct {
	Documents int
	Records   int
	Archives  []string
	Warnings  []Warning
}

func (s *Summary) merge(other Summary) {
	s.Documents += other.Documents
	s.Records += other.Records
	s.Archives = append(s.Archives, other.Archives...)
	s.Warnings = append(s.Warnings, other.Warnings...)
}

func (s *Summary) warnf(stage, activity, format string, args ...any) {
	s.Warnings = append(s.Warnings, Warning{
		Stage:    stage,
		Activity: activity,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Pipeline runs the conversion stages.
type Pipeline struct {
	opts Options
	ext  *extract.Extractor
}

// New builds a Pipeline from options.
func New(opts Options) *Pipeline {
	opts = opts.withDefaults()
	return &Pipeline{
		opts: opts,
		ext:  extract.New(extract.Options{OptionAlphabet: opts.OptionAlphabet}),
	}
}

// ExtractAll runs stage 1: every document in InputDir into the
// intermediate tree under WorkDir. An unreadable document is fatal for
// that document only; the run continues with the rest.
func (p *Pipeline) ExtractAll(ctx context.Context) (Summary, error) {
	var sum Summary

	docs, err := format.DiscoverDocuments(p.opts.InputDir)
	if err != nil {
		return sum, err
	}
	if err := os.MkdirAll(p.opts.WorkDir, 0o755); err != nil {
		return sum, fmt.Errorf("creating work dir: %w", err)
	}

	writer := store.NewWriter(p.opts.WorkDir)
	for _, path := range docs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := p.extractOne(path, writer, &sum); err != nil {
			sum.warnf("extract", "", "%s skipped: %v", filepath.Base(path), err)
			continue
		}
		sum.Documents++
	}
	return sum, nil
}

func (p *Pipeline) extractOne(path string, writer *store.Writer, sum *Summary) error {
	log := p.opts.Logger.With("document", filepath.Base(path))

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if ft, err := format.Sniff(f, info.Size()); err != nil {
		return err
	} else if ft != format.DOCX {
		return fmt.Errorf("not a DOCX archive")
	}

	reader, err := docx.OpenReader(f, info.Size())
	if err != nil {
		return err
	}

	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	result, warnings, err := p.ext.Extract(reader, fallback)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		sum.warnf("extract", w.Activity, "%s", w.Message)
	}

	storeWarnings, err := writer.Write(result.Records, result.Images)
	for _, w := range storeWarnings {
		sum.warnf("store", w.Activity, "%s", w.Message)
	}
	if err != nil {
		return err
	}

	sum.Records += len(result.Records)
	log.Info("extracted", "records", len(result.Records), "images", len(result.Images))
	return nil
}

// BuildAll runs stage 2: every build task found under WorkDir into an
// archive in OutputDir. A failing task is skipped and reported; the run
// continues with the remaining tasks.
func (p *Pipeline) BuildAll(ctx context.Context) (Summary, error) {
	var sum Summary

	tasks, scanWarnings, err := store.Scan(p.opts.WorkDir)
	if err != nil {
		return sum, err
	}
	for _, w := range scanWarnings {
		sum.warnf("build", w.Activity, "%s", w.Message)
	}
	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return sum, fmt.Errorf("creating output dir: %w", err)
	}

	builder := &h5p.Builder{
		Translator:       p.opts.translator(),
		Locales:          p.opts.Locales,
		PassPercentage:   p.opts.PassPercentage,
		TranslateTimeout: p.opts.TranslateTimeout,
	}

	// Activities differing only in separators collapse to one archive name;
	// the first keeps it, later ones are rejected rather than overwritten.
	written := make(map[string]string)
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		pkg, warnings, err := builder.Build(ctx, task)
		for _, w := range warnings {
			sum.warnf("build", w.Activity, "%s", w.Message)
		}
		if err != nil {
			sum.warnf("build", task.Activity, "%s package skipped: %v", task.Type, err)
			continue
		}
		if prev, ok := written[pkg.Filename]; ok {
			sum.warnf("build", task.Activity,
				"archive name %s already produced by activity %q: %s package skipped",
				pkg.Filename, prev, task.Type)
			continue
		}
		written[pkg.Filename] = task.Activity

		out := filepath.Join(p.opts.OutputDir, pkg.Filename)
		if err := os.WriteFile(out, pkg.Data, 0o644); err != nil {
			return sum, fmt.Errorf("writing %s: %w", pkg.Filename, err)
		}
		sum.Archives = append(sum.Archives, pkg.Filename)
		p.opts.Logger.Info("packaged", "archive", pkg.Filename, "questions", pkg.Questions)
	}
	return sum, nil
}

// Run executes both stages.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	sum, err := p.ExtractAll(ctx)
	if err != nil {
		return sum, err
	}
	buildSum, err := p.BuildAll(ctx)
	sum.merge(buildSum)
	return sum, err
}
