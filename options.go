package docxh5p

import (
	"io"
	"log/slog"
	"time"

	"github.com/gmixoulis/docx-to-h5p/config"
	"github.com/gmixoulis/docx-to-h5p/translate"
)

// Options configures a Pipeline. The zero value is usable; unset fields
// fall back to the built-in defaults.
type Options struct {
	// InputDir holds the source documents (stage 1 input).
	InputDir string
	// WorkDir receives the intermediate per-activity tree.
	WorkDir string
	// OutputDir receives the finished .h5p archives.
	OutputDir string

	// OptionAlphabet lists the letters accepted as option labels.
	OptionAlphabet string
	// PassPercentage is the quiz pass mark.
	PassPercentage int

	// Translator supplies language overlays. When nil and LanguageDir is
	// set, a file-backed table is used; otherwise overlays are skipped.
	Translator translate.Translator
	// LanguageDir holds per-locale overlay tables.
	LanguageDir string
	// Locales to build overlays for.
	Locales []string
	// TranslateTimeout bounds each overlay call.
	TranslateTimeout time.Duration
	// SkipTranslations disables overlays regardless of other settings.
	SkipTranslations bool

	// Logger receives progress output. Nil discards it; library results
	// travel through Summary and Warning values either way.
	Logger *slog.Logger
}

// FromConfig maps a loaded configuration onto pipeline options.
func FromConfig(cfg config.Config) Options {
	return Options{
		InputDir:         cfg.InputDir,
		WorkDir:          cfg.WorkDir,
		OutputDir:        cfg.OutputDir,
		OptionAlphabet:   cfg.OptionAlphabet,
		PassPercentage:   cfg.PassPercentage,
		LanguageDir:      cfg.LanguageDir,
		Locales:          cfg.Locales,
		TranslateTimeout: cfg.TranslateTimeout.Std(),
	}
}

func (o Options) withDefaults() Options {
	def := config.Default()
	if o.InputDir == "" {
		o.InputDir = def.InputDir
	}
	if o.WorkDir == "" {
		o.WorkDir = def.WorkDir
	}
	if o.OutputDir == "" {
		o.OutputDir = def.OutputDir
	}
	if o.OptionAlphabet == "" {
		o.OptionAlphabet = def.OptionAlphabet
	}
	if o.PassPercentage == 0 {
		o.PassPercentage = def.PassPercentage
	}
	if o.TranslateTimeout == 0 {
		o.TranslateTimeout = def.TranslateTimeout.Std()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// translator resolves the effective overlay collaborator.
func (o Options) translator() translate.Translator {
	if o.SkipTranslations {
		return nil
	}
	if o.Translator != nil {
		return o.Translator
	}
	if o.LanguageDir != "" {
		return translate.NewTable(o.LanguageDir)
	}
	return nil
}
