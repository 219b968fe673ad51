// Package config loads pipeline configuration from an optional YAML file.
// Every field has a default; a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gmixoulis/docx-to-h5p/translate"
)

// Duration decodes YAML strings like "10s" into a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the standard library form.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the pipeline settings.
type Config struct {
	// InputDir holds the source documents.
	InputDir string `yaml:"input_dir"`
	// WorkDir receives the intermediate per-activity tree.
	WorkDir string `yaml:"work_dir"`
	// OutputDir receives the finished packages.
	OutputDir string `yaml:"output_dir"`
	// LanguageDir holds per-locale overlay tables; empty disables overlays.
	LanguageDir string `yaml:"language_dir"`
	// Locales to build overlays for.
	Locales []string `yaml:"locales"`
	// PassPercentage is the quiz pass mark.
	PassPercentage int `yaml:"pass_percentage"`
	// OptionAlphabet lists accepted option-label letters.
	OptionAlphabet string `yaml:"option_alphabet"`
	// TranslateTimeout bounds each overlay call.
	TranslateTimeout Duration `yaml:"translate_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InputDir:         "docs",
		WorkDir:          "output",
		OutputDir:        ".",
		Locales:          []string{"el", "es"},
		PassPercentage:   50,
		OptionAlphabet:   "abcd",
		TranslateTimeout: Duration(10 * time.Second),
	}
}

// Load reads path over the defaults. An empty path or absent file yields
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges and locale tags.
func (c Config) Validate() error {
	if c.PassPercentage < 0 || c.PassPercentage > 100 {
		return fmt.Errorf("pass_percentage %d out of range 0-100", c.PassPercentage)
	}
	if c.OptionAlphabet == "" {
		return errors.New("option_alphabet must not be empty")
	}
	if c.TranslateTimeout < 0 {
		return errors.New("translate_timeout must not be negative")
	}
	for _, locale := range c.Locales {
		if err := translate.ValidateLocale(locale); err != nil {
			return err
		}
	}
	return nil
}
