// Package translate defines the translation-overlay collaborator contract.
// A Translator maps fixed UI strings to a target locale; it never touches
// question content. The package ships a file-backed lookup table; remote
// implementations satisfy the same interface.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
)

// Translator converts a key → source-text mapping into the same keys with
// target-locale text. Implementations must return a value for every input
// key; falling back to the source text is acceptable, dropping keys is not.
type Translator interface {
	Translate(ctx context.Context, locale string, src map[string]string) (map[string]string, error)
}

// ValidateLocale checks that a locale tag is well formed.
func ValidateLocale(locale string) error {
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return nil
}

// Table is a Translator backed by per-locale JSON files on disk, one
// `<locale>.json` per locale, each a flat string → string object.
type Table struct {
	dir string
}

// NewTable returns a Table reading from dir.
func NewTable(dir string) *Table {
	return &Table{dir: dir}
}

// Translate looks each key's source text up in the locale's table. Keys
// whose source text has no entry keep their source text.
func (t *Table) Translate(ctx context.Context, locale string, src map[string]string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateLocale(locale); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(t.dir, locale+".json"))
	if err != nil {
		return nil, fmt.Errorf("loading locale table: %w", err)
	}
	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decoding locale table %s: %w", locale, err)
	}

	out := make(map[string]string, len(src))
	for key, text := range src {
		if translated, ok := table[text]; ok && translated != "" {
			out[key] = translated
		} else {
			out[key] = text
		}
	}
	return out, nil
}
