// Package store owns the intermediate directory tree between extraction and
// packaging: one directory per activity holding a JSON file per question
// record plus an images/ subtree. The tree is a stable, human-inspectable
// interface; packaging can be re-run from it without re-extraction.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gmixoulis/docx-to-h5p/model"
)

// Warning is a non-fatal condition from a store operation.
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

// Writer persists extracted records under a root directory. It remembers
// which activity directories it has already written, so two documents that
// share an activity heading within one run append to the same directory
// instead of the second clearing the first's records.
type Writer struct {
	root    string
	cleared map[string]bool
	next    map[string]int
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{
		root:    dir,
		cleared: make(map[string]bool),
		next:    make(map[string]int),
	}
}

// Write stores records grouped by activity, each activity into its own
// directory. An activity directory is cleared the first time this Writer
// touches it, so a re-run never leaves stale records from a previous,
// differently-shaped document; later writes to the same activity append
// with continued numbering and a reported conflict. Image bytes are written
// once per distinct content hash.
func (w *Writer) Write(records []model.Record, images map[string][]byte) ([]Warning, error) {
	var warnings []Warning

	byActivity := make(map[string][]model.Record)
	var order []string
	for _, rec := range records {
		if _, seen := byActivity[rec.ActivityID]; !seen {
			order = append(order, rec.ActivityID)
		}
		byActivity[rec.ActivityID] = append(byActivity[rec.ActivityID], rec)
	}
	sort.Strings(order)

	for _, activity := range order {
		ws, err := w.writeActivity(activity, byActivity[activity], images)
		warnings = append(warnings, ws...)
		if err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}

func (w *Writer) writeActivity(activity string, records []model.Record, images map[string][]byte) ([]Warning, error) {
	name := DirName(activity)
	dir := filepath.Join(w.root, name)

	var warnings []Warning
	if w.cleared[name] {
		warnings = append(warnings, Warning{Activity: activity,
			Message: "activity already written by an earlier document this run: appending records"})
	} else {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("clearing %s: %w", dir, err)
		}
		w.cleared[name] = true
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return warnings, fmt.Errorf("creating %s: %w", dir, err)
	}

	// Offset each type's order indexes past what earlier documents wrote
	// into this activity, keeping filenames collision-free.
	base := make(map[model.QuestionType]int)
	needed := make(map[string]bool)
	for i := range records {
		rec := &records[i]
		key := name + "/" + string(rec.Type)
		if _, ok := base[rec.Type]; !ok {
			base[rec.Type] = w.next[key]
		}
		rec.OrderIndex += base[rec.Type]
		if rec.OrderIndex > w.next[key] {
			w.next[key] = rec.OrderIndex
		}
		data, err := MarshalRecord(rec)
		if err != nil {
			return warnings, fmt.Errorf("encoding %s: %w", rec.Filename(), err)
		}
		if err := os.WriteFile(filepath.Join(dir, rec.Filename()), data, 0o644); err != nil {
			return warnings, fmt.Errorf("writing %s: %w", rec.Filename(), err)
		}
		for _, ref := range rec.Images {
			needed[ref.Filename] = true
		}
	}

	if len(needed) == 0 {
		return warnings, nil
	}
	imgDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		return warnings, fmt.Errorf("creating %s: %w", imgDir, err)
	}
	names := make([]string, 0, len(needed))
	for name := range needed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		data, ok := images[name]
		if !ok {
			warnings = append(warnings, Warning{Activity: activity,
				Message: "referenced image " + name + " has no extracted bytes"})
			continue
		}
		if err := os.WriteFile(filepath.Join(imgDir, name), data, 0o644); err != nil {
			return warnings, fmt.Errorf("writing image %s: %w", name, err)
		}
	}
	return warnings, nil
}

// MarshalRecord encodes a record as indented JSON. HTML escaping is off so
// that text content round-trips unmangled.
func MarshalRecord(rec *model.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DirName maps an activity ID onto a filesystem-safe directory name.
func DirName(activity string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, activity)
}
