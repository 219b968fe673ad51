package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/gmixoulis/docx-to-h5p/model"
)

// Task is one unit of packaging work: all records of one question type
// within one activity directory, ordered by order index.
type Task struct {
	Activity string
	Type     model.QuestionType
	Dir      string // activity directory, images live under Dir/images
	Records  []model.Record
}

// recordFileRe matches the canonical record filenames written by the Writer.
// Files that do not match are ignored, so unrelated files can coexist in the
// same tree.
var recordFileRe = regexp.MustCompile(`^(multiple_choice|true_false|crossword)_(\d{3})\.json$`)

// Scan walks the intermediate tree under root and produces one build task
// per (activity, type) pair that has at least one valid record. Malformed
// record files are skipped and reported; they never abort the scan.
func Scan(root string) ([]Task, []Warning, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("reading intermediate root: %w", err)
	}

	var tasks []Task
	var warnings []Warning
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		ts, ws, err := scanActivity(entry.Name(), dir)
		warnings = append(warnings, ws...)
		if err != nil {
			return nil, warnings, err
		}
		tasks = append(tasks, ts...)
	}
	return tasks, warnings, nil
}

func scanActivity(activity, dir string) ([]Task, []Warning, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var warnings []Warning
	byType := make(map[model.QuestionType][]model.Record)
	candidates := make(map[model.QuestionType]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := recordFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		candidates[model.QuestionType(m[1])]++
		path := filepath.Join(dir, entry.Name())
		rec, err := loadRecord(path)
		if err != nil {
			warnings = append(warnings, Warning{Activity: activity,
				Message: fmt.Sprintf("skipping %s: %v", entry.Name(), err)})
			continue
		}
		byType[rec.Type] = append(byType[rec.Type], *rec)
	}

	var tasks []Task
	for _, t := range model.QuestionTypes {
		records := byType[t]
		if len(records) == 0 {
			// Record files were present but none survived validation:
			// the pair gets no package, and that is reported.
			if candidates[t] > 0 {
				warnings = append(warnings, Warning{Activity: activity,
					Message: fmt.Sprintf("no valid %s records, package skipped", t)})
			}
			continue
		}
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].OrderIndex < records[j].OrderIndex
		})
		tasks = append(tasks, Task{Activity: activity, Type: t, Dir: dir, Records: records})
	}
	return tasks, warnings, nil
}

// loadRecord reads and validates one record file.
func loadRecord(path string) (*model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ImagePath resolves an image reference within a task's activity directory.
func (t Task) ImagePath(filename string) string {
	return filepath.Join(t.Dir, "images", filename)
}
