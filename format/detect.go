// Package format provides input discovery and format checking for source
// documents. Discovery is by file extension; Sniff verifies that a candidate
// really is a Word archive before the reader commits to parsing it.
package format

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Format represents a recognized source document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
)

// String returns the string representation of the format.
func (f Format) String() string {
	if f == DOCX {
		return "DOCX"
	}
	return "Unknown"
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".docx") {
		return DOCX
	}
	return Unknown
}

// Sniff inspects content to confirm the format. A DOCX file is a ZIP archive
// whose members live under word/; extension renames and Office temp files
// fail this check even when Detect accepts them.
func Sniff(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 4)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	if n < 4 || magic[0] != 0x50 || magic[1] != 0x4B || magic[2] != 0x03 || magic[3] != 0x04 {
		return Unknown, nil
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}
	return Unknown, nil
}

// DiscoverDocuments returns the DOCX files directly inside dir, sorted by
// name for deterministic processing order. Office lock files (~$ prefix) and
// hidden files are skipped.
func DiscoverDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
			continue
		}
		if Detect(name) == DOCX {
			docs = append(docs, filepath.Join(dir, name))
		}
	}
	sort.Strings(docs)
	return docs, nil
}
