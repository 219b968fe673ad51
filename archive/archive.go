// Package archive writes zip containers with a fully deterministic byte
// layout: members appear exactly in the order given, all timestamps are
// zeroed, and platform metadata entries are excluded. Repeated writes of the
// same member list produce identical archives.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Member is one archive entry.
type Member struct {
	Path string
	Data []byte
}

// ErrDuplicateMember is returned when two members share a path.
var ErrDuplicateMember = errors.New("duplicate archive member")

// Write assembles the members into a zip archive. Members whose paths name
// platform incidentals (.DS_Store, __MACOSX, dotfiles) are dropped
// unconditionally; everything else keeps its given order.
func Write(members []Member) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if Excluded(m.Path) {
			continue
		}
		if seen[m.Path] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, m.Path)
		}
		seen[m.Path] = true

		// A bare FileHeader carries the zero time, which is what keeps
		// rebuilds byte-identical.
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   m.Path,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("creating member %s: %w", m.Path, err)
		}
		if _, err := w.Write(m.Data); err != nil {
			return nil, fmt.Errorf("writing member %s: %w", m.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Excluded reports whether a path names OS metadata that must never land in
// an archive.
func Excluded(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == "__MACOSX" || strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
