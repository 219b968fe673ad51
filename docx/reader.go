// Package docx provides DOCX (Office Open XML) parsing for quiz extraction:
// a paragraph stream with per-run emphasis flags, soft-break line splitting,
// and access to embedded media with their anchor positions.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Run is a contiguous span of text with uniform formatting. Bold is the
// resolved emphasis (direct run formatting overriding paragraph style).
type Run struct {
	Text string
	Bold bool
}

// Line is one logical line of a paragraph. Paragraphs that use soft line
// breaks (Shift+Enter) carry several lines; each keeps its own runs so that
// emphasis can be inspected per line.
type Line struct {
	Text string
	Runs []Run
}

// Paragraph is one parsed paragraph of the document body.
type Paragraph struct {
	StyleID  string
	Lines    []Line
	ImageIDs []string // relationship IDs of images anchored in this paragraph, in order
}

// Text returns the paragraph's full text with soft breaks as newlines.
func (p Paragraph) Text() string {
	parts := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// Media is one embedded image extracted from the document's media store.
type Media struct {
	ID     string // relationship ID, e.g. "rId8"
	Target string // archive path, e.g. "word/media/image1.png"
	Mime   string
	Data   []byte
}

// Reader provides access to DOCX document content.
type Reader struct {
	zc         *zip.ReadCloser
	paragraphs []Paragraph
	media      map[string]*Media
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zc, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zc: zc}
	if err := r.init(&zc.Reader); err != nil {
		zc.Close()
		return nil, err
	}
	return r, nil
}

// OpenReader opens a DOCX document from an io.ReaderAt.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{}
	if err := r.init(zr); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases resources associated with the Reader. Extracted media
// bytes stay valid after Close; they are copied out of the archive.
func (r *Reader) Close() error {
	if r.zc != nil {
		err := r.zc.Close()
		r.zc = nil
		return err
	}
	return nil
}

// Paragraphs returns the parsed paragraph stream in document order.
func (r *Reader) Paragraphs() []Paragraph {
	return r.paragraphs
}

// Media returns the embedded image for a relationship ID.
func (r *Reader) Media(id string) (*Media, bool) {
	m, ok := r.media[id]
	return m, ok
}

// MediaIDs returns all media relationship IDs, sorted for deterministic
// iteration.
func (r *Reader) MediaIDs() []string {
	ids := make([]string, 0, len(r.media))
	for id := range r.media {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Reader) init(zr *zip.Reader) error {
	if err := validate(zr); err != nil {
		return err
	}

	// Styles are optional; without them only direct run formatting counts.
	var styles stylesXML
	if data, err := fileContent(zr, "word/styles.xml"); err == nil {
		xml.Unmarshal(data, &styles)
	}
	resolver := newStyleResolver(&styles)

	data, err := fileContent(zr, "word/document.xml")
	if err != nil {
		return err
	}
	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}

	if doc.Body != nil {
		r.paragraphs = make([]Paragraph, 0, len(doc.Body.Paragraphs))
		for _, p := range doc.Body.Paragraphs {
			r.paragraphs = append(r.paragraphs, parseParagraph(p, resolver))
		}
	}

	return r.extractMedia(zr)
}

// validate checks that required DOCX member files exist.
func validate(zr *zip.Reader) error {
	required := []string{"[Content_Types].xml", "word/document.xml"}
	have := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		have[f.Name] = true
	}
	for _, name := range required {
		if !have[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// fileContent reads the content of a member file from the ZIP archive.
func fileContent(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseParagraph converts a raw paragraph into lines of styled runs,
// splitting on soft breaks and collecting image anchors.
func parseParagraph(p paragraphXML, resolver *styleResolver) Paragraph {
	out := Paragraph{StyleID: p.Properties.Style.Val}
	styleBold := resolver.bold(out.StyleID)

	var line Line
	flush := func() {
		out.Lines = append(out.Lines, line)
		line = Line{}
	}

	for _, run := range p.Runs {
		bold := styleBold
		if run.Properties.Bold.present() {
			bold = run.Properties.Bold.value()
		}

		for _, item := range run.Items {
			switch item.Kind {
			case itemText:
				line.Text += item.Text
				line.Runs = append(line.Runs, Run{Text: item.Text, Bold: bold})
			case itemTab:
				line.Text += "\t"
				line.Runs = append(line.Runs, Run{Text: "\t", Bold: bold})
			case itemBreak:
				flush()
			case itemDrawing:
				out.ImageIDs = append(out.ImageIDs, item.Embed)
			}
		}
	}

	if line.Text != "" || len(out.Lines) == 0 {
		flush()
	}
	return out
}

// extractMedia copies image parts referenced by document relationships out
// of the archive. Ownership of the bytes passes to the caller; the archive
// can be closed afterwards.
func (r *Reader) extractMedia(zr *zip.Reader) error {
	r.media = make(map[string]*Media)

	data, err := fileContent(zr, "word/_rels/document.xml.rels")
	if err != nil {
		// No relationships part means no embedded media.
		return nil
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return fmt.Errorf("unmarshaling relationships: %w", err)
	}

	mimes := contentTypeMap(zr)

	for _, rel := range rels.Rels {
		if !strings.Contains(rel.Type, "/image") {
			continue
		}
		target := rel.Target
		if !strings.HasPrefix(target, "word/") {
			target = "word/" + strings.TrimPrefix(target, "/")
		}
		bytes, err := fileContent(zr, target)
		if err != nil {
			// A dangling relationship is the document's problem, not ours;
			// the binder simply never sees this ID.
			continue
		}
		r.media[rel.ID] = &Media{
			ID:     rel.ID,
			Target: target,
			Mime:   mimeFor(target, mimes),
			Data:   bytes,
		}
	}
	return nil
}

// contentTypeMap parses [Content_Types].xml defaults into an extension →
// content type map.
func contentTypeMap(zr *zip.Reader) map[string]string {
	m := make(map[string]string)
	data, err := fileContent(zr, "[Content_Types].xml")
	if err != nil {
		return m
	}
	var ct contentTypesXML
	if err := xml.Unmarshal(data, &ct); err != nil {
		return m
	}
	for _, d := range ct.Defaults {
		m[strings.ToLower(d.Extension)] = d.ContentType
	}
	return m
}

// mimeFor resolves a media part's content type, preferring the package's
// declared defaults over an extension guess.
func mimeFor(target string, declared map[string]string) string {
	ext := strings.ToLower(strings.TrimPrefix(pathExt(target), "."))
	if mime, ok := declared[ext]; ok {
		return mime
	}
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func pathExt(p string) string {
	if i := strings.LastIndex(p, "."); i >= 0 {
		return p[i:]
	}
	return ""
}
