package extract

import "github.com/gmixoulis/docx-to-h5p/model"

// binder associates embedded images with question records by stream
// proximity: an image attaches to the most recently closed record, and an
// image seen before any record has closed attaches to the first record that
// closes afterwards. This is a best-effort heuristic — documents that place
// images far from their question are not guaranteed a correct association.
type binder struct {
	pending []model.ImageRef
	last    *model.Record
}

// anchor registers an image encountered in the paragraph stream.
func (b *binder) anchor(ref model.ImageRef) {
	if b.last != nil {
		b.last.Images = append(b.last.Images, ref)
		return
	}
	b.pending = append(b.pending, ref)
}

// closed notes that a record has been finalized at the current stream
// position, flushing any images that were waiting for one.
func (b *binder) closed(rec *model.Record) {
	if len(b.pending) > 0 {
		rec.Images = append(rec.Images, b.pending...)
		b.pending = nil
	}
	b.last = rec
}

// unbound returns images that never found a record.
func (b *binder) unbound() []model.ImageRef {
	return b.pending
}
