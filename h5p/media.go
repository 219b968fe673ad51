package h5p

import "github.com/gmixoulis/docx-to-h5p/model"

// media is the per-question media block. Multiple-choice questions carry
// either a full H5P.Image wrapper or just the zoom flag; true/false
// questions always carry an empty type object with zooming enabled.
type media struct {
	Type                *mediaType `json:"type,omitempty"`
	DisableImageZooming bool       `json:"disableImageZooming"`
}

type mediaType struct {
	Params       *imageParams   `json:"params,omitempty"`
	Library      string         `json:"library,omitempty"`
	SubContentID string         `json:"subContentId,omitempty"`
	Metadata     *imageMetadata `json:"metadata,omitempty"`
}

type imageParams struct {
	ContentName string    `json:"contentName"`
	File        imageFile `json:"file"`
	Alt         string    `json:"alt"`
	Decorative  bool      `json:"decorative"`
}

type imageFile struct {
	Path      string    `json:"path"`
	Mime      string    `json:"mime"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Copyright copyright `json:"copyright"`
}

type copyright struct {
	License string `json:"license"`
}

type imageMetadata struct {
	Title       string `json:"title"`
	License     string `json:"license"`
	ContentType string `json:"contentType"`
}

// imageMedia wraps an image reference in the H5P.Image structure.
func imageMedia(ref model.ImageRef, subContentID string) *media {
	w, h := ref.Width, ref.Height
	if w <= 0 || h <= 0 {
		w, h = model.DefaultImageWidth, model.DefaultImageHeight
	}
	return &media{
		Type: &mediaType{
			Params: &imageParams{
				ContentName: "Image",
				File: imageFile{
					Path:      "images/" + ref.Filename,
					Mime:      ref.Mime,
					Width:     w,
					Height:    h,
					Copyright: copyright{License: "U"},
				},
				Alt:        "Image for question",
				Decorative: false,
			},
			Library:      "H5P.Image 1.1",
			SubContentID: subContentID,
			Metadata: &imageMetadata{
				Title:       "Question Image",
				License:     "U",
				ContentType: "Image",
			},
		},
		DisableImageZooming: true,
	}
}

// noImageMedia is the media block for a question without an image.
func noImageMedia() *media {
	return &media{DisableImageZooming: true}
}
