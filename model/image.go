package model

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"path"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Fallback display dimensions for images whose bytes cannot be decoded.
const (
	DefaultImageWidth  = 600
	DefaultImageHeight = 400
)

// SniffDimensions decodes just enough of the image to learn its pixel size.
func SniffDimensions(data []byte) (width, height int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return DefaultImageWidth, DefaultImageHeight
	}
	return cfg.Width, cfg.Height
}

// NewImageRef builds the reference for extracted image bytes. The filename
// is derived from the content hash, so identical bytes referenced from
// several records collapse onto a single stored file.
func NewImageRef(sourceID, target, mime string, data []byte) ImageRef {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	ext := strings.ToLower(path.Ext(target))
	if ext == "" {
		ext = extForMime(mime)
	}

	w, h := SniffDimensions(data)
	return ImageRef{
		SourceID: sourceID,
		Filename: hash[:16] + ext,
		Mime:     mime,
		Width:    w,
		Height:   h,
		SHA256:   hash,
	}
}

func extForMime(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
