package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Bounding boxes for room type photos.
const (
	PhotoMaxSize     = 1600
	ThumbnailMaxSize = 320
	jpegQuality      = 82
)

// ImageProcessor normalizes uploaded room photos.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Process decodes a JPEG or PNG and returns the photo fitted into PhotoMaxSize and a
// thumbnail fitted into ThumbnailMaxSize, both re-encoded as JPEG.
func (p *ImageProcessor) Process(content io.Reader) (photo, thumbnail *bytes.Buffer, err error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	photo, err = encode(imaging.Fit(img, PhotoMaxSize, PhotoMaxSize, imaging.Lanczos))
	if err != nil {
		return nil, nil, err
	}
	thumbnail, err = encode(imaging.Fill(img, ThumbnailMaxSize, ThumbnailMaxSize, imaging.Center, imaging.Lanczos))
	if err != nil {
		return nil, nil, err
	}
	return photo, thumbnail, nil
}

func encode(img image.Image) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf, nil
}
