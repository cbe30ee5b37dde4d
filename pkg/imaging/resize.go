package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"

	"github.com/gen2brain/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// DefaultMaxPixels bounds width*height of a decoded upload (40 MP).
const DefaultMaxPixels = 40_000_000

var (
	ErrEmptyImage    = errors.New("imaging: empty image")
	ErrTooManyPixels = errors.New("imaging: image dimensions exceed the pixel limit")
)

// Thumbnail is an encoded, resized image.
type Thumbnail struct {
	Data   []byte
	Width  int
	Height int
}

const (
	ContentType = "image/webp"
	Extension   = ".webp"
)

// Processor fits images inside a bounding box and encodes them as WebP.
type Processor struct {
	maxWidth  int
	maxHeight int
	quality   int
	maxPixels int
}

// NewProcessor returns a processor for a maxWidth×maxHeight box. maxPixels
// caps the source size read from the image header; zero or less means
// DefaultMaxPixels.
func NewProcessor(maxWidth, maxHeight, quality, maxPixels int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Processor{maxWidth: maxWidth, maxHeight: maxHeight, quality: quality, maxPixels: maxPixels}
}

// Fit decodes data, scales it down to fit the box and encodes it as WebP.
// Images already inside the box keep their size. The header is checked
// against the pixel limit before any pixel data is decoded.
func (p *Processor) Fit(data []byte) (*Thumbnail, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(p.maxPixels) {
		return nil, fmt.Errorf("%w: %s %dx%d", ErrTooManyPixels, format, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	newWidth, newHeight := FitInside(bounds.Dx(), bounds.Dy(), p.maxWidth, p.maxHeight)

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, webp.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &Thumbnail{Data: buf.Bytes(), Width: newWidth, Height: newHeight}, nil
}

// FitInside returns the largest size with the aspect ratio of w×h that fits
// in maxW×maxH, never larger than w×h itself. Sides are at least 1.
func FitInside(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}

	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	return max(min(nw, maxW), 1), max(min(nh, maxH), 1)
}
