package imaging_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"go-portfolio-forms/pkg/imaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func TestFitInside(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape", 600, 400, 300, 200},
		{"portrait", 400, 1000, 120, 300},
		{"square", 1200, 1200, 300, 300},
		{"already fits", 120, 80, 120, 80},
		{"exact box", 300, 300, 300, 300},
		{"one side over", 301, 10, 300, 10},
		{"extreme strip", 5000, 2, 300, 1},
		{"empty", 0, 10, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := imaging.FitInside(tc.w, tc.h, 300, 300)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestProcessorFit(t *testing.T) {
	p := imaging.NewProcessor(300, 300, 80, 0)

	t.Run("Should shrink PNG into the box as WebP", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, solid(600, 400)))

		out, err := p.Fit(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 300, out.Width)
		assert.Equal(t, 200, out.Height)

		cfg, err := webp.DecodeConfig(bytes.NewReader(out.Data))
		require.NoError(t, err)
		assert.Equal(t, 300, cfg.Width)
		assert.Equal(t, 200, cfg.Height)
	})

	t.Run("Should not upscale small JPEGs", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, solid(40, 90), nil))

		out, err := p.Fit(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 40, out.Width)
		assert.Equal(t, 90, out.Height)
	})

	t.Run("Should fail on undecodable bytes", func(t *testing.T) {
		_, err := p.Fit([]byte("definitely not an image"))
		assert.Error(t, err)
	})

	t.Run("Should fail on empty input", func(t *testing.T) {
		_, err := p.Fit(nil)
		assert.ErrorIs(t, err, imaging.ErrEmptyImage)
	})
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w×h 8-bit
// grey image, with no pixel data behind it.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth; colour type, compression, filter and interlace stay 0

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestProcessorPixelLimit(t *testing.T) {
	t.Run("Should reject a 40000x40000 header before decoding", func(t *testing.T) {
		p := imaging.NewProcessor(300, 300, 80, 0)

		_, err := p.Fit(pngHeader(40000, 40000))
		assert.ErrorIs(t, err, imaging.ErrTooManyPixels)
	})

	t.Run("Should apply a configured limit", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, solid(200, 100)))

		_, err := imaging.NewProcessor(300, 300, 80, 10_000).Fit(buf.Bytes())
		assert.ErrorIs(t, err, imaging.ErrTooManyPixels)

		out, err := imaging.NewProcessor(300, 300, 80, 20_000).Fit(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 200, out.Width)
	})
}
