package s3

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func TestProfileFit(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
		resized      bool
	}{
		{800, 600, 800, 600, false},
		{2400, 800, 1200, 400, true},
		{1200, 1600, 600, 800, true},
		{3000, 2000, 1200, 800, true},
	}
	for _, tt := range tests {
		w, h, resized := ImageProfile.fit(tt.w, tt.h)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
		assert.Equal(t, tt.resized, resized)
	}
}

func TestTransformImage_DownscalesJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(2400, 1600), nil))

	out, contentType, err := transformImage(buf.Bytes(), ImageProfile)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
}

func TestTransformImage_PNGStaysPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(1600, 400)))

	out, contentType, err := transformImage(buf.Bytes(), ImageProfile)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestTransformImage_SmallImageUntouched(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(640, 480), nil))

	out, contentType, err := transformImage(buf.Bytes(), ImageProfile)
	require.NoError(t, err)
	assert.Empty(t, contentType)
	assert.Equal(t, buf.Bytes(), out)
}

func TestTransformImage_GIFPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	pal := image.NewPaletted(image.Rect(0, 0, 2000, 2000), []color.Color{color.Black, color.White})
	require.NoError(t, gif.Encode(&buf, pal, nil))

	out, contentType, err := transformImage(buf.Bytes(), ImageProfile)
	require.NoError(t, err)
	assert.Empty(t, contentType)
	assert.Equal(t, buf.Bytes(), out)
}

func TestTransformImage_RejectsGarbage(t *testing.T) {
	_, _, err := transformImage([]byte("not an image"), ImageProfile)
	assert.Error(t, err)
}

// pngHeaderOnly returns a PNG signature and IHDR chunk declaring w×h RGBA,
// with no pixel data behind it.
func pngHeaderOnly(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // truecolor with alpha

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestTransformImage_RejectsOversizedDimensions(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"png 10000x10000", pngHeaderOnly(10_000, 10_000)},
		{"gif 65535x65535", []byte("GIF89a\xff\xff\xff\xff\x00\x00\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := transformImage(tt.data, ImageProfile)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), "pixel limit")
		})
	}
}

func TestTransformImage_AllowsLargeButBoundedHeader(t *testing.T) {
	// 6000x4000 is under the cap, so the header passes and the missing
	// pixel data fails at full decode instead.
	_, _, err := transformImage(pngHeaderOnly(6000, 4000), ImageProfile)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}
