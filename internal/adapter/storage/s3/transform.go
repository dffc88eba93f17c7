package s3

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	_ "image/gif"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
)

// MaxImagePixels bounds the decoded canvas; headers claiming more are
// rejected before any pixel data is allocated.
const MaxImagePixels = 40_000_000

// Profile bounds a stored asset. Media larger than the box is scaled down
// preserving aspect ratio; smaller media is never enlarged.
type Profile struct {
	Name        string
	MaxWidth    int
	MaxHeight   int
	JPEGQuality int
}

var (
	ImageProfile = Profile{Name: "limit_1200x800_q_auto_good", MaxWidth: 1200, MaxHeight: 800, JPEGQuality: 82}
	VideoProfile = Profile{Name: "limit_1280x720", MaxWidth: 1280, MaxHeight: 720}
)

// fit returns the size that fits w×h inside the profile box.
func (p Profile) fit(w, h int) (int, int, bool) {
	if w <= p.MaxWidth && h <= p.MaxHeight {
		return w, h, false
	}
	scale := min(float64(p.MaxWidth)/float64(w), float64(p.MaxHeight)/float64(h))
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	return max(nw, 1), max(nh, 1), true
}

// transformImage applies the profile to JPEG and PNG data. Other formats,
// and images already inside the box, are returned unchanged with an empty
// content type.
func transformImage(data []byte, p Profile) ([]byte, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image header: %w", err)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > MaxImagePixels {
		return nil, "", fmt.Errorf("%w: image is %dx%d, above the %d pixel limit",
			domain.ErrValidation, cfg.Width, cfg.Height, MaxImagePixels)
	}
	if format != "jpeg" && format != "png" {
		return data, "", nil
	}
	w, h, resize := p.fit(cfg.Width, cfg.Height)
	if !resize {
		return data, "", nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if format == "png" {
		err = png.Encode(&buf, dst)
		return buf.Bytes(), "image/png", err
	}
	err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.JPEGQuality})
	return buf.Bytes(), "image/jpeg", err
}
