package usecase

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	maxSignatureBytes     = 2 << 20
	signatureMaxWidth     = 600
	signatureMaxHeight    = 200
	minSignatureInkPixels = 30

	// maxSignaturePixels bounds the decoded canvas, whatever the payload size.
	maxSignaturePixels = 4000 * 4000
)

// DecodeSignature turns the base64 drawing captured client-side into a PNG
// flattened on white, ready to be embedded in the signed document.
// Blank canvases are rejected with ErrEmptySignature.
func DecodeSignature(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if i := strings.Index(encoded, ","); strings.HasPrefix(encoded, "data:") && i > 0 {
		encoded = encoded[i+1:]
	}
	if encoded == "" {
		return nil, ErrEmptySignature
	}
	if base64.StdEncoding.DecodedLen(len(encoded)) > maxSignatureBytes {
		return nil, ErrInvalidSignature
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Some canvases emit unpadded base64.
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return nil, ErrInvalidSignature
		}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxSignaturePixels {
		return nil, ErrInvalidSignature
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrInvalidSignature
	}
	if countInkPixels(img) < minSignatureInkPixels {
		return nil, ErrEmptySignature
	}

	bounds := img.Bounds()
	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
	if bounds.Dx() > signatureMaxWidth || bounds.Dy() > signatureMaxHeight {
		flat = imaging.Fit(flat, signatureMaxWidth, signatureMaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.PNG); err != nil {
		return nil, ErrInvalidSignature
	}
	return buf.Bytes(), nil
}

// countInkPixels counts opaque, dark pixels: the strokes of a drawing.
func countInkPixels(img image.Image) int {
	b := img.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < 128 {
				continue
			}
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			if lum < 200 {
				n++
			}
		}
	}
	return n
}
