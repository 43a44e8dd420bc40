package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	ContentType = "image/webp"
	Ext         = "webp"

	maxUploadBytes = 10 << 20

	// a small file can still declare huge dimensions; this caps the
	// decoded bitmap before it is allocated
	maxPixels = 40_000_000
)

var ErrInvalidImage = errors.New("invalid image")

// Processor re-encodes uploads to WebP, shrinking anything wider than
// maxWidth while keeping the aspect ratio.
type Processor struct {
	maxWidth int
	quality  float32
}

type Result struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

func NewProcessor(maxWidth int, quality float32) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Processor{maxWidth: maxWidth, quality: quality}
}

func (p *Processor) Normalize(r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(raw) > maxUploadBytes {
		return nil, ErrInvalidImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrInvalidImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, ErrInvalidImage
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrInvalidImage
	}

	img := p.resize(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	b := img.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		ContentType: ContentType,
		Ext:         Ext,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

func (p *Processor) resize(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if p.maxWidth <= 0 || w <= p.maxWidth {
		return src
	}

	nh := h * p.maxWidth / w
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, p.maxWidth, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
