package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrEmpty         = errors.New("image data is empty")
	ErrTooManyPixels = errors.New("image dimensions exceed the pixel limit")
)

// Info describes the source of a decoded image.
type Info struct {
	Format   string
	HadAlpha bool
}

// Decode parses any registered format and converts the result to RGB. An
// alpha channel, if present, is discarded: colour values are taken
// unpremultiplied and alpha is ignored.
func Decode(data []byte) (*Image, Info, error) {
	return DecodeLimited(data, 0)
}

// DecodeLimited is Decode with a cap on width*height, checked from the
// header before any pixel is allocated. maxPixels <= 0 disables the cap.
func DecodeLimited(data []byte, maxPixels int) (*Image, Info, error) {
	if len(data) == 0 {
		return nil, Info{}, ErrEmpty
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, Info{}, fmt.Errorf("decode image header: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, Info{}, fmt.Errorf("%w: %dx%d, limit is %d", ErrTooManyPixels, cfg.Width, cfg.Height, maxPixels)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode image: %w", err)
	}

	info := Info{Format: format, HadAlpha: hasAlpha(src)}
	return FromImage(src), info, nil
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

// FromImage converts any image.Image to RGB. The result's origin matches
// the source bounds.
func FromImage(src image.Image) *Image {
	if rgb, ok := src.(*Image); ok {
		return rgb
	}

	b := src.Bounds()
	dst := NewImage(b)

	switch s := src.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := s.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[di], dst.Pix[di+1], dst.Pix[di+2] = s.Pix[si], s.Pix[si+1], s.Pix[si+2]
				si += 4
				di += channels
			}
		}
	case *image.NRGBA64:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := s.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				// high byte of each big-endian 16-bit channel
				dst.Pix[di], dst.Pix[di+1], dst.Pix[di+2] = s.Pix[si], s.Pix[si+2], s.Pix[si+4]
				si += 8
				di += channels
			}
		}
	case *image.Paletted:
		var lut [256][channels]uint8
		for i, c := range s.Palette {
			if i >= len(lut) {
				break
			}
			// palette entries from png tRNS are already NRGBA, so RGB survives
			// a fully transparent entry
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			lut[i] = [channels]uint8{n.R, n.G, n.B}
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := s.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				c := lut[s.Pix[si]]
				dst.Pix[di], dst.Pix[di+1], dst.Pix[di+2] = c[0], c[1], c[2]
				si++
				di += channels
			}
		}
	case *image.YCbCr:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			di := dst.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				yi := s.YOffset(x, y)
				ci := s.COffset(x, y)
				r, g, bl := color.YCbCrToRGB(s.Y[yi], s.Cb[ci], s.Cr[ci])
				dst.Pix[di], dst.Pix[di+1], dst.Pix[di+2] = r, g, bl
				di += channels
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			di := dst.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				dst.Pix[di], dst.Pix[di+1], dst.Pix[di+2] = c.R, c.G, c.B
				di += channels
			}
		}
	}

	return dst
}

// EncodeJPEG is used by backends that ship crops to a remote model.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
