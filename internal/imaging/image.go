// Package imaging holds the decoded 3-channel raster handed to vision
// backends, plus the decoding and cropping helpers around it.
package imaging

import (
	"image"
	"image/color"
)

const channels = 3

// Image is an RGB raster with 3 bytes per pixel. It implements image.Image so
// it can be fed straight into the standard encoders.
type Image struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	return &Image{
		Pix:    make([]uint8, w*h*channels),
		Stride: w * channels,
		Rect:   r,
	}
}

func (p *Image) ColorModel() color.Model { return color.RGBAModel }

func (p *Image) Bounds() image.Rectangle { return p.Rect }

func (p *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 0xff}
}

// Opaque is always true: the alpha channel never survives decoding.
func (p *Image) Opaque() bool { return true }

func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*channels
}

func (p *Image) Width() int  { return p.Rect.Dx() }
func (p *Image) Height() int { return p.Rect.Dy() }

// SubImage returns a view sharing pixels with p.
func (p *Image) SubImage(r image.Rectangle) *Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &Image{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Image{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// Crop copies r out of p into a tightly packed image whose origin is (0,0).
func (p *Image) Crop(r image.Rectangle) *Image {
	sub := p.SubImage(r)
	out := NewImage(image.Rect(0, 0, sub.Rect.Dx(), sub.Rect.Dy()))
	rowLen := sub.Rect.Dx() * channels
	for y := 0; y < sub.Rect.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+rowLen], sub.Pix[y*sub.Stride:y*sub.Stride+rowLen])
	}
	return out
}

// Packed returns the pixels row by row without stride padding.
func (p *Image) Packed() []uint8 {
	rowLen := p.Rect.Dx() * channels
	if p.Stride == rowLen && len(p.Pix) == rowLen*p.Rect.Dy() {
		return p.Pix
	}
	return p.Crop(p.Rect).Pix
}

// Expand grows r by ratio of its size on every side and clips it to bounds.
func Expand(r image.Rectangle, ratio float64, bounds image.Rectangle) image.Rectangle {
	dx := int(float64(r.Dx()) * ratio)
	dy := int(float64(r.Dy()) * ratio)
	return image.Rect(r.Min.X-dx, r.Min.Y-dy, r.Max.X+dx, r.Max.Y+dy).Intersect(bounds)
}
