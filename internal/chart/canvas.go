package chart

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas is a raster surface that rendered charts are pasted onto, used to
// compose multi-panel images.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a w×h canvas filled with bg.
func NewCanvas(w, h int, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return &Canvas{img: img}
}

// Image returns the underlying image.
func (c *Canvas) Image() image.Image {
	return c.img
}

// Paste copies src into r, clipped to r.
func (c *Canvas) Paste(r image.Rectangle, src image.Image) {
	draw.Draw(c.img, r, src, src.Bounds().Min, draw.Src)
}

// Note writes text centred in r with the 7x13 label face.
func (c *Canvas) Note(r image.Rectangle, text string, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(col), Face: face}
	w := d.MeasureString(text).Ceil()
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + r.Dy()/2 + face.Metrics().Ascent.Ceil()/2
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d.DrawString(text)
}
