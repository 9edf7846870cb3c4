package renderer

import (
	"image"
	"image/color"
)

// Framebuffer holds 8-bit RGB pixels, row-major from the top-left corner
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte // 3 bytes per pixel, len = Width*Height*3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// PixOffset returns the index of the red byte of pixel (x, y)
func (fb *Framebuffer) PixOffset(x, y int) int {
	return (y*fb.Width + x) * 3
}

// SetRGB writes one pixel
func (fb *Framebuffer) SetRGB(x, y int, rgb [3]byte) {
	i := fb.PixOffset(x, y)
	fb.Pix[i] = rgb[0]
	fb.Pix[i+1] = rgb[1]
	fb.Pix[i+2] = rgb[2]
}

// RGB reads one pixel
func (fb *Framebuffer) RGB(x, y int) [3]byte {
	i := fb.PixOffset(x, y)
	return [3]byte{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]}
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.Width, fb.Height) }

// At implements image.Image so a framebuffer can be handed to image encoders directly
func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(fb.Bounds()) {
		return color.RGBA{}
	}
	rgb := fb.RGB(x, y)
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}
