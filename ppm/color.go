package ppm

import (
	"fmt"
	"image/color"
)

// Model converts any color.Color to a Color. Transparent colors are
// composited over black.
var Model color.Model = color.ModelFunc(model)

// Color is an 8-bit RGB color. The zero value is black.
type Color struct {
	r, g, b uint8
}

// NewColor returns the Color with the given channel values.
func NewColor(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Red returns the red channel.
func (c Color) Red() uint8 { return c.r }

// Green returns the green channel.
func (c Color) Green() uint8 { return c.g }

// Blue returns the blue channel.
func (c Color) Blue() uint8 { return c.b }

// RGB returns the three channels as a tuple.
func (c Color) RGB() (r, g, b uint8) {
	return c.r, c.g, c.b
}

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r)
	r |= r << 8
	g = uint32(c.g)
	g |= g << 8
	b = uint32(c.b)
	b |= b << 8
	return r, g, b, 0xffff
}

func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.r, c.g, c.b)
}

func model(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	// Alpha-premultiplied values are already composited over black
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}
