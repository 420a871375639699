package ppm

import (
	"image"
	"image/color"
	"iter"
)

// Grid is a rectangular buffer of pixels plus the color depth declared in the
// file header. Pixels are stored row-major, the pixel at (x, y) lives at
// index y*Width()+x. It implements the draw.Image interface.
type Grid struct {
	width      int
	height     int
	colorDepth int
	pix        []Color
}

// New returns a width by height Grid with every pixel black and the default
// color depth. Negative dimensions are treated as zero, as are dimensions
// whose pixel count overflows int.
func New(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	if tooLarge(width, height) {
		width, height = 0, 0
	}
	return &Grid{
		width:      width,
		height:     height,
		colorDepth: DefaultColorDepth,
		pix:        make([]Color, width*height),
	}
}

// Width returns the width in pixels.
func (g *Grid) Width() int { return g.width }

// SetWidth changes the declared width. The pixel buffer is not resized.
func (g *Grid) SetWidth(width int) { g.width = max(width, 0) }

// Height returns the height in pixels.
func (g *Grid) Height() int { return g.height }

// SetHeight changes the declared height. The pixel buffer is not resized.
func (g *Grid) SetHeight(height int) { g.height = max(height, 0) }

// ColorDepth returns the maximum channel value declared in the header.
func (g *Grid) ColorDepth() int { return g.colorDepth }

// SetColorDepth changes the declared maximum channel value. Pixels are not
// rescaled or clamped.
func (g *Grid) SetColorDepth(depth int) { g.colorDepth = depth }

func (g *Grid) offset(x, y int) (int, bool) {
	if !(image.Point{x, y}).In(g.Bounds()) {
		return 0, false
	}
	i := y*g.width + x
	return i, i < len(g.pix)
}

// PixelAt returns the pixel at (x, y). The boolean is false if the position
// is outside the grid.
func (g *Grid) PixelAt(x, y int) (Color, bool) {
	i, ok := g.offset(x, y)
	if !ok {
		return Color{}, false
	}
	return g.pix[i], true
}

// SetPixel replaces the pixel at (x, y). A position outside the grid returns
// an OutOfBounds error and leaves the grid untouched.
func (g *Grid) SetPixel(x, y int, c Color) error {
	i, ok := g.offset(x, y)
	if !ok {
		return newError(OutOfBounds, "pixel position (%d,%d) is out of bounds for image size (%d, %d)", x, y, g.width, g.height)
	}
	g.pix[i] = c
	return nil
}

// Pixels returns a copy of the pixel buffer in row-major order.
func (g *Grid) Pixels() []Color {
	pix := make([]Color, len(g.pix))
	copy(pix, g.pix)
	return pix
}

// SetPixels replaces every pixel with a copy of pix. The length of pix must
// be exactly Width()*Height(), otherwise an InvalidFormat error is returned
// and the grid is untouched.
func (g *Grid) SetPixels(pix []Color) error {
	if n := g.width * g.height; len(pix) != n {
		return newError(InvalidFormat, "%d pixels given for image size (%d, %d), want %d", len(pix), g.width, g.height, n)
	}
	if len(g.pix) != len(pix) {
		g.pix = make([]Color, len(pix))
	}
	copy(g.pix, pix)
	return nil
}

// All returns an iterator over every pixel and its position in row-major
// order.
func (g *Grid) All() iter.Seq2[image.Point, Color] {
	return func(yield func(image.Point, Color) bool) {
		if g.width == 0 {
			return
		}
		for i, c := range g.pix {
			if !yield(image.Pt(i%g.width, i/g.width), c) {
				return
			}
		}
	}
}

// ColorModel implements image.Image.
func (g *Grid) ColorModel() color.Model {
	return Model
}

// Bounds implements image.Image.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// At implements image.Image.
func (g *Grid) At(x, y int) color.Color {
	if c, ok := g.PixelAt(x, y); ok {
		return c
	}
	return color.Transparent
}

// Set implements draw.Image. Positions outside the grid are ignored.
func (g *Grid) Set(x, y int, c color.Color) {
	if i, ok := g.offset(x, y); ok {
		g.pix[i] = model(c).(Color)
	}
}

// FromImage copies m into a new Grid with the default color depth.
func FromImage(m image.Image) *Grid {
	if g, ok := m.(*Grid); ok {
		dup := *g
		dup.pix = g.Pixels()
		return &dup
	}
	b := m.Bounds()
	g := New(b.Dx(), b.Dy())
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.pix[y*g.width+x] = model(m.At(b.Min.X+x, b.Min.Y+y)).(Color)
		}
	}
	return g
}
