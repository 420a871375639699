package pixmap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/pixmap/ppm"
	"github.com/ericpauley/go-quantize/quantize"
)

const (
	minColors = 2
	maxColors = 256
)

// Reduce returns a copy of g using at most colors distinct colors. The
// palette is chosen with a median cut and the image is dithered onto it.
func Reduce(g *ppm.Grid, colors int) (*ppm.Grid, error) {
	if colors < minColors || colors > maxColors {
		return nil, fmt.Errorf("pixmap: number of colors must be between %d and %d, got %d", minColors, maxColors, colors)
	}

	b := g.Bounds()
	if b.Empty() {
		return ppm.FromImage(g), nil
	}

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), g))
	draw.FloydSteinberg.Draw(pm, b, g, b.Min)

	out := ppm.FromImage(pm)
	out.SetColorDepth(g.ColorDepth())
	return out, nil
}
