package pixmap

import (
	"github.com/bodgit/pixmap/ppm"
	"golang.org/x/image/draw"
)

// Resize returns a copy of g scaled to width by height pixels using an
// approximate bilinear filter. The color depth is kept.
func Resize(g *ppm.Grid, width, height int) *ppm.Grid {
	dst := ppm.New(width, height)
	dst.SetColorDepth(g.ColorDepth())
	if g.Width() == 0 || g.Height() == 0 {
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), g, g.Bounds(), draw.Src, nil)
	return dst
}

// Fit returns a copy of g scaled so it is no wider than width, keeping the
// aspect ratio. Narrower images are copied as-is.
func Fit(g *ppm.Grid, width int) *ppm.Grid {
	if width < 1 || g.Width() <= width {
		return ppm.FromImage(g)
	}
	return Resize(g, width, max(1, g.Height()*width/g.Width()))
}

// Thumbnail returns a copy of g scaled so neither edge is longer than size,
// keeping the aspect ratio. Smaller images are copied as-is.
func Thumbnail(g *ppm.Grid, size int) *ppm.Grid {
	w, h := g.Width(), g.Height()
	if w <= size && h <= size {
		return ppm.FromImage(g)
	}
	if w >= h {
		return Resize(g, size, max(1, h*size/w))
	}
	return Resize(g, max(1, w*size/h), size)
}
