package ppm

import (
	"image"
	"io"
	"strconv"
)

func (g *Grid) appendHeader(b []byte) []byte {
	b = append(b, signature...)
	b = append(b, '\n')
	b = strconv.AppendInt(b, int64(g.width), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(g.height), 10)
	b = append(b, '\n')
	b = strconv.AppendInt(b, int64(g.colorDepth), 10)
	return append(b, '\n')
}

// Bytes returns g encoded as a P6 image. Exactly Width()*Height() pixels are
// written; if the buffer was desynchronised from the dimensions through
// SetWidth or SetHeight, missing pixels are written as black.
func (g *Grid) Bytes() []byte {
	n := g.width * g.height

	// Enough for a header with three 20 digit numbers
	b := make([]byte, 0, 64+n*bytesPerPixel)
	b = g.appendHeader(b)

	for i := 0; i < n; i++ {
		var c Color
		if i < len(g.pix) {
			c = g.pix[i]
		}
		b = append(b, c.r, c.g, c.b)
	}

	return b
}

// MarshalBinary implements encoding.BinaryMarshaler. It never returns an
// error.
func (g *Grid) MarshalBinary() ([]byte, error) {
	return g.Bytes(), nil
}

// Encode writes the Image m to w in P6 format. A *Grid is written with its
// own color depth, any other image is converted with a depth of 255.
func Encode(w io.Writer, m image.Image) error {
	g, ok := m.(*Grid)
	if !ok {
		g = FromImage(m)
	}

	if _, err := w.Write(g.Bytes()); err != nil {
		return &Error{Kind: IOError, Err: err}
	}

	return nil
}
