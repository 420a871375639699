/*
Package ppm implements a decoder and encoder for the binary variant of the
Portable Pixmap format, identified by the "P6" magic.

A file is a short ASCII header followed by raw pixel data:

	P6\n
	<width> <height>\n
	<color depth>\n
	<red><green><blue> ... repeated width*height times, row-major

Lines starting with '#' before the color depth line are comments and are
skipped by the decoder; the encoder never writes them. The color depth is kept
as metadata only, channel values are never rescaled.

The decoder is lenient about the pixel body: a short body leaves the remaining
pixels black and trailing bytes are ignored. Only a malformed header is an
error.
*/
package ppm

import (
	"image"
	"math"
)

const (
	// DefaultColorDepth is the color depth of a newly created Grid.
	DefaultColorDepth = 255

	bytesPerPixel = 3
)

var signature = []byte{'P', '6'}

// tooLarge reports whether the encoded body of a width by height image would
// overflow int.
func tooLarge(width, height int) bool {
	return width > 0 && height > math.MaxInt/bytesPerPixel/width
}

func init() {
	image.RegisterFormat("ppm", "P6\n", decodeImage, DecodeConfig)
}
