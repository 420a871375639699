/*
Package ansi renders pixel images on a terminal that understands 24-bit color
escape sequences.

Each character cell shows two vertically stacked pixels: the upper one as the
foreground color of an upper half block glyph and the lower one as the
background color, so an image of height h takes (h+1)/2 lines.
*/
package ansi

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bodgit/pixmap/ppm"
)

const (
	halfBlock = "▀"

	// Reset restores the default terminal colors.
	Reset = "\x1b[0m"
)

// Source is the read-only view of an image needed to render it. *ppm.Grid
// implements it.
type Source interface {
	Width() int
	Height() int
	PixelAt(x, y int) (ppm.Color, bool)
}

// Foreground returns the escape sequence selecting c as the foreground color.
func Foreground(c ppm.Color) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.Red(), c.Green(), c.Blue())
}

// Background returns the escape sequence selecting c as the background color.
func Background(c ppm.Color) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.Red(), c.Green(), c.Blue())
}

// Render writes src to w. Every line is terminated by Reset and a newline.
func Render(w io.Writer, src Source) error {
	bw := bufio.NewWriter(w)

	for y := 0; y < src.Height(); y += 2 {
		for x := 0; x < src.Width(); x++ {
			// On an odd height the last line has no lower pixel
			if c, ok := src.PixelAt(x, y+1); ok {
				if _, err := bw.WriteString(Background(c)); err != nil {
					return err
				}
			}
			if c, ok := src.PixelAt(x, y); ok {
				if _, err := bw.WriteString(Foreground(c) + halfBlock); err != nil {
					return err
				}
			}
		}
		if _, err := bw.WriteString(Reset + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
