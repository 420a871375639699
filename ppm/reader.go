package ppm

import (
	"bytes"
	"image"
	"io"
	"os"
	"strconv"
)

// stateFn consumes one header line and returns the state handling the next
// one. The color depth state returns nil, which ends the header.
type stateFn func(d *decoder, line []byte) (stateFn, error)

type decoder struct {
	data []byte
	pos  int

	width, height int
	colorDepth    int
	haveSize      bool
	haveDepth     bool

	grid *Grid
}

// Non-negative base-10 integer with an optional leading '+'
func parseUint(b []byte) (int, error) {
	if len(b) > 0 && b[0] == '+' {
		b = b[1:]
	}
	if len(b) == 0 || b[0] < '0' || b[0] > '9' {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(string(b))
}

// Keeps error messages readable when fed garbage
func quote(b []byte) string {
	const limit = 32
	if len(b) > limit {
		return strconv.Quote(string(b[:limit])) + "..."
	}
	return strconv.Quote(string(b))
}

func signatureState(d *decoder, line []byte) (stateFn, error) {
	if !bytes.Equal(line, signature) {
		return nil, newError(InvalidSignature, "expected %q, got %s", signature, quote(line))
	}
	return dimensionsState, nil
}

func dimensionsState(d *decoder, line []byte) (stateFn, error) {
	i := bytes.IndexByte(line, ' ')
	if i < 0 {
		return nil, newError(UnexpectedEOF, "no separator in image size %s", quote(line))
	}

	width, err := parseUint(line[:i])
	if err != nil {
		return nil, &Error{Kind: InvalidFormat, Detail: "width " + quote(line[:i]), Err: err}
	}
	height, err := parseUint(line[i+1:])
	if err != nil {
		return nil, &Error{Kind: InvalidFormat, Detail: "height " + quote(line[i+1:]), Err: err}
	}

	d.width, d.height, d.haveSize = width, height, true
	return colorDepthState, nil
}

func colorDepthState(d *decoder, line []byte) (stateFn, error) {
	depth, err := parseUint(line)
	if err != nil {
		return nil, &Error{Kind: InvalidFormat, Detail: "color depth " + quote(line), Err: err}
	}

	d.colorDepth, d.haveDepth = depth, true
	return nil, nil
}

// nextLine returns the bytes up to the next line feed and moves the cursor
// past it.
func (d *decoder) nextLine() ([]byte, bool) {
	i := bytes.IndexByte(d.data[d.pos:], '\n')
	if i < 0 {
		return nil, false
	}
	line := d.data[d.pos : d.pos+i]
	d.pos += i + 1
	return line, true
}

func (d *decoder) readHeader() error {
	for state := stateFn(signatureState); state != nil; {
		line, ok := d.nextLine()
		if !ok {
			if d.haveSize {
				// Only the color depth is missing
				break
			}
			return newError(UnexpectedEOF, "header is incomplete")
		}
		if len(line) > 0 && line[0] == '#' {
			continue
		}

		var err error
		if state, err = state(d, line); err != nil {
			return err
		}
	}

	if !d.haveSize || !d.haveDepth {
		return newError(InvalidFormat, "no color depth in header")
	}

	if tooLarge(d.width, d.height) {
		return newError(InvalidFormat, "image size (%d, %d) overflows", d.width, d.height)
	}

	return nil
}

// readPixels fills the grid from the bytes after the header. Pixels with no
// complete triple left stay black, excess bytes are ignored.
func (d *decoder) readPixels() {
	body := d.data[d.pos:]
	n := min(len(body)/bytesPerPixel, len(d.grid.pix))
	for i := 0; i < n; i++ {
		j := i * bytesPerPixel
		d.grid.pix[i] = Color{body[j], body[j+1], body[j+2]}
	}
}

func (d *decoder) decode(data []byte, configOnly bool) error {
	d.data = data

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	d.grid = New(d.width, d.height)
	d.grid.colorDepth = d.colorDepth
	d.readPixels()

	return nil
}

// DecodeBytes decodes a P6 image held in b.
func DecodeBytes(b []byte) (*Grid, error) {
	var d decoder
	if err := d.decode(b, false); err != nil {
		return nil, err
	}
	return d.grid, nil
}

// Decode reads everything from r and decodes it as a P6 image.
func Decode(r io.Reader) (*Grid, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Kind: IOError, Err: err}
	}
	return DecodeBytes(b)
}

// DecodeFile reads the named file and decodes it as a P6 image.
func DecodeFile(name string) (*Grid, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, &Error{Kind: IOError, Err: err}
	}
	return DecodeBytes(b)
}

// DecodeConfig returns the color model and dimensions of a P6 image without
// decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, &Error{Kind: IOError, Err: err}
	}
	var d decoder
	if err := d.decode(b, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: Model,
		Width:      d.width,
		Height:     d.height,
	}, nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	g, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// UnmarshalBinary replaces g with the P6 image decoded from b. It implements
// encoding.BinaryUnmarshaler.
func (g *Grid) UnmarshalBinary(b []byte) error {
	dup, err := DecodeBytes(b)
	if err != nil {
		return err
	}
	*g = *dup
	return nil
}
