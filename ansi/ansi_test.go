package ansi

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bodgit/pixmap/ppm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEscapes(t *testing.T) {
	c := ppm.NewColor(1, 22, 255)
	assert.Equal(t, "\x1b[38;2;1;22;255m", Foreground(c))
	assert.Equal(t, "\x1b[48;2;1;22;255m", Background(c))
}

func TestRender(t *testing.T) {
	red := ppm.NewColor(255, 0, 0)
	green := ppm.NewColor(0, 255, 0)
	blue := ppm.NewColor(0, 0, 255)

	g := ppm.New(2, 3)
	require.NoError(t, g.SetPixel(0, 0, red))
	require.NoError(t, g.SetPixel(1, 0, green))
	require.NoError(t, g.SetPixel(0, 1, blue))
	require.NoError(t, g.SetPixel(1, 2, red))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, g))

	black := ppm.NewColor(0, 0, 0)
	want := strings.Join([]string{
		Background(blue) + Foreground(red) + halfBlock + Background(black) + Foreground(green) + halfBlock + Reset,
		Foreground(black) + halfBlock + Foreground(red) + halfBlock + Reset,
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, ppm.New(0, 0)))
	assert.Empty(t, buf.String())

	require.NoError(t, Render(&buf, ppm.New(0, 2)))
	assert.Equal(t, Reset+"\n", buf.String())
}

func TestRenderWriterError(t *testing.T) {
	boom := errors.New("boom")
	err := Render(errWriter{boom}, ppm.New(1, 1))
	assert.ErrorIs(t, err, boom)
}
