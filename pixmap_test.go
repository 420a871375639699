package pixmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/pixmap/ppm"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(filepath.Join(t.TempDir(), "test.db"), 8)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	require.NoError(t, os.WriteFile(file, data, 0644))
	return file
}

func gradient(w, h int) *ppm.Grid {
	g := ppm.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if err := g.SetPixel(x, y, ppm.NewColor(uint8(x*255/max(w-1, 1)), uint8(y*255/max(h-1, 1)), 0x80)); err != nil {
				panic(err)
			}
		}
	}
	return g
}

func uniform(w, h int, c ppm.Color) *ppm.Grid {
	g := ppm.New(w, h)
	pix := make([]ppm.Color, w*h)
	for i := range pix {
		pix[i] = c
	}
	if err := g.SetPixels(pix); err != nil {
		panic(err)
	}
	return g
}
