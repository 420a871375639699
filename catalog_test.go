package pixmap

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/bodgit/pixmap/ppm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexSHA1 = regexp.MustCompile(`^[0-9A-F]{40}$`)

func TestCatalogAdd(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()

	g := gradient(4, 3)
	g.SetColorDepth(200)
	file := writeFile(t, dir, "a.ppm", g.Bytes())

	id, err := c.Add(file)
	require.NoError(t, err)

	entries, err := c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, id, e.ID)
	assert.Equal(t, file, e.Path)
	assert.Equal(t, 4, e.Width)
	assert.Equal(t, 3, e.Height)
	assert.Equal(t, 200, e.ColorDepth)
	assert.Equal(t, Checksum(g), e.Checksum)
	assert.Regexp(t, hexSHA1, e.SHA1)

	// Unchanged file keeps its row
	again, err := c.Add(file)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// Changed file updates its row
	require.NoError(t, os.WriteFile(file, gradient(2, 2).Bytes(), 0644))
	updated, err := c.Add(file)
	require.NoError(t, err)
	assert.Equal(t, id, updated)

	entries, err = c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Width)
	assert.Equal(t, Checksum(gradient(2, 2)), entries[0].Checksum)
	assert.NotEqual(t, e.SHA1, entries[0].SHA1)
}

func TestCatalogAddErrors(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()

	_, err := c.Add(writeFile(t, dir, "bad.ppm", []byte("P3\n1 1\n255\n0 0 0\n")))
	assert.ErrorIs(t, err, ppm.ErrInvalidSignature)

	_, err = c.Add(filepath.Join(dir, "missing.ppm"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCatalogDuplicates(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()

	g := gradient(3, 3)
	a := writeFile(t, dir, "a.ppm", g.Bytes())
	b := writeFile(t, dir, "b.ppm", append([]byte("# copy\n"), append(g.Bytes(), 0x00)...))
	other := writeFile(t, dir, "c.ppm", gradient(3, 4).Bytes())

	for _, file := range []string{a, b, other} {
		_, err := c.Add(file)
		require.NoError(t, err)
	}

	groups, err := c.Duplicates()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0], 2)
	assert.Equal(t, a, groups[0][0].Path)
	assert.Equal(t, b, groups[0][1].Path)
	assert.NotEqual(t, groups[0][0].SHA1, groups[0][1].SHA1)

	found, err := c.FindByChecksum(Checksum(gradient(3, 4)))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, other, found[0].Path)

	found, err = c.FindByChecksum("00000000")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestCatalogPreview(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()

	id, err := c.Add(writeFile(t, dir, "wide.ppm", gradient(32, 16).Bytes()))
	require.NoError(t, err)

	preview, err := c.Preview(id)
	require.NoError(t, err)
	assert.Equal(t, 8, preview.Width())
	assert.Equal(t, 4, preview.Height())

	small := gradient(2, 2)
	id, err = c.Add(writeFile(t, dir, "small.ppm", small.Bytes()))
	require.NoError(t, err)

	preview, err = c.Preview(id)
	require.NoError(t, err)
	assert.Equal(t, small, preview)

	_, err = c.Preview(12345)
	assert.ErrorIs(t, err, errNotFound)
}

func TestCatalogPrune(t *testing.T) {
	c := newTestCatalog(t)
	dir := t.TempDir()

	keep := writeFile(t, dir, "keep.ppm", gradient(1, 1).Bytes())
	gone := writeFile(t, dir, "gone.ppm", gradient(2, 1).Bytes())
	for _, file := range []string{keep, gone} {
		_, err := c.Add(file)
		require.NoError(t, err)
	}
	require.NoError(t, os.Remove(gone))

	n, err := c.Prune()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, keep, entries[0].Path)
}

func TestCatalogReopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.db")
	img := writeFile(t, t.TempDir(), "a.ppm", gradient(2, 2).Bytes())

	c, err := NewCatalog(file, 0)
	require.NoError(t, err)
	_, err = c.Add(img)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = NewCatalog(file, 0)
	require.NoError(t, err)
	defer c.Close()

	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
