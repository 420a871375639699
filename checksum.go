package pixmap

import (
	"fmt"
	"hash/crc32"

	"github.com/bodgit/pixmap/ppm"
)

// Checksum returns the CRC-32 of the canonical encoding of g as eight
// upper case hex digits. Header comments and excess trailing bytes in the
// original file do not contribute, so two files holding the same pixels,
// dimensions and color depth share a checksum.
func Checksum(g *ppm.Grid) string {
	h := crc32.NewIEEE()
	h.Write(g.Bytes())
	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil))
}
