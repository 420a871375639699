package pixmap

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/pixmap/ppm"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultPreviewSize is the longest edge in pixels of a stored preview.
const DefaultPreviewSize = 64

var errNotFound = errors.New("pixmap: no such image")

// Catalog is an SQLite database of decoded images.
type Catalog struct {
	db          *sql.DB
	previewSize int
}

// Entry is a single image recorded in the catalog.
type Entry struct {
	ID         int64
	Path       string
	SHA1       string // hash of the file as stored on disk
	Checksum   string // hash of the pixels, see Checksum
	Width      int
	Height     int
	ColorDepth int
}

// NewCatalog opens or creates the catalog database in file. Previews are
// scaled to fit previewSize pixels, a value below one uses
// DefaultPreviewSize.
func NewCatalog(file string, previewSize int) (*Catalog, error) {
	if previewSize < 1 {
		previewSize = DefaultPreviewSize
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// Workers write concurrently, SQLite only allows one writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, checksum TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, depth INTEGER NOT NULL, preview BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS image_checksum ON image (checksum)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db:          db,
		previewSize: previewSize,
	}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add decodes the image in file and records it, returning the row id. A file
// already in the catalog is updated if its contents changed. Decoding
// failures are returned as *ppm.Error.
func (c *Catalog) Add(file string) (int64, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := sha1.New()
	g, err := ppm.Decode(io.TeeReader(f, h))
	if err != nil {
		return 0, err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	var id int64
	var old string
	switch err := c.db.QueryRow("SELECT id, sha1 FROM image WHERE path = ?", file).Scan(&id, &old); err {
	case sql.ErrNoRows:
		preview := compress(Thumbnail(g, c.previewSize).Bytes())
		result, err := c.db.Exec("INSERT INTO image (path, sha1, checksum, width, height, depth, preview) VALUES (?, ?, ?, ?, ?, ?, ?)", file, sha, Checksum(g), g.Width(), g.Height(), g.ColorDepth(), preview)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if old == sha {
			return id, nil
		}
		preview := compress(Thumbnail(g, c.previewSize).Bytes())
		if _, err := c.db.Exec("UPDATE image SET sha1 = ?, checksum = ?, width = ?, height = ?, depth = ?, preview = ? WHERE id = ?", sha, Checksum(g), g.Width(), g.Height(), g.ColorDepth(), preview, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Path, &e.SHA1, &e.Checksum, &e.Width, &e.Height, &e.ColorDepth); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Entries returns every image in the catalog ordered by path.
func (c *Catalog) Entries() ([]Entry, error) {
	rows, err := c.db.Query("SELECT id, path, sha1, checksum, width, height, depth FROM image ORDER BY path")
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// FindByChecksum returns the images whose pixels match the checksum crc.
func (c *Catalog) FindByChecksum(crc string) ([]Entry, error) {
	rows, err := c.db.Query("SELECT id, path, sha1, checksum, width, height, depth FROM image WHERE checksum = ? ORDER BY path", crc)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// Duplicates returns groups of two or more images with identical pixels.
func (c *Catalog) Duplicates() ([][]Entry, error) {
	rows, err := c.db.Query("SELECT checksum FROM image GROUP BY checksum HAVING COUNT(*) > 1 ORDER BY checksum")
	if err != nil {
		return nil, err
	}

	// Collect first, there is only one connection to run the next query on
	var checksums []string
	for rows.Next() {
		var crc string
		if err := rows.Scan(&crc); err != nil {
			rows.Close()
			return nil, err
		}
		checksums = append(checksums, crc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var groups [][]Entry
	for _, crc := range checksums {
		entries, err := c.FindByChecksum(crc)
		if err != nil {
			return nil, err
		}
		groups = append(groups, entries)
	}
	return groups, nil
}

// Preview returns the stored preview of the image with the given row id.
func (c *Catalog) Preview(id int64) (*ppm.Grid, error) {
	var preview []byte
	switch err := c.db.QueryRow("SELECT preview FROM image WHERE id = ?", id).Scan(&preview); err {
	case sql.ErrNoRows:
		return nil, errNotFound
	case nil:
		b, err := decompress(preview)
		if err != nil {
			return nil, err
		}
		return ppm.DecodeBytes(b)
	default:
		return nil, err
	}
}

// Prune removes images whose file no longer exists and returns how many
// were removed.
func (c *Catalog) Prune() (int, error) {
	entries, err := c.Entries()
	if err != nil {
		return 0, err
	}

	var n int
	for _, e := range entries {
		if _, err := os.Stat(e.Path); !os.IsNotExist(err) {
			continue
		}
		if _, err := c.db.Exec("DELETE FROM image WHERE id = ?", e.ID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
