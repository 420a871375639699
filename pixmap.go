/*
Package pixmap is a library for cataloguing and manipulating binary PPM (P6)
images.

Images are decoded with the ppm subpackage. A Catalog records every image
found under a directory tree in an SQLite database along with a content
checksum and a small compressed preview, which makes it possible to find
images that share the same pixels even when their files differ.
*/
package pixmap

import "log"

// DefaultWorkers is the number of images decoded concurrently by Scan.
const DefaultWorkers = 10

type Pixmap struct {
	catalog *Catalog
	logger  *log.Logger
	workers int
}

// New returns a Pixmap storing into catalog, logging to logger and decoding
// up to workers images at once. A workers value below one uses
// DefaultWorkers.
func New(catalog *Catalog, logger *log.Logger, workers int) *Pixmap {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Pixmap{
		catalog: catalog,
		logger:  logger,
		workers: workers,
	}
}

// Catalog returns the underlying catalog.
func (p *Pixmap) Catalog() *Catalog {
	return p.catalog
}

// Close closes the underlying catalog.
func (p *Pixmap) Close() error {
	return p.catalog.Close()
}
