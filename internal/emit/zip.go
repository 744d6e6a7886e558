package emit

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
)

// epoch is stamped on every archive entry so identical runs produce
// identical archives.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// ZipWriter collects files in memory and packs them, sorted by path and
// relative to Root, into a single archive on Close.
type ZipWriter struct {
	Root string
	mem  MemWriter
}

func (z *ZipWriter) WriteFile(path string, data []byte) error {
	return z.mem.WriteFile(path, data)
}

// WriteTo writes the archive to w.
func (z *ZipWriter) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, path := range z.mem.Paths() {
		data, _ := z.mem.File(path)
		name := relSlash(z.Root, path)
		method := zip.Deflate
		if filepath.Ext(name) == ".png" {
			// Already deflated.
			method = zip.Store
		}
		f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: epoch})
		if err != nil {
			return cw.n, fmt.Errorf("zip %s: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			return cw.n, fmt.Errorf("zip %s: %w", name, err)
		}
	}
	err := zw.Close()
	return cw.n, err
}

// Paths lists the collected paths, sorted.
func (z *ZipWriter) Paths() []string { return z.mem.Paths() }

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
