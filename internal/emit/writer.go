package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Writer stores finished files. Implementations must accept concurrent
// calls for distinct paths.
type Writer interface {
	WriteFile(path string, data []byte) error
}

// DirWriter writes to the local filesystem, creating parent directories
// on demand.
type DirWriter struct {
	DirPerm  os.FileMode
	FilePerm os.FileMode
}

func (w DirWriter) WriteFile(path string, data []byte) error {
	dirPerm, filePerm := w.DirPerm, w.FilePerm
	if dirPerm == 0 {
		dirPerm = 0o755
	}
	if filePerm == 0 {
		filePerm = 0o644
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	// Write a sibling temp file and rename it into place so a crash never
	// leaves a truncated asset behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// MemWriter keeps files in memory. It backs dry runs and tests.
type MemWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (w *MemWriter) WriteFile(path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files == nil {
		w.files = make(map[string][]byte)
	}
	w.files[path] = append([]byte(nil), data...)
	return nil
}

// File returns the content written to path.
func (w *MemWriter) File(path string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[path]
	return data, ok
}

// Paths lists every written path, sorted.
func (w *MemWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
