// ABOUTME: Writes export output to uniquely named files in a report directory.
// ABOUTME: Partially written files are removed on failure.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveFile writes data to a new file in dir named after name with a random
// suffix before the extension, and returns its path. The caller owns the file.
func SaveFile(dir, name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	return save(dir, name[:len(name)-len(ext)]+"-*"+ext, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func save(dir, pattern string, write func(io.Writer) error) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	path := f.Name()

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write report file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close report file: %w", err)
	}
	return path, nil
}
