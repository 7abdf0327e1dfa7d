package comprovante

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// unpackArchive extracts every entry of the ZIP held in data into destDir,
// preserving subdirectories. Entry names that would escape destDir are
// rejected.
func unpackArchive(data []byte, destDir string) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	for _, f := range r.File {
		if err := extractEntry(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry writes a single archive entry to destDir.
func extractEntry(f *zip.File, destDir string) error {
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal entry path %q", f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("writing entry %q: %w", f.Name, err)
	}
	return nil
}

// findPDFs walks root recursively and returns the paths of all PDF files,
// in walk order.
func findPDFs(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning for PDFs: %w", err)
	}
	return paths, nil
}

// packArchive builds a deflate-compressed ZIP from the given files, using
// each file's base name as its entry name. Duplicate paths are written once,
// so a name two renames collided on holds the last file written to it.
func packArchive(paths []string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	seen := make(map[string]bool)
	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		entry, err := w.CreateHeader(&zip.FileHeader{
			Name:   filepath.Base(path),
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("creating entry %q: %w", filepath.Base(path), err)
		}
		if _, err := entry.Write(data); err != nil {
			return nil, fmt.Errorf("writing entry %q: %w", filepath.Base(path), err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}
