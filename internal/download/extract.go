package download

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractTarGz unpacks a downloaded tar.gz archive into destDir and
// returns the extracted file paths. Entries with absolute paths or
// traversal sequences are skipped.
func ExtractTarGz(archivePath, destDir string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	gzr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("invalid gzip archive %s: %w", archivePath, err)
	}
	defer gzr.Close()

	var out []string
	tr := tar.NewReader(gzr)
	for {
		h, err := tr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return out, fmt.Errorf("invalid tar archive %s: %w", archivePath, err)
		}
		name := sanitizeArchivePath(h.Name)
		if name == "" {
			continue
		}
		target := filepath.Join(destDir, name)

		switch h.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return out, err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return out, err
			}
			if err := writeFileFromReader(target, tr, h.FileInfo().Mode().Perm()); err != nil {
				return out, err
			}
			out = append(out, target)
		}
	}
	return out, nil
}

// sanitizeArchivePath rejects absolute paths and traversal sequences in
// archive entries.
func sanitizeArchivePath(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "/") {
		return ""
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return ""
		}
	}
	clean := filepath.Clean(name)
	if clean == "." {
		return ""
	}
	return clean
}

// writeFileFromReader writes a file by copying from r and setting mode.
func writeFileFromReader(path string, r io.Reader, mode os.FileMode) error {
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return err
	}
	return nil
}
