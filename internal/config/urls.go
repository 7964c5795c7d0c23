package config

import (
	"fmt"
	"strings"
)

// Format identifies one of the three artifact formats served by the
// collection.
type Format string

const (
	// FormatMat is the native MATLAB binary matrix file.
	FormatMat Format = "mat"
	// FormatMM is a Matrix Market tar.gz archive.
	FormatMM Format = "mm"
	// FormatRB is a Rutherford-Boeing tar.gz archive.
	FormatRB Format = "rb"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMat:
		return FormatMat, nil
	case FormatMM:
		return FormatMM, nil
	case FormatRB:
		return FormatRB, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected mat, mm, or rb)", s)
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatMat {
		return ".mat"
	}
	return ".tar.gz"
}

// IsArchive reports whether artifacts in this format are tar.gz archives.
func (f Format) IsArchive() bool {
	return f == FormatMM || f == FormatRB
}

// MatrixURL builds the download URL for one matrix artifact.
//
//	mat → <base>/mat/<group>/<name>.mat
//	mm  → <base>/MM/<group>/<name>.tar.gz
//	rb  → <base>/RB/<group>/<name>.tar.gz
func (c *Config) MatrixURL(group, name string, format Format) (string, error) {
	base := strings.TrimSuffix(c.BaseURL, "/")
	switch format {
	case FormatMat:
		return fmt.Sprintf("%s/mat/%s/%s.mat", base, group, name), nil
	case FormatMM:
		return fmt.Sprintf("%s/MM/%s/%s.tar.gz", base, group, name), nil
	case FormatRB:
		return fmt.Sprintf("%s/RB/%s/%s.tar.gz", base, group, name), nil
	}
	return "", fmt.Errorf("unsupported format %q", format)
}

// ChecksumURL builds the URL of the MD5 sidecar for one matrix artifact.
func (c *Config) ChecksumURL(group, name string, format Format) (string, error) {
	u, err := c.MatrixURL(group, name, format)
	if err != nil {
		return "", err
	}
	return u + ".md5", nil
}
