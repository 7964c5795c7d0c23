package config

import "testing"

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"mat", FormatMat},
		{"MAT", FormatMat},
		{" mm ", FormatMM},
		{"rb", FormatRB},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "matlab", "tar.gz"} {
		if _, err := ParseFormat(in); err == nil {
			t.Errorf("ParseFormat(%q): expected error", in)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	if got := FormatMat.Extension(); got != ".mat" {
		t.Errorf("mat extension = %q", got)
	}
	if got := FormatMM.Extension(); got != ".tar.gz" {
		t.Errorf("mm extension = %q", got)
	}
	if got := FormatRB.Extension(); got != ".tar.gz" {
		t.Errorf("rb extension = %q", got)
	}
}

func TestFormat_IsArchive(t *testing.T) {
	if FormatMat.IsArchive() {
		t.Errorf("mat is not an archive format")
	}
	if !FormatMM.IsArchive() || !FormatRB.IsArchive() {
		t.Errorf("mm and rb are archive formats")
	}
}

func TestMatrixURL(t *testing.T) {
	cfg := &Config{BaseURL: "https://example.com/"}
	cases := []struct {
		format Format
		want   string
	}{
		{FormatMat, "https://example.com/mat/HB/nos5.mat"},
		{FormatMM, "https://example.com/MM/HB/nos5.tar.gz"},
		{FormatRB, "https://example.com/RB/HB/nos5.tar.gz"},
	}
	for _, tc := range cases {
		got, err := cfg.MatrixURL("HB", "nos5", tc.format)
		if err != nil {
			t.Fatalf("MatrixURL(%q): %v", tc.format, err)
		}
		if got != tc.want {
			t.Errorf("MatrixURL(%q) = %q, want %q", tc.format, got, tc.want)
		}
	}

	if _, err := cfg.MatrixURL("HB", "nos5", Format("csv")); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestChecksumURL(t *testing.T) {
	cfg := &Config{BaseURL: "https://example.com"}
	got, err := cfg.ChecksumURL("HB", "nos5", FormatMat)
	if err != nil {
		t.Fatalf("ChecksumURL: %v", err)
	}
	if got != "https://example.com/mat/HB/nos5.mat.md5" {
		t.Errorf("ChecksumURL = %q", got)
	}
}
