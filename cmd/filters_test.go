package cmd

import (
	"testing"
)

func TestFilterFlags_Build(t *testing.T) {
	f := filterFlags{spd: true, group: "HB", nnz: "1000:"}
	out, err := f.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if out.SPD == nil || !*out.SPD {
		t.Errorf("spd flag not applied")
	}
	if out.Group != "HB" {
		t.Errorf("group = %q", out.Group)
	}
	if !out.Nonzeros.HasMin || out.Nonzeros.Min != 1000 || out.Nonzeros.HasMax {
		t.Errorf("nnz range = %+v", out.Nonzeros)
	}
}

func TestFilterFlags_SizeConstrainsBothDimensions(t *testing.T) {
	f := filterFlags{size: "100:5000"}
	out, err := f.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, r := range []struct {
		name string
		rng  interface{ Contains(float64) bool }
	}{{"rows", out.Rows}, {"cols", out.Cols}} {
		if !r.rng.Contains(100) || !r.rng.Contains(5000) || r.rng.Contains(99) {
			t.Errorf("%s range not set from --size", r.name)
		}
	}
}

func TestFilterFlags_ExplicitDimensionsWinOverSize(t *testing.T) {
	f := filterFlags{size: "100:5000", rows: "1:10"}
	out, err := f.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if out.Rows.Max != 10 {
		t.Errorf("rows range = %+v, explicit flag must override --size", out.Rows)
	}
	if out.Cols.Max != 5000 {
		t.Errorf("cols range = %+v, should still come from --size", out.Cols)
	}
}

func TestFilterFlags_InvalidRange(t *testing.T) {
	for _, f := range []filterFlags{
		{size: "abc"},
		{rows: "100:10"},
		{nnz: "x:y"},
	} {
		if _, err := f.build(); err == nil {
			t.Errorf("build(%+v): expected error", f)
		}
	}
}

func TestFilterFlags_EmptyIsZeroFilter(t *testing.T) {
	out, err := (&filterFlags{}).build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !out.IsZero() {
		t.Fatalf("empty flags must build the zero filter: %+v", out)
	}
}

func TestSplitIdentifier(t *testing.T) {
	cases := []struct {
		in          string
		group, name string
		wantErr     bool
	}{
		{"nos5", "", "nos5", false},
		{"HB/nos5", "HB", "nos5", false},
		{"/nos5", "", "", true},
		{"HB/", "", "", true},
	}
	for _, tc := range cases {
		group, name, err := splitIdentifier(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("splitIdentifier(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("splitIdentifier(%q): %v", tc.in, err)
			continue
		}
		if group != tc.group || name != tc.name {
			t.Errorf("splitIdentifier(%q) = (%q, %q), want (%q, %q)", tc.in, group, name, tc.group, tc.name)
		}
	}
}

func TestHumanBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tc := range cases {
		if got := humanBytes(tc.in); got != tc.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
