package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sk-226/ssdownload/internal/filter"
)

// filterFlags holds the shared matrix-selection flags used by the bulk
// and list commands.
type filterFlags struct {
	spd       bool
	size      string
	rows      string
	cols      string
	nnz       string
	field     string
	group     string
	name      string
	kind      string
	structure string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.spd, "spd", false, "Symmetric positive definite matrices only")
	cmd.Flags().StringVar(&f.size, "size", "", "Matrix size range for both dimensions (e.g. '1000:5000')")
	cmd.Flags().StringVar(&f.rows, "rows", "", "Number of rows range (min:max, either side optional)")
	cmd.Flags().StringVar(&f.cols, "cols", "", "Number of columns range")
	cmd.Flags().StringVar(&f.nnz, "nnz", "", "Number of nonzeros range")
	cmd.Flags().StringVar(&f.field, "field", "", "Field type (real, complex, binary)")
	cmd.Flags().StringVar(&f.group, "group", "", "Matrix group/collection name (substring)")
	cmd.Flags().StringVar(&f.name, "name", "", "Matrix name pattern (substring)")
	cmd.Flags().StringVar(&f.kind, "kind", "", "Matrix kind (substring)")
	cmd.Flags().StringVar(&f.structure, "structure", "", "Matrix structure (symmetric, unsymmetric)")
}

// build turns the flag values into a filter.Filter. Range strings are
// parsed (and rejected) here, before any record is evaluated.
func (f *filterFlags) build() (filter.Filter, error) {
	var out filter.Filter

	if f.spd {
		t := true
		out.SPD = &t
	}
	out.Field = f.field
	out.Group = f.group
	out.Name = f.name
	out.Kind = f.kind
	out.Structure = f.structure

	// --size constrains both dimensions; explicit --rows/--cols win.
	if f.size != "" {
		r, err := filter.ParseRange(f.size)
		if err != nil {
			return filter.Filter{}, err
		}
		out.Rows, out.Cols = r, r
	}
	if f.rows != "" {
		r, err := filter.ParseRange(f.rows)
		if err != nil {
			return filter.Filter{}, err
		}
		out.Rows = r
	}
	if f.cols != "" {
		r, err := filter.ParseRange(f.cols)
		if err != nil {
			return filter.Filter{}, err
		}
		out.Cols = r
	}
	if f.nnz != "" {
		r, err := filter.ParseRange(f.nnz)
		if err != nil {
			return filter.Filter{}, err
		}
		out.Nonzeros = r
	}
	return out, nil
}
