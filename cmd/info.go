package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sk-226/ssdownload/internal/config"
)

var flagInfoGroup string

var infoCmd = &cobra.Command{
	Use:   "info <identifier>",
	Short: "Show detailed information about a specific matrix",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&flagInfoGroup, "group", "g", "", "Matrix group name (optional if identifier contains group/name)")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	group, name, err := splitIdentifier(args[0])
	if err != nil {
		return err
	}
	if group == "" {
		group = flagInfoGroup
	}

	c, err := newClient("", 0, false, false, false, nil)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if group == "" {
		printInfo("", fmt.Sprintf("Searching for matrix %q...", name))
		group, err = c.ResolveGroup(ctx, name)
		if err != nil {
			return err
		}
	}
	rec, err := c.FindRecord(ctx, group, name)
	if err != nil {
		return err
	}

	printSection("Matrix Information: " + rec.Key())
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Group\t%s\n", rec.Group)
	fmt.Fprintf(w, "Name\t%s\n", rec.Name)
	fmt.Fprintf(w, "Dimensions\t%d×%d\n", rec.Rows, rec.Cols)
	fmt.Fprintf(w, "Nonzeros\t%d\n", rec.Nonzeros)
	fmt.Fprintf(w, "Field Type\t%s\n", rec.FieldType())
	fmt.Fprintf(w, "Structure\t%s\n", rec.Structure())
	fmt.Fprintf(w, "Positive Definite\t%s\n", rec.PosDef)
	fmt.Fprintf(w, "SPD\t%s\n", yesNo(rec.IsSPD()))
	fmt.Fprintf(w, "Pattern Symmetry\t%.0f%%\n", rec.PatternSymmetry*100)
	fmt.Fprintf(w, "Numerical Symmetry\t%.0f%%\n", rec.NumericalSymmetry*100)
	fmt.Fprintf(w, "2D/3D Discretization\t%s\n", yesNo(rec.Is2D3D))
	fmt.Fprintf(w, "Kind\t%s\n", rec.Kind)
	if err := w.Flush(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fmt.Println("\nDownload URLs:")
	for _, format := range []config.Format{config.FormatMat, config.FormatMM, config.FormatRB} {
		url, err := cfg.MatrixURL(rec.Group, rec.Name, format)
		if err != nil {
			return err
		}
		fmt.Printf("  %-3s  %s\n", format, url)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
