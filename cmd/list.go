package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listFilter      filterFlags
	flagListLimit   int
	flagListVerbose bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List matrices matching filter criteria",
	RunE:  runList,
}

func init() {
	listFilter.register(listCmd)
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "l", 20, "Maximum number of results (0 = no limit)")
	listCmd.Flags().BoolVarP(&flagListVerbose, "verbose", "v", false, "Show detailed information")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	f, err := listFilter.build()
	if err != nil {
		return err
	}
	c, err := newClient("", 0, false, false, false, nil)
	if err != nil {
		return err
	}

	records, err := c.FindMatrices(cmd.Context(), f)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		printInfo("", "No matrices found matching criteria")
		return nil
	}

	total := len(records)
	if flagListLimit > 0 && total > flagListLimit {
		records = records[:flagListLimit]
		printInfo("", fmt.Sprintf("Showing %d of %d matrices (use --limit to see more)", len(records), total))
	} else {
		printInfo("", fmt.Sprintf("%d matrices", total))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if flagListVerbose {
		fmt.Fprintln(w, "GROUP\tNAME\tROWS\tCOLS\tNNZ\tFIELD\tSPD\tKIND")
		for _, rec := range records {
			spd := ""
			if rec.IsSPD() {
				spd = "✓"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
				rec.Group, rec.Name, rec.Rows, rec.Cols, rec.Nonzeros, rec.FieldType(), spd, rec.Kind)
		}
	} else {
		fmt.Fprintln(w, "GROUP/NAME\tSIZE\tNNZ\tFIELD")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%d×%d\t%d\t%s\n",
				rec.Key(), rec.Rows, rec.Cols, rec.Nonzeros, rec.FieldType())
		}
	}
	return w.Flush()
}
