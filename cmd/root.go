package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "ssdl",
	Short:        "Download sparse matrices from the SuiteSparse Matrix Collection",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `ssdl downloads sparse matrix files from the SuiteSparse Matrix
Collection, with concurrent resumable transfers, checksum verification,
and a filterable local copy of the collection index.`,
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
