package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sk-226/ssdownload/internal/config"
)

var (
	flagGetFormat  string
	flagGetOutput  string
	flagGetWorkers int
	flagGetVerify  bool
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Download a matrix by name only (automatically find group)",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringVarP(&flagGetFormat, "format", "f", "mat", "File format (mat, mm, rb)")
	getCmd.Flags().StringVarP(&flagGetOutput, "output", "o", "", "Output directory (default: current directory)")
	getCmd.Flags().IntVarP(&flagGetWorkers, "workers", "w", 0, "Number of concurrent workers")
	getCmd.Flags().BoolVar(&flagGetVerify, "verify", false, "Enable checksum verification")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	format, err := config.ParseFormat(flagGetFormat)
	if err != nil {
		return err
	}

	progress := &progressPrinter{}
	c, err := newClient(flagGetOutput, flagGetWorkers, flagGetVerify, false, false, progress.update)
	if err != nil {
		return err
	}

	printInfo("", fmt.Sprintf("Searching for matrix %q...", args[0]))
	res, err := c.DownloadByName(cmd.Context(), args[0], format)
	progress.done()
	if err != nil {
		return err
	}
	return reportResult(res)
}
