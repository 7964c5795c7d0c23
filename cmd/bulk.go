package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sk-226/ssdownload/internal/config"
	"github.com/sk-226/ssdownload/internal/download"
)

var (
	bulkFilter          filterFlags
	flagBulkFormat      string
	flagBulkOutput      string
	flagBulkWorkers     int
	flagBulkMaxFiles    int
	flagBulkVerify      bool
	flagBulkKeepArchive bool
	flagBulkFlat        bool
)

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Download multiple matrices matching filter criteria",
	Long: `Download every matrix matching the given filters, up to --max-files,
with bounded concurrent transfers. One failed download never aborts the
rest of the batch.

Examples:
  ssdl bulk --spd --size :5000
  ssdl bulk --group HB --nnz 1e4:1e6 --format mm --max-files 10`,
	RunE: runBulk,
}

func init() {
	bulkFilter.register(bulkCmd)
	bulkCmd.Flags().StringVarP(&flagBulkFormat, "format", "f", "mat", "File format (mat, mm, rb)")
	bulkCmd.Flags().StringVarP(&flagBulkOutput, "output", "o", "", "Output directory (default: current directory)")
	bulkCmd.Flags().IntVarP(&flagBulkWorkers, "workers", "w", 0, "Number of concurrent workers")
	bulkCmd.Flags().IntVar(&flagBulkMaxFiles, "max-files", 0, "Maximum number of files to download (0 = no limit)")
	bulkCmd.Flags().BoolVar(&flagBulkVerify, "verify", false, "Enable checksum verification")
	bulkCmd.Flags().BoolVar(&flagBulkKeepArchive, "keep-archive", false, "Keep tar.gz files after extraction (mm/rb formats)")
	bulkCmd.Flags().BoolVar(&flagBulkFlat, "flat", false, "Save files directly in the output directory without group subdirectories")
	rootCmd.AddCommand(bulkCmd)
}

func runBulk(cmd *cobra.Command, _ []string) error {
	format, err := config.ParseFormat(flagBulkFormat)
	if err != nil {
		return err
	}
	f, err := bulkFilter.build()
	if err != nil {
		return err
	}

	c, err := newClient(flagBulkOutput, flagBulkWorkers, flagBulkVerify, flagBulkKeepArchive, flagBulkFlat, nil)
	if err != nil {
		return err
	}

	batch, err := c.DownloadMany(cmd.Context(), f, format, flagBulkMaxFiles)
	if err != nil {
		return err
	}
	if batch.Count == 0 {
		printInfo("", "No matrices found matching criteria")
		return nil
	}
	printInfo("", fmt.Sprintf("Found %d matrices to download", batch.Count))

	completed, skipped, failed := 0, 0, 0
	for res := range batch.Results() {
		switch res.Outcome {
		case download.Completed:
			completed++
		case download.Skipped:
			skipped++
		default:
			failed++
		}
		_ = reportResult(res)
	}

	printSection("Bulk Download Summary")
	printOK("", fmt.Sprintf("%d downloaded, %d already present", completed, skipped))
	if failed > 0 {
		printErr("", fmt.Sprintf("%d failed", failed))
		return fmt.Errorf("%d of %d downloads failed", failed, batch.Count)
	}
	return nil
}
