package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sk-226/ssdownload/internal/config"
)

var (
	flagDLGroup       string
	flagDLFormat      string
	flagDLOutput      string
	flagDLWorkers     int
	flagDLVerify      bool
	flagDLKeepArchive bool
	flagDLFlat        bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <identifier>",
	Short: "Download a single matrix by name or group/name",
	Long: `Download one matrix artifact.

The identifier is either "group/name", or a bare matrix name whose
group is resolved from the collection index. A name present in more
than one group is an error listing every candidate group.

Examples:
  ssdl download HB/nos5
  ssdl download nos5
  ssdl download ct20stif --group Boeing --format mm`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&flagDLGroup, "group", "g", "", "Matrix group name (optional if identifier contains group/name)")
	downloadCmd.Flags().StringVarP(&flagDLFormat, "format", "f", "mat", "File format (mat, mm, rb)")
	downloadCmd.Flags().StringVarP(&flagDLOutput, "output", "o", "", "Output directory (default: current directory)")
	downloadCmd.Flags().IntVarP(&flagDLWorkers, "workers", "w", 0, "Number of concurrent workers")
	downloadCmd.Flags().BoolVar(&flagDLVerify, "verify", false, "Enable checksum verification")
	downloadCmd.Flags().BoolVar(&flagDLKeepArchive, "keep-archive", false, "Keep tar.gz files after extraction (mm/rb formats)")
	downloadCmd.Flags().BoolVar(&flagDLFlat, "flat", false, "Save files directly in the output directory without group subdirectories")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	format, err := config.ParseFormat(flagDLFormat)
	if err != nil {
		return err
	}
	group, name, err := splitIdentifier(args[0])
	if err != nil {
		return err
	}
	if group == "" {
		group = flagDLGroup
	}

	progress := &progressPrinter{}
	c, err := newClient(flagDLOutput, flagDLWorkers, flagDLVerify, flagDLKeepArchive, flagDLFlat, progress.update)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if group == "" {
		printInfo("", fmt.Sprintf("Searching for matrix %q...", name))
		res, err := c.DownloadByName(ctx, name, format)
		progress.done()
		if err != nil {
			return err
		}
		return reportResult(res)
	}

	res, err := c.Download(ctx, group, name, format)
	progress.done()
	if err != nil {
		return err
	}
	return reportResult(res)
}
