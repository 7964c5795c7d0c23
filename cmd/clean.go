package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sk-226/ssdownload/internal/config"
	"github.com/sk-226/ssdownload/internal/download"
	"github.com/sk-226/ssdownload/internal/index"
)

var (
	flagCleanYes   bool
	flagCleanParts string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clear the index cache and remove leftover partial downloads",
	Long: `Delete the cached collection index so the next operation fetches a
fresh copy. With --parts, also remove orphaned .part side-files left by
interrupted downloads; completed artifacts are never touched.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&flagCleanYes, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().StringVar(&flagCleanParts, "parts", "", "Also remove .part side-files under the given directory")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cachePath := index.CachePath(cfg.CacheDir)

	st, err := os.Stat(cachePath)
	switch {
	case os.IsNotExist(err):
		printSkip("", "no cache file found; cache is already clean")
	case err != nil:
		return err
	default:
		printInfo("", fmt.Sprintf("Cache file: %s (%s)", cachePath, humanBytes(st.Size())))
		if !flagCleanYes && !confirm("Clear the index cache?") {
			printInfo("", "cache cleanup cancelled")
			return nil
		}
		store := index.New(index.Options{CacheDir: cfg.CacheDir})
		if err := store.ClearCache(); err != nil {
			return err
		}
		printOK("", "cache cleared; next operation will fetch fresh index data")
	}

	if flagCleanParts != "" {
		removed, err := download.CleanSideFiles(flagCleanParts)
		if err != nil {
			return fmt.Errorf("cannot clean side-files: %w", err)
		}
		printOK("", fmt.Sprintf("removed %d partial download(s) under %s", removed, flagCleanParts))
	}
	return nil
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
