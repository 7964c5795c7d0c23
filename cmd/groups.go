package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List all available matrix groups",
	RunE:  runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, _ []string) error {
	c, err := newClient("", 0, false, false, false, nil)
	if err != nil {
		return err
	}
	groups, err := c.Groups(cmd.Context())
	if err != nil {
		return err
	}

	printSection(fmt.Sprintf("Available Groups (%d total)", len(groups)))
	for _, g := range groups {
		fmt.Printf("  %s\n", g)
	}
	return nil
}
