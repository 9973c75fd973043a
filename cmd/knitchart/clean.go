package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"knitchart/internal/driver"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the on-disk chart cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := driver.OpenDiskCache("knitchart")
			if err != nil {
				return err
			}
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
			}
			return nil
		},
	}
}
