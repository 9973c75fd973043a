package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"knitchart/internal/project"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create knitchart.toml and a sample pattern",
		Long: `Create a knitchart.toml manifest and a sample.knit pattern in [dir], or in
the current directory when omitted. A missing directory is created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().Bool("force", false, "overwrite existing files")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if !filepath.IsAbs(target) {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = filepath.Join(wd, target)
	}

	written, err := project.Init(target, force)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	for _, path := range written {
		fmt.Fprintf(out, "created %s\n", path)
	}
	fmt.Fprintf(out, "try: knitchart chart %s\n", filepath.Join(target, project.SamplePatternName))
	return nil
}
