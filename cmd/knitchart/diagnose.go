package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"knitchart/internal/diagfmt"
	"knitchart/internal/driver"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag <file|dir>",
		Short: "Check pattern files and report diagnostics",
		Long: `Check one pattern file, or every .knit and .txt file under a directory,
and report all problems found. Exits with status 1 if any file has an error.`,
		Args: cobra.ExactArgs(1),
		RunE: runDiagnose,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	cmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths")
	cmd.Flags().Bool("disk-cache", false, "reuse charts from the on-disk cache")
	return cmd
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	ui, err := readUIMode("ui", uiFlag)
	if err != nil {
		return err
	}

	st, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	st.opts.Jobs = jobs
	if useCache {
		cache, cacheErr := driver.OpenDiskCache("knitchart")
		if cacheErr != nil {
			return cacheErr
		}
		st.opts.Cache = cache
	}

	baseDir, files, err := collectTargets(target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var result *driver.BatchResult
	// прогресс только для pretty и нескольких файлов
	if format == "pretty" && !st.quiet && len(files) > 1 && ui.enabledFor(out) {
		result, err = chartFilesWithUI(cmd.Context(), out, "Checking "+target, baseDir, files, st.opts)
	} else {
		result, err = driver.ChartFiles(cmd.Context(), baseDir, files, st.opts)
	}
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	bag := result.Bag()

	switch format {
	case "json":
		err = diagfmt.JSON(out, bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              st.maxDiagnostics,
			IncludeNotes:     withNotes,
		})
	case "short":
		err = diagfmt.Short(out, bag, result.FileSet, withNotes)
	default:
		diagfmt.Pretty(out, bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     st.colorFor(out),
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			Hint:      patternHint,
		})
		if bag.Len() == 0 && !st.quiet {
			fmt.Fprintf(out, "ok: %s\n", filesCount(len(files)))
		}
	}
	if err != nil {
		return err
	}
	if st.timings {
		printTimings(cmd.ErrOrStderr(), result.Timer, false)
	}
	if result.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

// collectTargets expands target into the file list and the directory that
// output paths are relative to.
func collectTargets(target string) (baseDir string, files []string, err error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if !info.IsDir() {
		return filepath.Dir(target), []string{target}, nil
	}
	files, err = driver.ListPatternFiles(target)
	if err != nil {
		return "", nil, err
	}
	if len(files) == 0 {
		return "", nil, fmt.Errorf("no pattern files (%s) under %s", extensionList(), target)
	}
	return target, files, nil
}

func extensionList() string {
	return strings.Join(driver.PatternExtensions, ", ")
}

func filesCount(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
