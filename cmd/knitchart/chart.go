package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"knitchart/internal/chartfmt"
	"knitchart/internal/diagfmt"
	"knitchart/internal/driver"
)

const patternHint = "check your pattern syntax; `knitchart stitches` lists the known abbreviations"

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <file|->",
		Short: "Expand a pattern and draw its stitch chart",
		Long: `Expand a written pattern and draw it as a stitch chart.
Rows are drawn bottom-up; odd rows read right to left and carry their number
on the right.`,
		Args: cobra.ExactArgs(1),
		RunE: runChart,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|plain)")
	cmd.Flags().Bool("legend", true, "print the legend of used stitches (pretty only)")
	cmd.Flags().Bool("no-numbers", false, "omit row numbers (pretty only)")
	cmd.Flags().Bool("disk-cache", false, "reuse charts from the on-disk cache")
	return cmd
}

func runChart(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	legend, err := cmd.Flags().GetBool("legend")
	if err != nil {
		return fmt.Errorf("failed to get legend flag: %w", err)
	}
	noNumbers, err := cmd.Flags().GetBool("no-numbers")
	if err != nil {
		return fmt.Errorf("failed to get no-numbers flag: %w", err)
	}
	switch format {
	case "pretty", "json", "plain":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	res, st, err := chartArg(cmd, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !res.OK() {
		return reportDiagnostics(cmd, st, res)
	}

	switch format {
	case "json":
		err = chartfmt.JSON(out, res.Grid)
	case "plain":
		err = chartfmt.Plain(out, res.Grid)
	default:
		err = chartfmt.Pretty(out, res.Grid, chartfmt.PrettyOpts{
			Color:      st.colorFor(out),
			RowNumbers: !noNumbers,
			Legend:     legend,
			Title:      titleFor(res, st),
		})
	}
	if err != nil {
		return err
	}
	if st.timings {
		printTimings(cmd.ErrOrStderr(), res.Timer, res.Cached)
	}
	return nil
}

// chartArg charts a file argument, or stdin for "-".
func chartArg(cmd *cobra.Command, arg string) (*driver.ChartResult, *settings, error) {
	st, err := loadSettings(cmd, arg)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Lookup("disk-cache") != nil {
		useCache, flagErr := cmd.Flags().GetBool("disk-cache")
		if flagErr != nil {
			return nil, nil, fmt.Errorf("failed to get disk-cache flag: %w", flagErr)
		}
		if useCache {
			cache, cacheErr := driver.OpenDiskCache("knitchart")
			if cacheErr != nil {
				return nil, nil, cacheErr
			}
			st.opts.Cache = cache
		}
	}

	var res *driver.ChartResult
	if arg == "-" {
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", readErr)
		}
		res, err = driver.ChartSource(cmd.Context(), "<stdin>", content, st.opts)
	} else {
		res, err = driver.Chart(cmd.Context(), arg, st.opts)
	}
	if err != nil {
		return nil, nil, err
	}
	return res, st, nil
}

// reportDiagnostics prints the diagnostics of a failed chart to stderr and
// returns the exit error.
func reportDiagnostics(cmd *cobra.Command, st *settings, res *driver.ChartResult) error {
	errOut := cmd.ErrOrStderr()
	diagfmt.Pretty(errOut, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     st.colorFor(errOut),
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
		Hint:      patternHint,
	})
	if st.timings {
		printTimings(errOut, res.Timer, res.Cached)
	}
	return exitError{code: 1}
}

func titleFor(res *driver.ChartResult, st *settings) string {
	if st.quiet {
		return ""
	}
	return res.Path
}
