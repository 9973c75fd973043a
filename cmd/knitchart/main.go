package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"knitchart/internal/version"
)

// exitError carries a process exit code without an extra message; the
// command has already reported the problem.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// cli owns the command tree and the tracer/profiler cleanups, which must
// run even when a command fails and cobra skips the post-run hooks.
type cli struct {
	root     *cobra.Command
	cleanups []func()
}

func newCLI() *cli {
	c := &cli{}
	c.root = newRootCmd(c)
	return c
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "knitchart",
		Short: "Turn written knitting patterns into stitch charts",
		Long: `knitchart expands written knitting instructions (repeat groups such as
"*k2tog, yo* 3 times" and multiples such as "k4") into a rectangular stitch
chart, and reports mistakes with their position in the pattern file.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cleanup, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			c.cleanups = append(c.cleanups, cleanup)

			stopProfiling, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			c.cleanups = append(c.cleanups, stopProfiling)
			return nil
		},
	}

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.Int("max-tokens", 0, "maximum number of stitches a pattern may expand to (0 = knitchart.toml or built-in default)")
	flags.String("config", "", "path to knitchart.toml (default: search upwards from the pattern)")
	flags.String("trace", "", "write trace events to file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpuprofile", "", "write a CPU profile to file")
	flags.String("memprofile", "", "write a heap profile to file on exit")

	root.AddCommand(
		newChartCmd(),
		newExpandCmd(),
		newDiagCmd(),
		newStitchesCmd(),
		newInitCmd(),
		newCleanCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	os.Exit(newCLI().run(os.Args[1:]))
}

// run executes the command tree with args and maps the outcome to a process
// exit code.
func (c *cli) run(args []string) int {
	c.root.SetArgs(args)
	err := c.root.Execute()
	// в обратном порядке: профиль закрывается раньше трейса
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(c.root.ErrOrStderr(), "error: %v\n", err)
	return 1
}
