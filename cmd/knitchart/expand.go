package main

import (
	"github.com/spf13/cobra"

	"knitchart/internal/chartfmt"
)

func newExpandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <file|->",
		Short: "Print the pattern with repeats and multiples written out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, st, err := chartArg(cmd, args[0])
			if err != nil {
				return err
			}
			if !res.OK() {
				return reportDiagnostics(cmd, st, res)
			}
			if err := chartfmt.Expanded(cmd.OutOrStdout(), res.Rows); err != nil {
				return err
			}
			if st.timings {
				printTimings(cmd.ErrOrStderr(), res.Timer, res.Cached)
			}
			return nil
		},
	}
}
