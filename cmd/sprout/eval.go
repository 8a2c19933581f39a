package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strager/sprout"
)

const evalFileName = "<eval>"

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <code>",
		Short: "Check inline Sprout code",
		Long: `The eval command analyzes code given on the command line. A clean program
prints its typed syntax tree; otherwise its diagnostics are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := sprout.AnalyzeSource([]byte(args[0]), a.options())
			if res.OK() {
				fmt.Fprintln(cmd.OutOrStdout(), sprout.ToTypedSExpr(res.Program))
				return nil
			}
			return a.report(cmd.OutOrStdout(), []fileReport{newFileReport(evalFileName, res.Diagnostics)})
		},
	}
}
