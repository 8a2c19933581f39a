package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strager/sprout"
)

func newASTCmd(a *app) *cobra.Command {
	var typed bool
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a Sprout file as an s-expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.analyzeFile(args[0])
			if err != nil {
				return err
			}
			if typed {
				fmt.Fprintln(cmd.OutOrStdout(), sprout.ToTypedSExpr(res.Program))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), sprout.ToSExpr(res.Program))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&typed, "typed", false, "annotate nodes with their resolved types")
	return cmd
}
