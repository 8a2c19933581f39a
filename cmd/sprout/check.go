package main

import (
	"github.com/spf13/cobra"
	"github.com/strager/sprout/config"
)

func newCheckCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check <file...>",
		Short: "Parse and type-check Sprout files",
		Long: `The check command analyzes one or more files and prints every diagnostic.
It exits with status 1 if any file has a diagnostic.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				f, err := config.ParseFormat(format)
				if err != nil {
					return err
				}
				a.cfg.Output.Format = f
			}

			var reports []fileReport
			for _, path := range args {
				res, err := a.analyzeFile(path)
				if err != nil {
					return err
				}
				reports = append(reports, newFileReport(path, res.Diagnostics))
			}
			return a.report(cmd.OutOrStdout(), reports)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: text, json or yaml (default from config)")
	return cmd
}
