package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/strager/sprout"
	"github.com/strager/sprout/config"
)

// errDiagnostics makes the process exit with status 1 after the diagnostics
// have already been printed.
var errDiagnostics = errors.New("diagnostics reported")

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	envFile    string
	verbose    bool
	noColor    bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "sprout",
		Short: "Sprout is a checker for the Sprout scripting language",
		Long: `Sprout parses Sprout programs, resolves their types and reports every
syntax, type and scope fault it finds.

Examples:
    sprout check examples/totals.sprout
    sprout check --format json a.sprout b.sprout
    sprout ast --typed examples/totals.sprout
    sprout eval 'Number x : 1 + 2'`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a TOML or YAML config file")
	flags.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "dotenv file with SPROUT_* overrides")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log each analysis phase")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newCheckCmd(a), newASTCmd(a), newEvalCmd(a))
	return root
}

// setup loads configuration and builds the logger. Every run is tagged with
// a fresh id so log lines from one invocation can be grouped.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.noColor {
		cfg.Output.Color = false
	}
	a.cfg = cfg

	level, err := cfg.Output.Level()
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	a.log = slog.New(handler).With("run", uuid.NewString())
	a.log.Debug("config loaded", "path", a.configPath, "block_scopes", cfg.Analysis.BlockScopes,
		"allow_function_redeclaration", cfg.Analysis.AllowFunctionRedeclaration)
	return nil
}

func (a *app) options() sprout.Options {
	return a.cfg.Options(a.log)
}

// analyzeFile reads and analyzes one source file.
func (a *app) analyzeFile(path string) (*sprout.Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	a.log.Debug("analyzing", "file", path, "bytes", len(src))
	return sprout.AnalyzeSource(src, a.options()), nil
}
