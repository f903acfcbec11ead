// Package cli implements the sandbox command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/color"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/config"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/logging"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/sandbox"
)

var (
	jsonOutput  bool
	noColor     bool
	baseDir     string
	rootCmd     = &cobra.Command{
		Use:   "sandbox",
		Short: "AI Safety Sandbox - policy-gated execution of agent plans",
		Long: `sandbox stages filesystem-mutating actions produced by an automated
agent, assesses their risk against a declarative policy, requires approval
above a threshold, and executes them only inside a confined per-environment
workspace. Every batch is preceded by a snapshot and recorded in an
append-only, checksum-verified audit log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Init(noColor)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", ".", "sandbox base directory")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// openClient builds a sandbox client for the configured base directory.
// A malformed config file degrades to defaults with a warning.
func openClient() (*sandbox.Client, error) {
	client, err := sandbox.Open(baseDir)
	if err != nil {
		if errors.Is(err, errclass.ErrConfigInvalid) && client != nil {
			logging.Warn("config invalid, using defaults", map[string]any{"error": err.Error()})
			return client, nil
		}
		return nil, err
	}
	applyLogLevel()
	return client, nil
}

func applyLogLevel() {
	cfg, err := config.Load(baseDir)
	if err != nil {
		return
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
		logging.SetGlobal(logging.NewLogger(logging.Level(cfg.Logging.Level)))
	}
}

// outputJSON prints v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
