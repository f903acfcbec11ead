package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/config"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage the sandbox configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(baseDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (showing defaults)\n", err)
		}
		if jsonOutput {
			return outputJSON(cfg)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config.yaml with the default policy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(baseDir, config.FileName)
		if _, err := os.Stat(path); err == nil {
			return errclass.ErrConfigInvalid.WithMessagef("config already exists: %s", path)
		}
		if err := config.Save(baseDir, config.Default()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
