package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

var seedEnv string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate a workspace with demo files",
	Long: `Populate an environment's workspace with a small set of demo files for
trying out plans. Files that already exist are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env := model.Environment(seedEnv)
		if !env.Valid() {
			return errclass.ErrEnvInvalid.WithMessagef("unknown environment: %s", seedEnv)
		}

		client, err := openClient()
		if err != nil {
			return err
		}
		created, err := client.Seed(env)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]any{"env": env, "created": created})
		}
		if len(created) == 0 {
			fmt.Println("Workspace already seeded.")
			return nil
		}
		for _, rel := range created {
			fmt.Printf("  + %s\n", rel)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedEnv, "env", "dev", "target environment (dev|staging|prod)")
	rootCmd.AddCommand(seedCmd)
}
