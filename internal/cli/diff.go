package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

var diffEnv string

var diffCmd = &cobra.Command{
	Use:   "diff <snapshot-name>",
	Short: "Compare the live workspace against a snapshot",
	Long: `Compare an environment's live workspace against the named snapshot and
list files that were added, removed, or modified since it was taken. The
environment is inferred from the snapshot name unless --env is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		env := model.Environment(diffEnv)
		if diffEnv == "" {
			parsed, _, err := model.ParseSnapshotName(name)
			if err != nil {
				return err
			}
			env = parsed
		}
		if !env.Valid() {
			return errclass.ErrEnvInvalid.WithMessagef("unknown environment: %s", diffEnv)
		}

		client, err := openClient()
		if err != nil {
			return err
		}

		result, err := client.Diff(env, name)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		if len(result.Changes) == 0 {
			fmt.Printf("No changes in %s since %s.\n", env, name)
			return nil
		}
		for _, ch := range result.Changes {
			fmt.Printf("%-9s %s\n", ch.Type, ch.Path)
		}
		fmt.Printf("%d changes.\n", len(result.Changes))
		return nil
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffEnv, "env", "", "target environment (default: inferred from snapshot name)")
	rootCmd.AddCommand(diffCmd)
}
