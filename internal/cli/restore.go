package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

var restoreEnv string

var restoreCmd = &cobra.Command{
	Use:   "restore <snapshot-name>",
	Short: "Roll an environment's workspace back to a snapshot",
	Long: `Roll an environment's workspace back to a prior snapshot.

The live workspace is wiped entirely and replaced by the snapshot's tree.
The snapshot name encodes its environment; --env must match when given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		env := model.Environment(restoreEnv)
		if restoreEnv == "" {
			parsed, _, err := model.ParseSnapshotName(name)
			if err != nil {
				return errclass.ErrSnapshotNotFound.WithMessagef("%v", err)
			}
			env = parsed
		} else if !env.Valid() {
			return errclass.ErrEnvInvalid.WithMessagef("unknown environment: %s", restoreEnv)
		}

		client, err := openClient()
		if err != nil {
			return err
		}
		if err := client.Restore(env, name); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]string{"env": env.String(), "restored": name})
		}
		fmt.Printf("Restored snapshot: %s\n", name)
		return nil
	},
}

func init() {
	restoreCmd.Flags().StringVar(&restoreEnv, "env", "", "environment (inferred from snapshot name when omitted)")
	rootCmd.AddCommand(restoreCmd)
}
