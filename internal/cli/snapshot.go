package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

var snapshotEnv string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take an ad-hoc snapshot of an environment's workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env := model.Environment(snapshotEnv)
		if !env.Valid() {
			return errclass.ErrEnvInvalid.WithMessagef("unknown environment: %s", snapshotEnv)
		}

		client, err := openClient()
		if err != nil {
			return err
		}
		info, err := client.Snapshot(env)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(info)
		}
		fmt.Printf("Created snapshot %s\n", info.Name)
		return nil
	},
}

var snapshotsEnv string

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env := model.Environment(snapshotsEnv)
		if snapshotsEnv != "" && !env.Valid() {
			return errclass.ErrEnvInvalid.WithMessagef("unknown environment: %s", snapshotsEnv)
		}

		client, err := openClient()
		if err != nil {
			return err
		}
		infos, err := client.Snapshots(env)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(infos)
		}
		if len(infos) == 0 {
			fmt.Println("No snapshots yet. Execute a plan to create one automatically.")
			return nil
		}
		for _, info := range infos {
			fmt.Println(info.Name)
		}
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotEnv, "env", "dev", "target environment (dev|staging|prod)")
	snapshotsCmd.Flags().StringVar(&snapshotsEnv, "env", "", "filter by environment")
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(snapshotsCmd)
}
