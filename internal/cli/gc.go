package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var gcDryRun bool

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Prune old snapshots per the retention policy",
	Long: `Prune old snapshots. The most recent snapshots of each environment are
always kept (retention.keep_min_snapshots); older ones are deleted once they
exceed retention.keep_min_age. Use --dry-run to see the plan without
deleting anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient()
		if err != nil {
			return err
		}

		collector := client.GC()
		plan, err := collector.Plan()
		if err != nil {
			return err
		}

		if gcDryRun {
			if jsonOutput {
				return outputJSON(plan)
			}
			fmt.Printf("Would delete %d snapshots, keep %d.\n", len(plan.Delete), len(plan.Keep))
			for _, info := range plan.Delete {
				fmt.Printf("  delete %s\n", info.Name)
			}
			return nil
		}

		removed, err := collector.Apply(plan)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(map[string]int{"removed": removed, "kept": len(plan.Keep)})
		}
		fmt.Printf("Removed %d snapshots, kept %d.\n", removed, len(plan.Keep))
		return nil
	},
}

func init() {
	gcCmd.Flags().BoolVar(&gcDryRun, "dry-run", false, "show the plan without deleting")
	rootCmd.AddCommand(gcCmd)
}
