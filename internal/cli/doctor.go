package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/doctor"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/color"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the sandbox directory layout",
	Long: `Check that each environment workspace exists and is writable, count
snapshots, and verify the audit log's checksums.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient()
		if err != nil {
			return err
		}

		rep := doctor.Run(client.Workspace())
		if jsonOutput {
			return outputJSON(rep)
		}
		for _, check := range rep.Checks {
			mark := color.Green("ok")
			if !check.OK {
				mark = color.Red("fail")
			}
			fmt.Printf("  [%s] %-24s %s\n", mark, check.Name, check.Detail)
		}
		if rep.Healthy {
			fmt.Println("Sandbox is healthy.")
			return nil
		}
		return fmt.Errorf("sandbox has problems")
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
