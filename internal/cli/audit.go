package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the append-only audit log",
}

var auditLastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the most recent audit record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient()
		if err != nil {
			return err
		}
		record, ok := client.LastAudit()
		if !ok {
			fmt.Println("No audit records.")
			return nil
		}
		if jsonOutput {
			return outputJSON(record)
		}
		fmt.Printf("ts:       %s\n", record.Timestamp.Format("2006-01-02T15:04:05Z"))
		fmt.Printf("env:      %s\n", record.Env)
		fmt.Printf("task:     %s\n", record.Task)
		fmt.Printf("risk:     %s\n", record.Risk)
		fmt.Printf("approved: %v (%s)\n", record.Approved, record.ApproverNote)
		fmt.Printf("snapshot: %s\n", record.PreSnapshot)
		for _, r := range record.Results {
			status := "ok"
			if !r.OK {
				status = "fail"
			}
			fmt.Printf("  [%s] %s -> %s\n", status, r.Action, r.Message)
		}
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Recompute every audit line's checksum",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openClient()
		if err != nil {
			return err
		}
		count, err := client.VerifyAudit()
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(map[string]int{"verified": count})
		}
		fmt.Printf("Verified %d audit records.\n", count)
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditLastCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	rootCmd.AddCommand(auditCmd)
}
