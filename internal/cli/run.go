package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/color"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/sandbox"
)

var (
	runEnv     string
	runTask    string
	runApprove bool
	runNote    string
)

var runCmd = &cobra.Command{
	Use:   "run [plan-file]",
	Short: "Execute a plan inside the sandbox",
	Long: `Execute an agent plan inside the confined workspace of an environment.

The plan is parsed and risk-assessed first. Medium and High risk batches, and
any batch targeting prod, require --approve (with an optional --note that is
recorded in the audit log). A snapshot of the workspace is taken before the
first action; all per-action outcomes, including failures, are appended to
the audit log as one record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := model.Environment(runEnv)
		if !env.Valid() {
			return errclass.ErrEnvInvalid.WithMessagef("unknown environment: %s", runEnv)
		}

		text, err := readPlan(args)
		if err != nil {
			return err
		}

		client, err := openClient()
		if err != nil {
			return err
		}

		actions := client.Parse(text)
		if len(actions) == 0 {
			return errclass.ErrPlanEmpty.WithMessage("plan has no actions")
		}
		analysis := client.Evaluate(actions, env)
		required := client.NeedsApproval(analysis, env)

		result, err := client.Run(sandbox.RunOptions{
			Env:      env,
			Task:     runTask,
			Actions:  actions,
			Analysis: analysis,
			Approval: model.ApprovalDecision{
				Required: required,
				Granted:  runApprove,
				Note:     runNote,
			},
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result.Record)
		}

		fmt.Printf("Risk: %s  Snapshot: %s\n", color.Risk(analysis.Risk), result.Snapshot.Name)
		for _, r := range result.Record.Results {
			mark := color.Green("ok")
			if !r.OK {
				mark = color.Red("fail")
			}
			fmt.Printf("  [%s] %s -> %s\n", mark, r.Action, r.Message)
		}
		if result.AllOK {
			fmt.Println("Plan executed in sandbox.")
		} else {
			fmt.Printf("Some actions failed. Rollback with: sandbox restore %s --env %s\n",
				result.Snapshot.Name, env)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runEnv, "env", "dev", "target environment (dev|staging|prod)")
	runCmd.Flags().StringVar(&runTask, "task", "", "task description (recorded in the audit log)")
	runCmd.Flags().BoolVar(&runApprove, "approve", false, "grant approval for Medium/High risk batches")
	runCmd.Flags().StringVar(&runNote, "note", "", "approver note / intent (recorded in the audit log)")
	rootCmd.AddCommand(runCmd)
}
