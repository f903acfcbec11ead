package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/report"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/color"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/errclass"
	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

var (
	analyzeEnv      string
	analyzeMarkdown bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [plan-file]",
	Short: "Parse a plan and assess its risk",
	Long: `Parse an agent plan and classify its risk against the loaded policy.

Reads the plan from the given file, or from stdin when no file (or "-") is
given. No filesystem mutation happens; this is the dry assessment that gates
execution.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := model.Environment(analyzeEnv)
		if !env.Valid() {
			return errclass.ErrEnvInvalid.WithMessagef("unknown environment: %s", analyzeEnv)
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

		if jsonOutput {
			return outputJSON(struct {
				Env      model.Environment `json:"env"`
				Actions  []model.Action    `json:"actions"`
				Analysis model.Analysis    `json:"analysis"`
				Approval bool              `json:"approval_required"`
			}{env, actions, analysis, client.NeedsApproval(analysis, env)})
		}

		if analyzeMarkdown {
			fmt.Print(report.Markdown(analysis, actions, env, time.Now()))
			return nil
		}

		fmt.Printf("Environment:  %s\n", env)
		fmt.Printf("Actions:      %d\n", len(actions))
		fmt.Printf("Overall risk: %s\n", color.Risk(analysis.Risk))
		if len(analysis.Reasons) > 0 {
			fmt.Println("Reasons:")
			for _, r := range analysis.Reasons {
				fmt.Printf("  - %s\n", r)
			}
		}
		if client.NeedsApproval(analysis, env) {
			fmt.Println("Approval required before execution.")
		}
		return nil
	},
}

// readPlan loads plan text from the file argument or stdin.
func readPlan(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read plan from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read plan file: %w", err)
	}
	return string(data), nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeEnv, "env", "dev", "target environment (dev|staging|prod)")
	analyzeCmd.Flags().BoolVar(&analyzeMarkdown, "markdown", false, "print a markdown risk report")
	rootCmd.AddCommand(analyzeCmd)
}
