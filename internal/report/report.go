// Package report renders risk analyses for export.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// Markdown renders a risk analysis report for a planned batch.
func Markdown(analysis model.Analysis, actions []model.Action, env model.Environment, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# Risk Analysis Report\n\n")
	fmt.Fprintf(&b, "**Environment:** %s\n", env)
	fmt.Fprintf(&b, "**Overall Risk Level:** %s\n", analysis.Risk)
	fmt.Fprintf(&b, "**Generated:** %s UTC\n\n", generatedAt.UTC().Format("2006-01-02 15:04:05"))

	b.WriteString("## Risk Assessment\n\n")
	if len(analysis.Reasons) > 0 {
		b.WriteString("**Risk Factors:**\n")
		for _, reason := range analysis.Reasons {
			fmt.Fprintf(&b, "- %s\n", reason)
		}
	} else {
		b.WriteString("No specific risk factors identified.\n")
	}

	fmt.Fprintf(&b, "\n## Planned Actions (%d total)\n\n", len(actions))
	for i, action := range actions {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, action.Raw)
	}

	return b.String()
}
