// Package plan parses agent plan text into structured actions.
package plan

import (
	"strings"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// Parse turns raw multi-line plan text into an ordered action sequence.
//
// The grammar is line-oriented: blank lines and lines starting with '#' are
// skipped. A line containing '|' is split once at the first delimiter; the
// left side is whitespace-split into kind plus leading args, and the trimmed
// right side becomes one trailing payload argument. Any other line is
// whitespace-split with the first token as kind.
//
// The parser is tolerant: it never rejects a line. Argument-count validation
// is deferred to execution, where a malformed action becomes a per-action
// failure instead of aborting the batch.
func Parse(text string) []model.Action {
	var actions []model.Action
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var kind string
		var args []string
		if idx := strings.Index(line, "|"); idx >= 0 {
			left := strings.TrimSpace(line[:idx])
			payload := strings.TrimSpace(line[idx+1:])
			parts := strings.Fields(left)
			if len(parts) > 0 {
				kind = parts[0]
				args = append(args, parts[1:]...)
			}
			args = append(args, payload)
		} else {
			parts := strings.Fields(line)
			kind = parts[0]
			args = parts[1:]
		}

		actions = append(actions, model.Action{
			Kind: model.ActionKind(kind),
			Args: args,
			Raw:  line,
		})
	}
	return actions
}
