// Package policy classifies action batches against a declarative ruleset.
package policy

import (
	"fmt"
	"strings"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

// Evaluate classifies a batch of actions targeting env under the given
// policy. It is a pure function: identical inputs always yield the same risk
// and the same reasons in the same order. Reasons accumulate in discovery
// order and are neither deduplicated nor capped. A single High signal
// anywhere marks the whole batch High.
func Evaluate(actions []model.Action, env model.Environment, pol model.Policy) model.Analysis {
	var reasons []string
	high := false
	med := false

	if env == model.EnvProd && pol.ProdLocked {
		high = true
		reasons = append(reasons, "Prod environment is locked by policy.")
	}

	for _, a := range actions {
		rawLower := strings.ToLower(a.Raw)

		if !pol.Allows(a.Kind) {
			high = true
			reasons = append(reasons, fmt.Sprintf("Disallowed action: %s", a.Kind))
		}

		for _, kw := range pol.HighRiskKeywords {
			if strings.Contains(rawLower, strings.ToLower(kw)) {
				high = true
				reasons = append(reasons, fmt.Sprintf("High-risk keyword detected: '%s' in '%s'", kw, a.Raw))
			}
		}

		for _, hint := range pol.MedRiskHints {
			if strings.Contains(rawLower, strings.ToLower(hint)) {
				med = true
				reasons = append(reasons, fmt.Sprintf("Medium-risk hint: '%s' in '%s'", hint, a.Raw))
			}
		}

		if env == model.EnvProd && a.Kind == model.KindDeleteFile {
			high = true
			reasons = append(reasons, "Deleting files in prod requires explicit approval.")
		}
	}

	risk := model.RiskLow
	switch {
	case high:
		risk = model.RiskHigh
	case med:
		risk = model.RiskMedium
	}
	return model.Analysis{Risk: risk, Reasons: reasons}
}

// NeedsApproval reports whether a batch with the given analysis requires a
// human approval before execution: any Medium or High risk, and always prod.
func NeedsApproval(a model.Analysis, env model.Environment) bool {
	return a.Risk >= model.RiskMedium || env == model.EnvProd
}
