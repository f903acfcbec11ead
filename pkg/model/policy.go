package model

// Policy is the declarative ruleset consumed by the evaluator. It is treated
// as a value: read-only during a single evaluation, replaced wholesale on
// reload. Evaluation is a pure function of (actions, environment, policy).
type Policy struct {
	// ProdLocked forces any batch targeting prod to High risk.
	ProdLocked bool `yaml:"prod_locked" json:"prod_locked"`

	// AllowedActions is the set of permitted action kinds. Anything outside
	// it marks the batch High.
	AllowedActions []string `yaml:"allowed_actions" json:"allowed_actions"`

	// HighRiskKeywords force High risk on a case-insensitive substring match
	// against an action's raw line.
	HighRiskKeywords []string `yaml:"high_risk_keywords" json:"high_risk_keywords"`

	// MedRiskHints force at least Medium risk, matched the same way.
	MedRiskHints []string `yaml:"med_risk_hints" json:"med_risk_hints"`
}

// DefaultPolicy returns the built-in ruleset used when no config is present.
func DefaultPolicy() Policy {
	return Policy{
		ProdLocked: true,
		AllowedActions: []string{
			"write", "append", "delete_file", "move", "make_dir",
		},
		HighRiskKeywords: []string{
			"drop table", "delete database", "rm -rf", "truncate",
			"kubectl delete", "terraform destroy", "shutdown", "format",
			"wipe", "vault delete", "aws s3 rm", "gcloud sql instances delete",
		},
		MedRiskHints: []string{
			"overwrite", "migrate", "secrets", "credentials", "prod", "production",
		},
	}
}

// Allows reports whether the policy permits the given action kind.
func (p Policy) Allows(kind ActionKind) bool {
	for _, a := range p.AllowedActions {
		if ActionKind(a) == kind {
			return true
		}
	}
	return false
}
