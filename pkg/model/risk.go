package model

import (
	"encoding/json"
	"fmt"
)

// RiskLevel is the ordered batch risk classification. High dominates: any
// single High signal anywhere in a batch marks the entire batch High.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

// String returns the display form used in audit records and CLI output.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// ParseRiskLevel converts a display string back into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "Low":
		return RiskLow, nil
	case "Medium":
		return RiskMedium, nil
	case "High":
		return RiskHigh, nil
	}
	return RiskLow, fmt.Errorf("unknown risk level: %q", s)
}

// MarshalJSON serializes the risk level as its display string.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON parses the display string form.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// Analysis is the output of policy evaluation for one batch. Reasons are in
// discovery order, not deduplicated and not capped.
type Analysis struct {
	Risk    RiskLevel `json:"risk"`
	Reasons []string  `json:"reasons"`
}
