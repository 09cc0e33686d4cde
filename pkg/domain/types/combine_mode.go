package types

import "fmt"

// CombineMode selects how per-category scores are combined into an overall
// score. The risk-identification flow weights categories by their configured
// weight; the checklist flow uses an unweighted mean across sections.
type CombineMode string

const (
	// CombineWeighted combines scores weighted by each category's weight
	CombineWeighted CombineMode = "weighted"
	// CombineMean combines scores as a plain arithmetic mean
	CombineMean CombineMode = "mean"
)

// AllCombineModes returns all valid combine modes
func AllCombineModes() []CombineMode {
	return []CombineMode{CombineWeighted, CombineMean}
}

// IsValid checks if the combine mode is valid
func (m CombineMode) IsValid() bool {
	switch m {
	case CombineWeighted, CombineMean:
		return true
	default:
		return false
	}
}

// Normalize returns the mode, treating empty as CombineWeighted
func (m CombineMode) Normalize() CombineMode {
	if m == "" {
		return CombineWeighted
	}
	return m
}

// String returns the string representation of the combine mode
func (m CombineMode) String() string {
	return string(m)
}

// ParseCombineMode parses a string into a CombineMode
func ParseCombineMode(s string) (CombineMode, error) {
	mode := CombineMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid combine mode: %s", s)
	}
	return mode, nil
}
