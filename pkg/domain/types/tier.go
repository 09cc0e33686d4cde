package types

// Tier represents the discrete classification bucket derived from a
// readiness score. The thresholds are fixed at 80 and 60: a score of 80 or
// above is TierLow, 60 to just below 80 is TierMedium, anything below 60 is
// TierHigh. Display labels differ per consuming context while the tier
// structure stays the same.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// AllTiers returns all valid tiers
func AllTiers() []Tier {
	return []Tier{TierLow, TierMedium, TierHigh}
}

// IsValid checks if the tier is valid
func (t Tier) IsValid() bool {
	switch t {
	case TierLow, TierMedium, TierHigh:
		return true
	default:
		return false
	}
}

// RiskLabel returns the risk-identification display label of the tier
func (t Tier) RiskLabel() string {
	switch t {
	case TierLow:
		return "Low"
	case TierMedium:
		return "Medium"
	default:
		return "High"
	}
}

// ChecklistLabel returns the pass/review/fail display label used for
// checklist section scores
func (t Tier) ChecklistLabel() string {
	switch t {
	case TierLow:
		return "Pass"
	case TierMedium:
		return "Review"
	default:
		return "Fail"
	}
}

// ReadinessLabel returns the production-readiness display label used for
// the overall checklist result
func (t Tier) ReadinessLabel() string {
	switch t {
	case TierLow:
		return "Ready for Production"
	case TierMedium:
		return "Needs Improvement"
	default:
		return "Not Ready"
	}
}

// String returns the string representation of the tier
func (t Tier) String() string {
	return string(t)
}
