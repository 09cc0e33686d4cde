package types

import "fmt"

// AnswerStatus represents the compliance status recorded for a single question
type AnswerStatus string

const (
	AnswerFullyCompliant AnswerStatus = "compliant"
	AnswerPartial        AnswerStatus = "partial"
	AnswerNonCompliant   AnswerStatus = "non_compliant"
	AnswerNotAssessed    AnswerStatus = "not_assessed"
	AnswerNotApplicable  AnswerStatus = "not_applicable"
)

// AllAnswerStatuses returns all valid answer statuses
func AllAnswerStatuses() []AnswerStatus {
	return []AnswerStatus{
		AnswerFullyCompliant,
		AnswerPartial,
		AnswerNonCompliant,
		AnswerNotAssessed,
		AnswerNotApplicable,
	}
}

// IsValid checks if the answer status is valid
func (s AnswerStatus) IsValid() bool {
	switch s {
	case AnswerFullyCompliant,
		AnswerPartial,
		AnswerNonCompliant,
		AnswerNotAssessed,
		AnswerNotApplicable:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as AnswerNotAssessed so that
// questions without a recorded answer count with full weight and zero credit.
func (s AnswerStatus) Normalize() AnswerStatus {
	if s == "" {
		return AnswerNotAssessed
	}
	return s
}

// Credit returns the scoring credit ratio for the status and whether the
// status is applicable. Not-applicable answers are excluded from both the
// earned credit and the total weight of a category.
func (s AnswerStatus) Credit() (ratio float64, applicable bool) {
	switch s {
	case AnswerFullyCompliant:
		return 1.0, true
	case AnswerPartial:
		return 0.5, true
	case AnswerNotApplicable:
		return 0, false
	default:
		return 0, true
	}
}

// String returns the string representation of the answer status
func (s AnswerStatus) String() string {
	return string(s)
}

// ParseAnswerStatus parses a string into an AnswerStatus
func ParseAnswerStatus(s string) (AnswerStatus, error) {
	status := AnswerStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid answer status: %s", s)
	}
	return status, nil
}
