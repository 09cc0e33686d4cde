package types

import "fmt"

// PolicyStatus represents the development status of a governance policy or
// procedure
type PolicyStatus string

const (
	PolicyNotStarted    PolicyStatus = "not_started"
	PolicyInDevelopment PolicyStatus = "in_development"
	PolicyUnderReview   PolicyStatus = "under_review"
	PolicyApproved      PolicyStatus = "approved"
	PolicyNotApplicable PolicyStatus = "not_applicable"
)

// AllPolicyStatuses returns all valid policy statuses
func AllPolicyStatuses() []PolicyStatus {
	return []PolicyStatus{
		PolicyNotStarted,
		PolicyInDevelopment,
		PolicyUnderReview,
		PolicyApproved,
		PolicyNotApplicable,
	}
}

// IsValid checks if the policy status is valid
func (s PolicyStatus) IsValid() bool {
	switch s {
	case PolicyNotStarted,
		PolicyInDevelopment,
		PolicyUnderReview,
		PolicyApproved,
		PolicyNotApplicable:
		return true
	default:
		return false
	}
}

// Defined reports whether the status counts toward the "defined" summary
// figures. Not-started and not-applicable policies are excluded.
func (s PolicyStatus) Defined() bool {
	switch s {
	case PolicyInDevelopment, PolicyUnderReview, PolicyApproved:
		return true
	default:
		return false
	}
}

// String returns the string representation of the policy status
func (s PolicyStatus) String() string {
	return string(s)
}

// ParsePolicyStatus parses a string into a PolicyStatus
func ParsePolicyStatus(s string) (PolicyStatus, error) {
	status := PolicyStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid policy status: %s", s)
	}
	return status, nil
}
