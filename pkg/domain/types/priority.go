package types

import "fmt"

// Priority represents the importance label of a checklist question. Each
// label maps to a fixed numeric weight used when a question does not carry
// an explicit weight of its own.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// AllPriorities returns all valid priorities, ordered from most to least
// important
func AllPriorities() []Priority {
	return []Priority{
		PriorityCritical,
		PriorityHigh,
		PriorityMedium,
		PriorityLow,
	}
}

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityCritical,
		PriorityHigh,
		PriorityMedium,
		PriorityLow:
		return true
	default:
		return false
	}
}

// Weight returns the fixed scoring weight for the priority label.
// The mapping is process-wide constant configuration.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 0.5
	default:
		return 1
	}
}

// Rank returns the sort rank of the priority, lower is more important
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// String returns the string representation of the priority
func (p Priority) String() string {
	return string(p)
}

// ParsePriority parses a string into a Priority
func ParsePriority(s string) (Priority, error) {
	priority := Priority(s)
	if !priority.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return priority, nil
}
