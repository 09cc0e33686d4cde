package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+([.-][a-z0-9]+)*$`)

// QuestionnaireID represents a unique identifier for a questionnaire
type QuestionnaireID string

// Validate checks if the QuestionnaireID is valid
func (q QuestionnaireID) Validate() error {
	if q == "" {
		return goerr.New("questionnaire ID cannot be empty")
	}
	if !idPattern.MatchString(string(q)) {
		return goerr.New("questionnaire ID must be lowercase alphanumeric with hyphens", goerr.V("id", q))
	}
	return nil
}

// String returns the string representation of QuestionnaireID
func (q QuestionnaireID) String() string {
	return string(q)
}

// CategoryID represents a unique identifier for a question category
type CategoryID string

// Validate checks if the CategoryID is valid
func (c CategoryID) Validate() error {
	if c == "" {
		return goerr.New("category ID cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("category ID must be lowercase alphanumeric with hyphens", goerr.V("id", c))
	}
	return nil
}

// String returns the string representation of CategoryID
func (c CategoryID) String() string {
	return string(c)
}

// QuestionID represents a unique identifier for a question within a category
type QuestionID string

// Validate checks if the QuestionID is valid
func (q QuestionID) Validate() error {
	if q == "" {
		return goerr.New("question ID cannot be empty")
	}
	if !idPattern.MatchString(string(q)) {
		return goerr.New("question ID must be lowercase alphanumeric with hyphens or dots", goerr.V("id", q))
	}
	return nil
}

// String returns the string representation of QuestionID
func (q QuestionID) String() string {
	return string(q)
}

// SessionID represents a unique identifier for an assessment session
type SessionID string

// Validate checks if the SessionID is valid
func (s SessionID) Validate() error {
	if s == "" {
		return goerr.New("session ID cannot be empty")
	}
	return nil
}

// String returns the string representation of SessionID
func (s SessionID) String() string {
	return string(s)
}
