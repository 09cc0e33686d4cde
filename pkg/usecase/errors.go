package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrSessionNotFound       = errors.New("session not found")
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")

	// Input errors
	ErrUnknownQuestion       = errors.New("unknown question")
	ErrInvalidAnswerStatus   = errors.New("invalid answer status")
	ErrInvalidPolicyStatus   = errors.New("invalid policy status")
	ErrMissingSystemName     = errors.New("system name is required")
	ErrMissingGovernancePlan = errors.New("governance plan is required")
)

// Context keys for error values
const (
	SessionIDKey  = "session_id"
	QuestionIDKey = "question_id"
)
