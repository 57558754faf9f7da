// Package models defines the data structures for the compatibility engine.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a caller-visible failure.
type ErrorCode string

const (
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	ErrCodeInvalidPair      ErrorCode = "INVALID_PAIR"
	ErrCodeProfilesNotFound ErrorCode = "PROFILES_NOT_FOUND"
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// Common errors
var (
	ErrInvertedAgeRange = errors.New("age_min cannot be greater than age_max")
)

// ValidationError is a caller-fixable request problem.
type ValidationError struct {
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFoundError reports ids that did not resolve to a profile.
type NotFoundError struct {
	Code       ErrorCode
	Message    string
	MissingIDs []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMissingParameterError names the absent request fields.
func NewMissingParameterError(fields ...string) *ValidationError {
	verb := "is"
	if len(fields) > 1 {
		verb = "are"
	}
	return &ValidationError{
		Code:    ErrCodeMissingParameter,
		Message: fmt.Sprintf("%s %s required", strings.Join(fields, " and "), verb),
	}
}

// NewInvalidPairError rejects comparing a user with themselves.
func NewInvalidPairError() *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidPair,
		Message: "user_id and other_user_id must be different",
	}
}

// NewProfilesNotFoundError lists the ids that could not be resolved.
func NewProfilesNotFoundError(missing ...string) *NotFoundError {
	msg := "One or both users not found"
	if len(missing) > 0 {
		msg = fmt.Sprintf("User profiles not found: %s", strings.Join(missing, ", "))
	}
	return &NotFoundError{
		Code:       ErrCodeProfilesNotFound,
		Message:    msg,
		MissingIDs: missing,
	}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFoundError reports whether err wraps a *NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
