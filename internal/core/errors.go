package core

// errors.go defines the error taxonomy for generation and export.
//
// # Error Codes Reference
//
// Every failure is classified into a stable code that is written to the log
// next to the technical error. Clients only ever see the generic response for
// the endpoint; the code lets an operator find the cause from a request ID.
//
// # Request Errors (GEN001-GEN099)
//
//	GEN001 - Missing parameter: region, errors, seed or page was not supplied
//	GEN002 - Invalid region: region is not one of de, pl, uz
//	GEN003 - Invalid intensity: errors is not a finite number in range
//	GEN004 - Invalid page: page is not an integer >= 1
//	GEN005 - Busy: no generation slot became free in time
//	GEN006 - Generation failed: record source or cache failure
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Export failed: the body could not be decoded or encoded
//
// # Request Lifecycle (REQ001-REQ099)
//
//	REQ001 - Request cancelled: the client went away
//	REQ002 - Request timeout: the request deadline passed
//
// # Default Error (ERR000)
//
// Fallback when no sentinel matches. Check the log for the wrapped error.

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter is returned when a required request parameter is absent.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrInvalidRegion is returned for a region code outside de, pl, uz.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidIntensity is returned for a negative, non-finite or out-of-range error rate.
	ErrInvalidIntensity = errors.New("invalid error intensity")

	// ErrInvalidPage is returned for a page number below 1.
	ErrInvalidPage = errors.New("invalid page")

	// ErrBusy is returned when all generation slots stay occupied for the
	// limiter's wait time. Clients should retry after a short delay.
	ErrBusy = errors.New("too many concurrent requests, please try again later")

	// ErrGeneration wraps failures of the record source or cache.
	ErrGeneration = errors.New("generation failed")

	// ErrExport wraps decode and encode failures during export.
	ErrExport = errors.New("export failed")
)

// UserMessage provides a short description of a failure with a support code.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Stable code for log correlation
}

// errorClass maps a sentinel to its message.
type errorClass struct {
	target error
	msg    UserMessage
}

// errorClasses is checked in order with errors.Is; the first match wins.
var errorClasses = []errorClass{
	{ErrMissingParameter, UserMessage{
		Message: "A required parameter is missing",
		Action:  "Provide region, errors, seed and page",
		Code:    "GEN001",
	}},
	{ErrInvalidRegion, UserMessage{
		Message: "Unknown region",
		Action:  "Use one of de, pl, uz",
		Code:    "GEN002",
	}},
	{ErrInvalidIntensity, UserMessage{
		Message: "Invalid error rate",
		Action:  "Use a number between 0 and 1000",
		Code:    "GEN003",
	}},
	{ErrInvalidPage, UserMessage{
		Message: "Invalid page number",
		Action:  "Use a whole number starting at 1",
		Code:    "GEN004",
	}},
	{ErrBusy, UserMessage{
		Message: "The server is busy",
		Action:  "Please wait a moment and try again",
		Code:    "GEN005",
	}},
	{ErrGeneration, UserMessage{
		Message: "Records could not be generated",
		Action:  "Please try again",
		Code:    "GEN006",
	}},
	{ErrExport, UserMessage{
		Message: "The export could not be produced",
		Action:  "Check that the request body is a JSON object with a data array",
		Code:    "EXP001",
	}},
	{context.Canceled, UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "REQ001",
	}},
	{context.DeadlineExceeded, UserMessage{
		Message: "Request timed out",
		Action:  "Please try again",
		Code:    "REQ002",
	}},
}

// defaultMessage is returned when no sentinel matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to its UserMessage. A nil error yields the zero value.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c.msg
		}
	}
	return defaultMessage
}

// Classify returns the stable code for err, or "" for nil.
func Classify(err error) string {
	return MapError(err).Code
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsClientError reports whether err was caused by the request itself rather
// than by the server.
func IsClientError(err error) bool {
	switch Classify(err) {
	case "GEN001", "GEN002", "GEN003", "GEN004", "EXP001":
		return true
	}
	return false
}
