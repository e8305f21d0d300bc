package middleware

import (
	"github.com/pb33f/libopenapi-validator/errors"
)

// ValidationError wraps libopenapi-validator errors with HTTP semantics.
type ValidationError struct {
	StatusCode int
	Message    string
	Errors     []*errors.ValidationError
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Detail is the client facing form of a single validation failure.
type Detail struct {
	Message  string `json:"message"`
	Reason   string `json:"reason,omitempty"`
	HowToFix string `json:"howToFix,omitempty"`
}

func (e *ValidationError) Details() []Detail {
	details := make([]Detail, 0, len(e.Errors))
	for _, ve := range e.Errors {
		details = append(details, Detail{
			Message:  ve.Message,
			Reason:   ve.Reason,
			HowToFix: ve.HowToFix,
		})
	}
	return details
}
