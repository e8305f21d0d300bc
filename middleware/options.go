package middleware

import (
	"net/http"
)

// ErrorHandler is called when validation fails.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err *ValidationError)

// Options configures middleware behavior.
type Options struct {
	ValidateRequest bool
	ErrorHandler    ErrorHandler
}

// DefaultOptions validates requests and answers failures with a JSON body.
func DefaultOptions() *Options {
	return &Options{
		ValidateRequest: true,
	}
}
