// Package middleware validates incoming requests against an OpenAPI document
// and records the matched operation id on the request context.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	validator "github.com/pb33f/libopenapi-validator"
	validatorErrors "github.com/pb33f/libopenapi-validator/errors"
)

// Middleware validates requests against an OpenAPI document.
type Middleware struct {
	validator validator.Validator
	model     *libopenapi.DocumentModel[v3.Document]
	options   *Options
}

// New creates middleware from OpenAPI document bytes.
func New(spec []byte, opts *Options) (*Middleware, error) {
	doc, err := libopenapi.NewDocument(spec)
	if err != nil {
		return nil, err
	}

	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		return nil, errs[0]
	}

	model, err := doc.BuildV3Model()
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = DefaultOptions()
	}

	return &Middleware{
		validator: v,
		model:     model,
		options:   opts,
	}, nil
}

// Handler returns an http.Handler middleware.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.options.ValidateRequest {
			valid, errs := m.validator.ValidateHttpRequestSync(r)
			if !valid {
				m.handleValidationError(w, r, errs)
				return
			}
		}

		if op := m.findOperation(r.URL.Path, r.Method); op != nil && op.OperationId != "" {
			r = r.WithContext(WithOperation(r.Context(), op.OperationId))
		}

		next.ServeHTTP(w, r)
	})
}

// findOperation resolves the documented operation for a request. Literal
// segments win over templated ones, so /items/{id} never shadows a sibling
// such as /items/latest.
func (m *Middleware) findOperation(path, method string) *v3.Operation {
	if m.model.Model.Paths == nil || m.model.Model.Paths.PathItems == nil {
		return nil
	}

	var best *v3.Operation
	bestScore := -1
	for pattern, item := range m.model.Model.Paths.PathItems.FromOldest() {
		score, ok := matchPath(pattern, path)
		if !ok || score <= bestScore {
			continue
		}
		if op, found := item.GetOperations().Get(strings.ToLower(method)); found && op != nil {
			best, bestScore = op, score
		}
	}
	return best
}

// matchPath reports whether path fits pattern and how many segments matched
// literally.
func matchPath(pattern, path string) (int, bool) {
	want := segments(pattern)
	got := segments(path)
	if len(want) != len(got) {
		return 0, false
	}

	literal := 0
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") && len(seg) > 2 {
			if got[i] == "" {
				return 0, false
			}
			continue
		}
		if seg != got[i] {
			return 0, false
		}
		literal++
	}
	return literal, true
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func (m *Middleware) handleValidationError(w http.ResponseWriter, r *http.Request, errs []*validatorErrors.ValidationError) {
	err := &ValidationError{
		StatusCode: http.StatusBadRequest,
		Message:    "request validation failed",
		Errors:     errs,
	}

	if m.options.ErrorHandler != nil {
		m.options.ErrorHandler(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   err.Message,
		"details": err.Details(),
	})
}
