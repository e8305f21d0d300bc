package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kolah/plugforge/internal/model"
	"github.com/pb33f/libopenapi"
	validator "github.com/pb33f/libopenapi-validator"
	"github.com/pb33f/libopenapi/datamodel"
)

var (
	ErrEmptyDocument     = errors.New("document is empty")
	ErrUnsupportedSource = errors.New("unsupported source: expected .json, .yaml or .yml")
)

// ParseError is returned for any failure between reading the raw document
// and producing a ParsedAPI. No partial result accompanies it.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse OpenAPI specification %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type Result struct {
	API      *model.ParsedAPI
	Version  string
	Format   Format
	Warnings []string
}

type Loader struct {
	client  *http.Client
	timeout time.Duration
	strict  bool
}

type Option func(*Loader)

// WithStrict validates the document against the OpenAPI schema and reports
// violations as warnings.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

func New(opts ...Option) *Loader {
	l := &Loader{
		client:  http.DefaultClient,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and parses a local document. Relative file references are
// resolved against the document's directory.
func (l *Loader) LoadFile(path string) (*Result, error) {
	if err := ValidateSourceName(path); err != nil {
		return nil, &ParseError{Source: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Source: path, Err: fmt.Errorf("reading spec file: %w", err)}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &ParseError{Source: path, Err: fmt.Errorf("resolving absolute path: %w", err)}
	}

	config := newDocumentConfiguration()
	config.BasePath = filepath.Dir(absPath)
	config.AllowFileReferences = true

	return l.load(path, data, config)
}

// LoadURL fetches a document over HTTP and resolves relative and remote
// references against its location.
func (l *Loader) LoadURL(ctx context.Context, rawURL string) (*Result, error) {
	base, err := url.Parse(rawURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, &ParseError{Source: rawURL, Err: fmt.Errorf("invalid spec URL %q", rawURL)}
	}

	data, err := l.fetch(ctx, rawURL)
	if err != nil {
		return nil, &ParseError{Source: rawURL, Err: err}
	}

	baseURL := *base
	baseURL.RawQuery = ""
	if i := strings.LastIndex(baseURL.Path, "/"); i >= 0 {
		baseURL.Path = baseURL.Path[:i]
	}

	config := newDocumentConfiguration()
	config.BaseURL = &baseURL
	config.AllowRemoteReferences = true

	return l.load(rawURL, data, config)
}

// LoadBytes parses an uploaded document. The name is used for format
// detection and error messages only; remote and file references are not
// followed.
func (l *Loader) LoadBytes(name string, data []byte) (*Result, error) {
	if err := ValidateSourceName(name); err != nil {
		return nil, &ParseError{Source: name, Err: err}
	}
	return l.load(name, data, newDocumentConfiguration())
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/yaml, */*")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spec: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching spec: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return data, nil
}

func newDocumentConfiguration() *datamodel.DocumentConfiguration {
	// Resolution failures are reported through ParseError, not libopenapi's logger.
	return &datamodel.DocumentConfiguration{
		Logger:                              slog.New(slog.DiscardHandler),
		IgnorePolymorphicCircularReferences: true,
		IgnoreArrayCircularReferences:       true,
	}
}

func (l *Loader) load(source string, data []byte, config *datamodel.DocumentConfiguration) (*Result, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &ParseError{Source: source, Err: ErrEmptyDocument}
	}

	doc, err := libopenapi.NewDocumentWithConfiguration(data, config)
	if err != nil {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("parsing OpenAPI document: %w", err)}
	}

	result := &Result{
		Version: doc.GetVersion(),
		Format:  detectFormat(source, data),
	}

	switch {
	case strings.HasPrefix(result.Version, "3."):
		v3Model, err := doc.BuildV3Model()
		if err != nil {
			return nil, &ParseError{Source: source, Err: fmt.Errorf("building OpenAPI model: %w", err)}
		}
		if v3Model == nil {
			return nil, &ParseError{Source: source, Err: errors.New("building OpenAPI model: no model produced")}
		}
		result.API = transformV3(&v3Model.Model)
	case strings.HasPrefix(result.Version, "2."):
		v2Model, err := doc.BuildV2Model()
		if err != nil {
			return nil, &ParseError{Source: source, Err: fmt.Errorf("building Swagger model: %w", err)}
		}
		if v2Model == nil {
			return nil, &ParseError{Source: source, Err: errors.New("building Swagger model: no model produced")}
		}
		result.API = transformV2(&v2Model.Model)
		result.Warnings = append(result.Warnings, "Swagger 2.0 detected; request bodies are derived from body and formData parameters")
	default:
		return nil, &ParseError{Source: source, Err: fmt.Errorf("unsupported OpenAPI version: %q", result.Version)}
	}

	if l.strict {
		result.Warnings = append(result.Warnings, validateDocument(doc)...)
	}

	return result, nil
}

func validateDocument(doc libopenapi.Document) []string {
	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		var warnings []string
		for _, err := range errs {
			warnings = append(warnings, fmt.Sprintf("validator unavailable: %v", err))
		}
		return warnings
	}

	valid, validationErrs := v.ValidateDocument()
	if valid {
		return nil
	}

	var warnings []string
	for _, e := range validationErrs {
		msg := e.Message
		if e.Reason != "" {
			msg += ": " + e.Reason
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
