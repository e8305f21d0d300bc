// Package platform renders a parsed API and a confirmed feature selection
// into a plugin bundle for one of the supported host platforms.
package platform

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/naming"
	"github.com/kolah/plugforge/internal/templates"
	embeddedtmpl "github.com/kolah/plugforge/templates"
)

// Kind identifies a target platform.
type Kind string

const (
	Figma     Kind = "figma"
	WordPress Kind = "wordpress"
	Shopify   Kind = "shopify"
)

var ErrPlatformNotSupported = errors.New("platform not supported")

// Kinds returns the supported platforms in a fixed order.
func Kinds() []Kind {
	return []Kind{Figma, WordPress, Shopify}
}

// ParseKind maps a platform id onto a Kind.
func ParseKind(id string) (Kind, error) {
	k := Kind(id)
	if !slices.Contains(Kinds(), k) {
		return "", fmt.Errorf("%w: %q", ErrPlatformNotSupported, id)
	}
	return k, nil
}

// Options carries the session context of a transformation. When
// SelectedFeatures is nil the transformer derives its features from the
// parse-time endpoint categories instead.
type Options struct {
	SelectedFeatures []string
	Intelligence     *intelligence.Intelligence
	// WordPress is only consulted by the WordPress transformer.
	WordPress *intelligence.WordPressIntelligence
}

func (o Options) selected(id string) bool {
	return slices.Contains(o.SelectedFeatures, id)
}

func (o Options) hasSession() bool {
	return o.SelectedFeatures != nil && o.Intelligence != nil
}

type Transformer interface {
	Kind() Kind
	Transform(api *model.ParsedAPI, opts Options) (*model.PlatformTransformation, error)
}

// Registry resolves platform ids to transformers.
type Registry struct {
	transformers map[Kind]Transformer
}

func NewRegistry(engine templates.Engine) *Registry {
	r := &Registry{transformers: make(map[Kind]Transformer)}
	for _, t := range []Transformer{
		&FigmaTransformer{engine: engine},
		&WordPressTransformer{engine: engine},
		&ShopifyTransformer{engine: engine},
	} {
		r.transformers[t.Kind()] = t
	}
	return r
}

// NewTemplateEngine loads the embedded bundle templates. Templates found in
// customDir replace the embedded ones of the same name.
func NewTemplateEngine(customDir string) (*templates.TextTemplateEngine, error) {
	engine, err := templates.NewEngine(embeddedtmpl.FS, customDir, naming.TemplateFuncs())
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}
	return engine, nil
}

func (r *Registry) Lookup(id string) (Transformer, error) {
	kind, err := ParseKind(id)
	if err != nil {
		return nil, err
	}
	t, ok := r.transformers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlatformNotSupported, id)
	}
	return t, nil
}

// Transform looks up the transformer for id and runs it.
func (r *Registry) Transform(id string, api *model.ParsedAPI, opts Options) (*model.PlatformTransformation, error) {
	t, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	result, err := t.Transform(api, opts)
	if err != nil {
		return nil, fmt.Errorf("transforming for %s: %w", id, err)
	}
	return result, nil
}

// Supported returns the ids of all registered platforms.
func (r *Registry) Supported() []string {
	var ids []string
	for _, k := range Kinds() {
		if _, ok := r.transformers[k]; ok {
			ids = append(ids, string(k))
		}
	}
	return ids
}
