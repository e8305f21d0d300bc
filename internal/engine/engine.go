// Package engine is the entry point collaborators use to parse documents and
// transform them. A Loader resolves the full Pipeline once and falls back to
// a Stub when the pipeline cannot be built.
package engine

import (
	"context"
	"errors"

	"github.com/ternarybob/arbor"

	"github.com/kolah/plugforge/internal/loader"
	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/platform"
)

var ErrUnavailable = errors.New("transformation features are temporarily unavailable")

type Engine interface {
	AnalyzeURL(ctx context.Context, url string) (*model.ParsedAPI, error)
	AnalyzeFile(path string) (*model.ParsedAPI, error)
	AnalyzeBytes(name string, data []byte) (*model.ParsedAPI, error)

	TransformFromURL(ctx context.Context, url, platformID string, opts platform.Options) (*model.PlatformTransformation, error)
	TransformFromFile(path, platformID string, opts platform.Options) (*model.PlatformTransformation, error)
	Transform(api *model.ParsedAPI, platformID string, opts platform.Options) (*model.PlatformTransformation, error)

	SupportedPlatforms() []string
	HasPlatformSupport(id string) bool
}

// Pipeline parses with the loader and renders with the platform registry.
type Pipeline struct {
	logger   arbor.ILogger
	loader   *loader.Loader
	registry *platform.Registry
}

func NewPipeline(logger arbor.ILogger, l *loader.Loader, registry *platform.Registry) *Pipeline {
	return &Pipeline{logger: logger, loader: l, registry: registry}
}

func (p *Pipeline) AnalyzeURL(ctx context.Context, url string) (*model.ParsedAPI, error) {
	result, err := p.loader.LoadURL(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.parsed(url, result), nil
}

func (p *Pipeline) AnalyzeFile(path string) (*model.ParsedAPI, error) {
	result, err := p.loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return p.parsed(path, result), nil
}

func (p *Pipeline) AnalyzeBytes(name string, data []byte) (*model.ParsedAPI, error) {
	result, err := p.loader.LoadBytes(name, data)
	if err != nil {
		return nil, err
	}
	return p.parsed(name, result), nil
}

func (p *Pipeline) parsed(source string, result *loader.Result) *model.ParsedAPI {
	for _, w := range result.Warnings {
		p.logger.Warn().Str("source", source).Msg(w)
	}
	p.logger.Info().
		Str("source", source).
		Str("api", result.API.Name).
		Str("version", result.Version).
		Str("format", string(result.Format)).
		Int("endpoints", len(result.API.Endpoints)).
		Msg("API parsed")
	return result.API
}

func (p *Pipeline) TransformFromURL(ctx context.Context, url, platformID string, opts platform.Options) (*model.PlatformTransformation, error) {
	if _, err := platform.ParseKind(platformID); err != nil {
		return nil, err
	}
	api, err := p.AnalyzeURL(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.Transform(api, platformID, opts)
}

func (p *Pipeline) TransformFromFile(path, platformID string, opts platform.Options) (*model.PlatformTransformation, error) {
	if _, err := platform.ParseKind(platformID); err != nil {
		return nil, err
	}
	api, err := p.AnalyzeFile(path)
	if err != nil {
		return nil, err
	}
	return p.Transform(api, platformID, opts)
}

func (p *Pipeline) Transform(api *model.ParsedAPI, platformID string, opts platform.Options) (*model.PlatformTransformation, error) {
	result, err := p.registry.Transform(platformID, api, opts)
	if err != nil {
		return nil, err
	}
	p.logger.Info().
		Str("api", api.Name).
		Str("platform", platformID).
		Int("features", len(result.Features)).
		Int("files", len(result.CodeFiles)).
		Msg("Transformation complete")
	return result, nil
}

func (p *Pipeline) SupportedPlatforms() []string {
	return p.registry.Supported()
}

func (p *Pipeline) HasPlatformSupport(id string) bool {
	_, err := p.registry.Lookup(id)
	return err == nil
}
