package engine

import (
	"context"
	"slices"

	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/platform"
)

// Stub stands in for the Pipeline when it could not be built. Analysis
// returns an empty placeholder API so callers can show a "no endpoints"
// state; every transformation fails with ErrUnavailable.
type Stub struct{}

func placeholderAPI(name string) *model.ParsedAPI {
	return &model.ParsedAPI{
		Name:           name,
		Description:    "API analysis temporarily unavailable",
		Version:        "1.0.0",
		Authentication: []model.AuthenticationMethod{},
		Endpoints:      []model.APIEndpoint{},
		Schemas:        map[string]*model.Schema{},
		Tags:           []string{},
	}
}

func (Stub) AnalyzeURL(context.Context, string) (*model.ParsedAPI, error) {
	return placeholderAPI("API from URL"), nil
}

func (Stub) AnalyzeFile(string) (*model.ParsedAPI, error) {
	return placeholderAPI("API from File"), nil
}

func (Stub) AnalyzeBytes(string, []byte) (*model.ParsedAPI, error) {
	return placeholderAPI("API from File"), nil
}

func (Stub) TransformFromURL(context.Context, string, string, platform.Options) (*model.PlatformTransformation, error) {
	return nil, ErrUnavailable
}

func (Stub) TransformFromFile(string, string, platform.Options) (*model.PlatformTransformation, error) {
	return nil, ErrUnavailable
}

func (Stub) Transform(*model.ParsedAPI, string, platform.Options) (*model.PlatformTransformation, error) {
	return nil, ErrUnavailable
}

func (Stub) SupportedPlatforms() []string {
	ids := make([]string, 0, len(platform.Kinds()))
	for _, k := range platform.Kinds() {
		ids = append(ids, string(k))
	}
	return ids
}

func (s Stub) HasPlatformSupport(id string) bool {
	return slices.Contains(s.SupportedPlatforms(), id)
}
