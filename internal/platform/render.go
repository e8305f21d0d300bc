package platform

import (
	"fmt"

	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/naming"
	"github.com/kolah/plugforge/internal/templates"
)

// bundleData is the data passed to every bundle template. Feature, Fields
// and Actions are only set for per-feature files.
type bundleData struct {
	API      *apiData
	Features []model.PlatformFeature

	Feature     model.PlatformFeature
	FeatureSlug string
	IsSettings  bool
	Fields      []model.FormField
	Actions     []model.ComponentAction

	// Figma
	Runner           []endpointData
	ApplyToSelection bool

	// Shopify
	Scopes   []string
	EnvKey   string
	Webhooks []model.PlatformFeature

	// WordPress
	Pages []pageData
}

func (d bundleData) forFeature(f model.PlatformFeature) bundleData {
	d.Feature = f
	d.FeatureSlug = naming.KebabCase(f.Name)
	d.IsSettings = f.Name == SettingsFeatureName
	d.Fields = formFields(f)
	d.Actions = formActions(f)
	return d
}

type file struct {
	path     string
	template string
	fileType model.FileType
	language string
	data     any
}

func render(engine templates.Engine, files []file) ([]model.CodeFile, error) {
	result := make([]model.CodeFile, 0, len(files))
	for _, f := range files {
		content, err := engine.Execute(f.template, f.data)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", f.path, err)
		}
		result = append(result, model.CodeFile{
			Path:     f.path,
			Content:  content,
			Type:     f.fileType,
			Language: f.language,
		})
	}
	return result, nil
}
