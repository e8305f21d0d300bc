// Package intelligence classifies parsed API endpoints into functional
// categories and proposes plugin features from the result.
package intelligence

import (
	"math"
	"sort"
	"strings"

	"github.com/kolah/plugforge/internal/model"
)

const (
	CategoryImageProcessing    = "Image Processing"
	CategoryTranslation        = "Translation"
	CategoryAuthentication     = "Authentication"
	CategoryDocumentProcessing = "Document Processing"
	CategoryUserManagement     = "User Management"
	CategoryAIML               = "AI/ML Processing"
	CategoryGeneral            = "General API"
)

// confidence reported when nothing could be categorized
const fallbackConfidence = 0.3

type keywordRule struct {
	category string
	keywords []string
}

// Rules are evaluated in order and the first match wins, so an endpoint such
// as /translate-image lands in Image Processing.
var keywordRules = []keywordRule{
	{CategoryImageProcessing, []string{"upscal", "enhance", "resize", "image", "photo", "picture"}},
	{CategoryTranslation, []string{"translat", "language", "locale", "detect"}},
	{CategoryAuthentication, []string{"auth", "login", "token", "key", "credential"}},
	{CategoryDocumentProcessing, []string{"document", "pdf", "file", "convert", "parse"}},
	{CategoryUserManagement, []string{"user", "account", "profile", "manage"}},
	{CategoryAIML, []string{"ai", "ml", "predict", "classify", "analyze"}},
}

var basePriority = map[string]float64{
	CategoryImageProcessing:    9,
	CategoryTranslation:        8,
	CategoryAIML:               7,
	CategoryDocumentProcessing: 6,
	CategoryUserManagement:     5,
	CategoryAuthentication:     4,
	CategoryGeneral:            3,
}

var categoryDescriptions = map[string]string{
	CategoryImageProcessing:    "Endpoints for image enhancement, processing, and manipulation",
	CategoryTranslation:        "Language translation and localization services",
	CategoryAuthentication:     "User authentication and authorization endpoints",
	CategoryDocumentProcessing: "Document conversion and processing capabilities",
	CategoryUserManagement:     "User account and profile management",
	CategoryAIML:               "AI-powered analysis and processing services",
	CategoryGeneral:            "General purpose API endpoints",
}

// purposes maps a primary category to the purpose phrase shown to the user.
// General API is resolved against the API name.
var purposes = map[string]string{
	CategoryImageProcessing:    "Image Enhancement and Processing API",
	CategoryTranslation:        "Language Translation Service",
	CategoryAuthentication:     "Authentication and Authorization Service",
	CategoryDocumentProcessing: "Document Processing and Conversion API",
	CategoryUserManagement:     "User Management and Profile API",
	CategoryAIML:               "AI-Powered Analysis and Processing API",
}

type EndpointCategory struct {
	Name        string              `json:"name"`
	Endpoints   []model.APIEndpoint `json:"endpoints"`
	Description string              `json:"description"`
	Priority    float64             `json:"priority"`
}

// EndpointIDs returns the ids of the endpoints in the bucket, in bucket order.
func (c EndpointCategory) EndpointIDs() []string {
	ids := make([]string, 0, len(c.Endpoints))
	for _, e := range c.Endpoints {
		ids = append(ids, e.ID)
	}
	return ids
}

type FocusArea struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
	Endpoints   []string `json:"endpoints"`
}

// Intelligence is the result of analysing a parsed API.
type Intelligence struct {
	DetectedPurpose    string             `json:"detectedPurpose"`
	Confidence         float64            `json:"confidence"`
	PrimaryCategory    string             `json:"primaryCategory"`
	SuggestedFeatures  []PluginFeature    `json:"suggestedFeatures"`
	EndpointCategories []EndpointCategory `json:"endpointCategories"`
	Recommendations    []string           `json:"recommendations"`
	FocusAreas         []FocusArea        `json:"focusAreas"`
}

// Category returns the bucket with the given name, or nil.
func (in *Intelligence) Category(name string) *EndpointCategory {
	for i := range in.EndpointCategories {
		if in.EndpointCategories[i].Name == name {
			return &in.EndpointCategories[i]
		}
	}
	return nil
}

// Feature returns the suggested feature with the given id, or nil.
func (in *Intelligence) Feature(id string) *PluginFeature {
	for i := range in.SuggestedFeatures {
		if in.SuggestedFeatures[i].ID == id {
			return &in.SuggestedFeatures[i]
		}
	}
	return nil
}

// Analyze classifies every endpoint of api, ranks the resulting categories
// and synthesizes the default feature set for the primary category.
func Analyze(api *model.ParsedAPI) *Intelligence {
	categories := CategorizeEndpoints(api.Endpoints)
	focus := focusAreas(categories)
	primary := primaryCategory(focus)

	return &Intelligence{
		DetectedPurpose:    Purpose(api, primary),
		Confidence:         confidence(focus, len(api.Endpoints)),
		PrimaryCategory:    primary,
		SuggestedFeatures:  SynthesizeFeatures(api, primary, categories),
		EndpointCategories: categories,
		Recommendations:    recommendations(api, primary),
		FocusAreas:         focus,
	}
}

// Classify returns the category for an endpoint by matching its path, name
// and description against the keyword rules.
func Classify(e model.APIEndpoint) string {
	return ClassifyText(e.Path + " " + e.Name + " " + e.Description)
}

// ClassifyText applies the keyword rules to arbitrary text.
func ClassifyText(text string) string {
	text = strings.ToLower(text)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

// CategorizeEndpoints buckets endpoints by category. Buckets are ordered by
// descending priority; ties keep first-seen order.
func CategorizeEndpoints(endpoints []model.APIEndpoint) []EndpointCategory {
	var categories []EndpointCategory
	index := make(map[string]int)

	for _, e := range endpoints {
		name := Classify(e)
		i, ok := index[name]
		if !ok {
			i = len(categories)
			index[name] = i
			categories = append(categories, EndpointCategory{
				Name:        name,
				Description: CategoryDescription(name),
			})
		}
		categories[i].Endpoints = append(categories[i].Endpoints, e)
	}

	for i := range categories {
		categories[i].Priority = CategoryPriority(categories[i].Name, len(categories[i].Endpoints))
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Priority > categories[j].Priority
	})

	if categories == nil {
		categories = []EndpointCategory{}
	}
	return categories
}

// CategoryPriority is the base priority of the category plus a bonus of one
// point per five endpoints, capped at two.
func CategoryPriority(category string, endpointCount int) float64 {
	base, ok := basePriority[category]
	if !ok {
		base = basePriority[CategoryGeneral]
	}
	return base + math.Min(2, float64(endpointCount)/5)
}

func CategoryDescription(category string) string {
	if d, ok := categoryDescriptions[category]; ok {
		return d
	}
	return "API endpoints for various operations"
}

// Purpose returns the purpose phrase for a primary category.
func Purpose(api *model.ParsedAPI, primary string) string {
	if p, ok := purposes[primary]; ok {
		return p
	}
	return api.Name + " Integration"
}

func focusAreas(categories []EndpointCategory) []FocusArea {
	focus := []FocusArea{}
	for _, c := range categories {
		if len(c.Endpoints) == 0 {
			continue
		}
		focus = append(focus, FocusArea{
			Name:        c.Name,
			Description: c.Description,
			Confidence:  math.Min(0.9, c.Priority/10),
			Endpoints:   c.EndpointIDs(),
		})
	}
	sort.SliceStable(focus, func(i, j int) bool {
		return focus[i].Confidence > focus[j].Confidence
	})
	return focus
}

func primaryCategory(focus []FocusArea) string {
	if len(focus) == 0 {
		return CategoryGeneral
	}
	return focus[0].Name
}

func confidence(focus []FocusArea, total int) float64 {
	if len(focus) == 0 || total == 0 {
		return fallbackConfidence
	}
	top := focus[0]
	coverage := float64(len(top.Endpoints)) / float64(total)
	return math.Min(0.95, top.Confidence*0.6+coverage*0.4)
}

func recommendations(api *model.ParsedAPI, primary string) []string {
	recs := []string{}

	switch primary {
	case CategoryImageProcessing:
		recs = append(recs,
			"Consider adding image format validation to ensure compatibility",
			"Include progress indicators for processing operations",
			"Add undo/redo functionality for processed images",
		)
	case CategoryTranslation:
		recs = append(recs,
			"Include language auto-detection for better user experience",
			"Add support for batch translation of multiple text layers",
			"Consider caching translations to improve performance",
		)
	}

	if api.HasAuthentication() {
		recs = append(recs, "Implement secure API key storage and management")
	}
	if len(api.Endpoints) > 10 {
		recs = append(recs, "Group endpoints by functionality for better organization")
	}

	return recs
}
