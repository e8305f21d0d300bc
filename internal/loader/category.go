package loader

import (
	"strings"

	"github.com/kolah/plugforge/internal/model"
)

// Coarse endpoint categories assigned at parse time.
const (
	CategoryAuthentication     = "authentication"
	CategoryUserManagement     = "user-management"
	CategoryTranslation        = "translation"
	CategoryDocumentProcessing = "document-processing"
	CategoryLanguageSupport    = "language-support"
	CategoryListing            = "listing"
	CategoryCreation           = "creation"
	CategoryRetrieval          = "retrieval"
	CategoryModification       = "modification"
	CategoryDeletion           = "deletion"
	CategoryGeneral            = "general"
)

// Categorize assigns a coarse category from the first tag, the path and the
// REST shape of the endpoint. Keyword rules are checked before REST rules.
func Categorize(e model.APIEndpoint) string {
	var tag string
	if len(e.Tags) > 0 {
		tag = strings.ToLower(e.Tags[0])
	}
	path := strings.ToLower(e.Path)

	matches := func(keyword string) bool {
		return strings.Contains(tag, keyword) || strings.Contains(path, keyword)
	}

	segments := 0
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments++
		}
	}

	switch {
	case matches("auth") || strings.Contains(path, "login"):
		return CategoryAuthentication
	case matches("user"):
		return CategoryUserManagement
	case matches("translate"):
		return CategoryTranslation
	case matches("document"):
		return CategoryDocumentProcessing
	case matches("language"):
		return CategoryLanguageSupport
	case e.Method == model.MethodGet && segments == 1:
		return CategoryListing
	case e.Method == model.MethodPost && segments == 1:
		return CategoryCreation
	case e.Method == model.MethodGet && strings.Contains(path, "{"):
		return CategoryRetrieval
	case e.Method == model.MethodPut || e.Method == model.MethodPatch:
		return CategoryModification
	case e.Method == model.MethodDelete:
		return CategoryDeletion
	}
	return CategoryGeneral
}
