package loader

import (
	"testing"

	"github.com/kolah/plugforge/internal/model"
	"github.com/stretchr/testify/require"
)

func TestEndpointID(t *testing.T) {
	tests := []struct {
		name        string
		operationID string
		method      model.Method
		path        string
		want        string
	}{
		{"operation id wins", "listUsers", model.MethodGet, "/users", "listUsers"},
		{"operation id ignores path", "listUsers", model.MethodDelete, "/anything/{x}", "listUsers"},
		{"path parameter", "", model.MethodGet, "/users/{id}", "get__users__id_"},
		{"nested", "", model.MethodPost, "/v2/translate-text", "post__v2_translate_text"},
		{"dots", "", model.MethodPatch, "/files/{name}.json", "patch__files__name__json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EndpointID(tt.operationID, tt.method, tt.path))
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name   string
		method model.Method
		path   string
		tags   []string
		want   string
	}{
		{"auth tag", model.MethodPost, "/session", []string{"Auth"}, CategoryAuthentication},
		{"login path", model.MethodPost, "/login", nil, CategoryAuthentication},
		{"auth before user", model.MethodGet, "/users/auth", nil, CategoryAuthentication},
		{"user path", model.MethodGet, "/users", nil, CategoryUserManagement},
		{"translate tag", model.MethodPost, "/jobs", []string{"translate"}, CategoryTranslation},
		{"document", model.MethodPost, "/document/convert", nil, CategoryDocumentProcessing},
		{"language", model.MethodGet, "/languages", nil, CategoryLanguageSupport},
		{"listing", model.MethodGet, "/items", nil, CategoryListing},
		{"creation", model.MethodPost, "/items", nil, CategoryCreation},
		{"retrieval", model.MethodGet, "/items/{id}", nil, CategoryRetrieval},
		{"modification put", model.MethodPut, "/items/{id}", nil, CategoryModification},
		{"modification patch", model.MethodPatch, "/items/{id}", nil, CategoryModification},
		{"deletion", model.MethodDelete, "/items/{id}", nil, CategoryDeletion},
		{"general", model.MethodPost, "/items/{id}/archive", nil, CategoryGeneral},
		{"only first tag counts", model.MethodPost, "/jobs/run", []string{"jobs", "auth"}, CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := model.APIEndpoint{Method: tt.method, Path: tt.path, Tags: tt.tags}
			require.Equal(t, tt.want, Categorize(e))
		})
	}
}

func TestValidateSourceName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"api.json", false},
		{"api.yaml", false},
		{"api.yml", false},
		{"API.YAML", false},
		{"api.txt", true},
		{"api", true},
		{"", true},
		{"api.json.zip", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourceName(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedSource)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestIsURL(t *testing.T) {
	require.True(t, IsURL("https://example.com/openapi.yaml"))
	require.True(t, IsURL("http://localhost/spec"))
	require.False(t, IsURL("./openapi.yaml"))
}
