package model

// PlatformTransformation is the rendered output of a platform transformer.
type PlatformTransformation struct {
	Platform      string            `json:"platform"`
	Features      []PlatformFeature `json:"features"`
	CodeFiles     []CodeFile        `json:"codeFiles"`
	Configuration map[string]any    `json:"configuration"`
	Documentation string            `json:"documentation"`
}

// File returns the code file at path, or nil.
func (t *PlatformTransformation) File(path string) *CodeFile {
	for i := range t.CodeFiles {
		if t.CodeFiles[i].Path == path {
			return &t.CodeFiles[i]
		}
	}
	return nil
}

type CodeFile struct {
	Path     string   `json:"path"`
	Content  string   `json:"content"`
	Type     FileType `json:"type"`
	Language string   `json:"language"`
}

type FileType string

const (
	FileTypeConfig        FileType = "config"
	FileTypeComponent     FileType = "component"
	FileTypeAPI           FileType = "api"
	FileTypeSchema        FileType = "schema"
	FileTypeDocumentation FileType = "documentation"
)

type PlatformFeature struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	APIEndpoints   []string       `json:"apiEndpoints"`
	Implementation Implementation `json:"implementation"`
	UserInterface  []UIComponent  `json:"userInterface,omitempty"`
}

type Implementation string

const (
	ImplementationAdminUI        Implementation = "admin-ui"
	ImplementationWebhook        Implementation = "webhook"
	ImplementationAPIIntegration Implementation = "api-integration"
	ImplementationThemeExtension Implementation = "theme-extension"
	ImplementationBlock          Implementation = "block"
)

type UIComponent struct {
	Type    string            `json:"type"`
	Name    string            `json:"name"`
	Fields  []FormField       `json:"fields,omitempty"`
	Actions []ComponentAction `json:"actions,omitempty"`
}

type FormField struct {
	Name     string        `json:"name"`
	Type     FieldType     `json:"type"`
	Label    string        `json:"label"`
	Required bool          `json:"required"`
	Options  []FieldOption `json:"options,omitempty"`
}

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldNumber   FieldType = "number"
)

type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ComponentAction struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	Endpoint            string `json:"endpoint,omitempty"`
	ConfirmationMessage string `json:"confirmationMessage,omitempty"`
}
