package model

// Schema is a fully inlined schema definition. Ref records the component a
// schema was resolved from and is informational only; Circular marks the
// point where a recursive definition re-enters itself.
type Schema struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Type        SchemaType `json:"type,omitempty"`
	Format      string     `json:"format,omitempty"`
	Nullable    bool       `json:"nullable,omitempty"`
	Deprecated  bool       `json:"deprecated,omitempty"`
	Default     any        `json:"default,omitempty"`
	Example     any        `json:"example,omitempty"`

	// Object properties
	Properties []Property `json:"properties,omitempty"`
	Required   []string   `json:"required,omitempty"`

	// Array items
	Items *Schema `json:"items,omitempty"`

	Enum []any `json:"enum,omitempty"`

	// Composition
	AllOf []*Schema `json:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`

	Ref      string `json:"ref,omitempty"`
	Circular bool   `json:"circular,omitempty"`

	// Additional properties for maps
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`

	// Constraints
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	MinLength *int64   `json:"minLength,omitempty"`
	MaxLength *int64   `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	MinItems  *int64   `json:"minItems,omitempty"`
	MaxItems  *int64   `json:"maxItems,omitempty"`
}

type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
	TypeNull    SchemaType = "null"
)

type Property struct {
	Name   string  `json:"name"`
	Schema *Schema `json:"schema"`
}
