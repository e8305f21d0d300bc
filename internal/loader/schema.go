package loader

import (
	"github.com/kolah/plugforge/internal/model"
	"github.com/pb33f/libopenapi/datamodel/high/base"
)

// schemaInliner turns resolved schema proxies into self-contained model
// schemas. A definition already on the current walk is emitted as a circular
// marker instead of being expanded again.
type schemaInliner struct {
	visiting map[*base.Schema]bool
}

func newSchemaInliner() *schemaInliner {
	return &schemaInliner{visiting: make(map[*base.Schema]bool)}
}

func (si *schemaInliner) inline(proxy *base.SchemaProxy) *model.Schema {
	if proxy == nil {
		return nil
	}

	ref := proxy.GetReference()
	s := proxy.Schema()
	if s == nil {
		return &model.Schema{Ref: ref}
	}

	if si.visiting[s] {
		return &model.Schema{Ref: ref, Circular: true}
	}
	si.visiting[s] = true
	defer delete(si.visiting, s)

	schema := si.transformSchema(s)
	schema.Ref = ref
	return schema
}

func (si *schemaInliner) transformSchema(s *base.Schema) *model.Schema {
	schema := &model.Schema{
		Description: s.Description,
		Format:      s.Format,
		Nullable:    boolPtr(s.Nullable),
		Deprecated:  boolPtr(s.Deprecated),
		Default:     decodeNode(s.Default),
		Example:     decodeNode(s.Example),
		Pattern:     s.Pattern,
		Required:    s.Required,
	}

	if len(s.Type) > 0 {
		schema.Type = model.SchemaType(s.Type[0])
	}

	for _, e := range s.Enum {
		schema.Enum = append(schema.Enum, decodeNode(e))
	}

	if s.Properties != nil {
		for propName, propProxy := range s.Properties.FromOldest() {
			propSchema := si.inline(propProxy)
			if propSchema != nil && propSchema.Name == "" {
				propSchema.Name = propName
			}
			schema.Properties = append(schema.Properties, model.Property{
				Name:   propName,
				Schema: propSchema,
			})
		}
	}

	if s.Items != nil && s.Items.A != nil {
		schema.Items = si.inline(s.Items.A)
	}

	if s.AdditionalProperties != nil && s.AdditionalProperties.A != nil {
		schema.AdditionalProperties = si.inline(s.AdditionalProperties.A)
	}

	for _, proxy := range s.AllOf {
		schema.AllOf = append(schema.AllOf, si.inline(proxy))
	}
	for _, proxy := range s.OneOf {
		schema.OneOf = append(schema.OneOf, si.inline(proxy))
	}
	for _, proxy := range s.AnyOf {
		schema.AnyOf = append(schema.AnyOf, si.inline(proxy))
	}

	if s.Minimum != nil {
		v := float64(*s.Minimum)
		schema.Minimum = &v
	}
	if s.Maximum != nil {
		v := float64(*s.Maximum)
		schema.Maximum = &v
	}
	if s.MinLength != nil {
		v := int64(*s.MinLength)
		schema.MinLength = &v
	}
	if s.MaxLength != nil {
		v := int64(*s.MaxLength)
		schema.MaxLength = &v
	}
	if s.MinItems != nil {
		v := int64(*s.MinItems)
		schema.MinItems = &v
	}
	if s.MaxItems != nil {
		v := int64(*s.MaxItems)
		schema.MaxItems = &v
	}

	return schema
}
