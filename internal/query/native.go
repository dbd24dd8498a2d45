package query

import (
	"github.com/flovouin/terraform-provider-mbparams/internal/metadata"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// A predicate used to restrict the variables offered for a parameter.
type VariableFilter func(Variable) bool

// A query declaring variables that parameters can be mapped to.
type VariableQuery interface {
	Query

	// Returns the variables of the query matching the filter, which can be `nil`.
	Variables(filter VariableFilter) []Variable
}

// A named placeholder in a query, that a parameter value can be substituted into.
type Variable interface {
	DisplayName() string
	Icon() string
	MBQL() []any
}

// A variable backed by a template tag of a native query, e.g. `{{category}}`.
type TemplateTagVariable struct {
	tag metabase.TemplateTag
}

// Creates a variable from a template tag.
func NewTemplateTagVariable(tag metabase.TemplateTag) *TemplateTagVariable {
	return &TemplateTagVariable{tag: tag}
}

// Returns the template tag of the variable.
func (v *TemplateTagVariable) Tag() metabase.TemplateTag {
	return v.tag
}

// Returns the display name of the tag, falling back on its name.
func (v *TemplateTagVariable) DisplayName() string {
	if len(v.tag.DisplayName) > 0 {
		return v.tag.DisplayName
	}
	return v.tag.Name
}

// Returns the icon matching the type of the tag.
func (v *TemplateTagVariable) Icon() string {
	switch v.tag.Type {
	case metabase.TemplateTagTypeText:
		return "string"
	case metabase.TemplateTagTypeNumber:
		return "int"
	case metabase.TemplateTagTypeDate:
		return "calendar"
	}
	return "unknown"
}

// Returns the reference to the tag, e.g. `["template-tag", "user_name"]`.
func (v *TemplateTagVariable) MBQL() []any {
	return []any{metabase.TemplateTagLiteral, v.tag.Name}
}

// A native (e.g. SQL) query.
type NativeQuery struct {
	native   metabase.NativeQuery
	metadata *metadata.Metadata
}

// Creates a native query. Field filters are resolved using the metadata, which can be `nil`.
func NewNativeQuery(native metabase.NativeQuery, md *metadata.Metadata) *NativeQuery {
	return &NativeQuery{native: native, metadata: md}
}

// Returns the template tags of the query, in declaration order.
func (nq *NativeQuery) TemplateTags() []metabase.TemplateTag {
	return nq.native.TemplateTags.List()
}

// Returns the template tags of the query that are not field filters, which are exposed as dimensions instead. Snippets
// and card references are kept, and only removed by variable filters.
func (nq *NativeQuery) Variables(filter VariableFilter) []Variable {
	variables := make([]Variable, 0)
	for _, tag := range nq.TemplateTags() {
		if tag.Type == metabase.TemplateTagTypeDimension {
			continue
		}

		v := NewTemplateTagVariable(tag)
		if filter != nil && !filter(v) {
			continue
		}

		variables = append(variables, v)
	}

	return variables
}

// Returns the field filters of the query as a single unnamed section.
func (nq *NativeQuery) DimensionOptions(filter DimensionFilter) DimensionOptions {
	dimensions := make([]Dimension, 0)
	for _, tag := range nq.TemplateTags() {
		if tag.Type != metabase.TemplateTagTypeDimension {
			continue
		}

		dimensions = append(dimensions, &TemplateTagDimension{
			tag:   tag,
			inner: parseFieldRef(tag.Dimension, nq.metadata),
		})
	}

	return DimensionOptions{dimensions: filterDimensions(dimensions, filter)}
}
