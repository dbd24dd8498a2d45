package query

import (
	"github.com/flovouin/terraform-provider-mbparams/internal/metadata"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// A reference to a column of a query, that filters can be applied to.
type Dimension interface {
	DisplayName() string    // The name shown to the user.
	Icon() string           // The name of the icon shown next to the dimension.
	MBQL() []any            // The MBQL clause referencing the dimension.
	Field() *metadata.Field // The underlying field, possibly a detached one. `nil` if it cannot be resolved.
}

// A dimension referencing a field, possibly through a foreign key or a join.
type FieldDimension struct {
	field     *metadata.Field
	fieldRef  any    // Either the integer ID of the field, or its name.
	fk        *int   // The ID of the foreign key field through which the field is reached.
	joinAlias string // The alias of the join the field comes from.
}

// Creates a dimension for a field of a table.
func NewFieldDimension(field *metadata.Field) *FieldDimension {
	return &FieldDimension{field: field, fieldRef: field.Id}
}

// Returns a copy of the dimension, reached through the given foreign key.
func (d *FieldDimension) WithFK(fkFieldId int) *FieldDimension {
	c := *d
	c.fk = &fkFieldId
	return &c
}

// Returns a copy of the dimension, coming from the join with the given alias.
func (d *FieldDimension) WithJoinAlias(alias string) *FieldDimension {
	c := *d
	c.joinAlias = alias
	return &c
}

// Returns the ID of the foreign key field, or `nil` if the field is not reached through a foreign key.
func (d *FieldDimension) FK() *int {
	return d.fk
}

// Returns the alias of the join, or an empty string if the field does not come from a join.
func (d *FieldDimension) JoinAlias() string {
	return d.joinAlias
}

// Returns the resolved field, or `nil` if the field is not part of the metadata.
func (d *FieldDimension) Field() *metadata.Field {
	return d.field
}

// Returns the display name of the field, or an empty string if it is unknown.
func (d *FieldDimension) DisplayName() string {
	if d.field == nil {
		return ""
	}
	return d.field.DisplayName()
}

// Returns the icon of the field, depending on its type.
func (d *FieldDimension) Icon() string {
	if d.field == nil {
		return "unknown"
	}
	return d.field.Icon()
}

// Returns the field reference, e.g. `["field", 12, {"source-field": 3}]`. Options are `nil` when there are none.
func (d *FieldDimension) MBQL() []any {
	options := map[string]any{}
	if d.fk != nil {
		options[metabase.SourceFieldOption] = *d.fk
	}
	if len(d.joinAlias) > 0 {
		options[metabase.JoinAliasOption] = d.joinAlias
	}
	if _, byName := d.fieldRef.(string); byName && d.field != nil && len(d.field.BaseType) > 0 {
		options[metabase.BaseTypeOption] = d.field.BaseType
	}

	if len(options) == 0 {
		return []any{metabase.FieldLiteral, d.fieldRef, nil}
	}

	return []any{metabase.FieldLiteral, d.fieldRef, options}
}

// A dimension referencing a custom expression of a structured query.
// Expressions are computed in the query itself, they are never reached through a foreign key or a join.
type ExpressionDimension struct {
	name  string
	field *metadata.Field
}

// Creates a dimension for the expression with the given name, and the base type inferred from the expression.
func NewExpressionDimension(name string, baseType string) *ExpressionDimension {
	return &ExpressionDimension{
		name:  name,
		field: metadata.NewDetachedField(name, baseType),
	}
}

// Returns the name of the expression in the query.
func (d *ExpressionDimension) Name() string {
	return d.name
}

// Returns a field that is not part of any table, typed from the expression.
func (d *ExpressionDimension) Field() *metadata.Field {
	return d.field
}

// Expressions are displayed with their name.
func (d *ExpressionDimension) DisplayName() string {
	return d.name
}

func (d *ExpressionDimension) Icon() string {
	return d.field.Icon()
}

// Returns the reference to the expression, e.g. `["expression", "Price with tax"]`.
func (d *ExpressionDimension) MBQL() []any {
	return []any{metabase.ExpressionLiteral, d.name}
}

// A dimension referencing a field filter (a `dimension` template tag) of a native query.
type TemplateTagDimension struct {
	tag   metabase.TemplateTag
	inner *FieldDimension // The field the tag is bound to, `nil` if it cannot be resolved.
}

// Returns the template tag of the field filter.
func (d *TemplateTagDimension) Tag() metabase.TemplateTag {
	return d.tag
}

// Returns the field the tag is bound to, or `nil` if it cannot be resolved.
func (d *TemplateTagDimension) Field() *metadata.Field {
	if d.inner == nil {
		return nil
	}
	return d.inner.Field()
}

// Returns the display name of the tag, falling back on its name.
func (d *TemplateTagDimension) DisplayName() string {
	if len(d.tag.DisplayName) > 0 {
		return d.tag.DisplayName
	}
	return d.tag.Name
}

// Field filters bound to an unknown field are shown with the generic label icon.
func (d *TemplateTagDimension) Icon() string {
	if d.Field() == nil {
		return "label"
	}
	return d.inner.Icon()
}

// Returns the reference to the tag, e.g. `["template-tag", "category"]`.
func (d *TemplateTagDimension) MBQL() []any {
	return []any{metabase.TemplateTagLiteral, d.tag.Name}
}

// Resolves a field reference to a dimension, accepting both the current `field` clause and the legacy `field-id`,
// `fk->` and `joined-field` clauses. Returns `nil` if the reference is malformed.
func parseFieldRef(ref []any, md *metadata.Metadata) *FieldDimension {
	if len(ref) < 2 {
		return nil
	}

	head, ok := ref[0].(string)
	if !ok {
		return nil
	}

	switch head {
	case metabase.FieldLiteral:
		d := &FieldDimension{}

		if id, ok := toInt(ref[1]); ok {
			d.fieldRef = id
			d.field = md.Field(id)
		} else if name, ok := ref[1].(string); ok {
			d.fieldRef = name
		} else {
			return nil
		}

		if len(ref) > 2 {
			options, _ := ref[2].(map[string]any)
			if fk, ok := toInt(options[metabase.SourceFieldOption]); ok {
				d.fk = &fk
			}
			if alias, ok := options[metabase.JoinAliasOption].(string); ok {
				d.joinAlias = alias
			}
			if name, byName := d.fieldRef.(string); byName {
				baseType, _ := options[metabase.BaseTypeOption].(string)
				d.field = metadata.NewDetachedField(name, baseType)
			}
		}

		if name, byName := d.fieldRef.(string); byName && d.field == nil {
			d.field = metadata.NewDetachedField(name, "")
		}

		return d
	case "field-id":
		id, ok := toInt(ref[1])
		if !ok {
			return nil
		}
		return &FieldDimension{fieldRef: id, field: md.Field(id)}
	case "fk->":
		if len(ref) < 3 {
			return nil
		}
		fkRef, ok1 := ref[1].([]any)
		targetRef, ok2 := ref[2].([]any)
		if !ok1 || !ok2 {
			return nil
		}
		fk := parseFieldRef(fkRef, md)
		target := parseFieldRef(targetRef, md)
		if fk == nil || target == nil {
			return nil
		}
		fkId, ok := fk.fieldRef.(int)
		if !ok {
			return nil
		}
		return target.WithFK(fkId)
	case "joined-field":
		if len(ref) < 3 {
			return nil
		}
		alias, ok1 := ref[1].(string)
		innerRef, ok2 := ref[2].([]any)
		if !ok1 || !ok2 {
			return nil
		}
		inner := parseFieldRef(innerRef, md)
		if inner == nil {
			return nil
		}
		return inner.WithJoinAlias(alias)
	}

	return nil
}

// Converts a JSON number (or a Go integer) to an integer.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}

	return 0, false
}
