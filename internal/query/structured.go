package query

import (
	"encoding/json"
	"fmt"

	"github.com/flovouin/terraform-provider-mbparams/internal/metadata"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// Fields with these visibility types are never offered as dimensions.
var hiddenVisibilityTypes = map[string]bool{
	"sensitive": true,
	"retired":   true,
}

// A join of a structured query.
type join struct {
	Alias       string `json:"alias"`
	SourceTable any    `json:"source-table"`
}

// A custom expression of a structured query.
type expression struct {
	name   string
	clause any
}

// A structured (MBQL) query.
type StructuredQuery struct {
	sourceTableId *int // `nil` when the source is not a table, e.g. a nested question.
	joins         []join
	expressions   []expression // In declaration order.
	metadata      *metadata.Metadata
}

// Parses the inner MBQL query of a card.
func NewStructuredQuery(raw json.RawMessage, md *metadata.Metadata) (*StructuredQuery, error) {
	sq := &StructuredQuery{metadata: md}
	if len(raw) == 0 {
		return sq, nil
	}

	var inner struct {
		SourceTable any             `json:"source-table"`
		Joins       []join          `json:"joins"`
		Expressions json.RawMessage `json:"expressions"`
	}
	err := json.Unmarshal(raw, &inner)
	if err != nil {
		return nil, fmt.Errorf("failed to parse structured query: %w", err)
	}

	if id, ok := toInt(inner.SourceTable); ok {
		sq.sourceTableId = &id
	}

	sq.joins = inner.Joins

	if len(inner.Expressions) > 0 {
		err = metabase.DecodeObjectInOrder(inner.Expressions, func(key string, value json.RawMessage) error {
			var clause any
			err := json.Unmarshal(value, &clause)
			if err != nil {
				return err
			}

			sq.expressions = append(sq.expressions, expression{name: key, clause: clause})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to parse expressions: %w", err)
		}
	}

	return sq, nil
}

// Returns the source table of the query, or `nil` if it is not a known table.
func (sq *StructuredQuery) Table() *metadata.Table {
	if sq.sourceTableId == nil {
		return nil
	}
	return sq.metadata.Table(*sq.sourceTableId)
}

// Returns the dimensions of the fields of a table that can be shown to users.
func tableDimensions(table *metadata.Table) []*FieldDimension {
	dimensions := make([]*FieldDimension, 0, len(table.Fields()))
	for _, f := range table.Fields() {
		if hiddenVisibilityTypes[f.Visibility] {
			continue
		}
		dimensions = append(dimensions, NewFieldDimension(f))
	}
	return dimensions
}

// Returns the dimensions of the source table and of the custom expressions.
func (sq *StructuredQuery) Dimensions() []Dimension {
	dimensions := make([]Dimension, 0)

	if table := sq.Table(); table != nil {
		for _, d := range tableDimensions(table) {
			dimensions = append(dimensions, d)
		}
	}

	for _, e := range sq.expressions {
		dimensions = append(dimensions, NewExpressionDimension(e.name, sq.expressionType(e.clause)))
	}

	return dimensions
}

// Returns the dimensions of joined tables first, then those of the tables reachable through the foreign keys of the
// source table.
func (sq *StructuredQuery) fkOptions(filter DimensionFilter) []fkOption {
	options := make([]fkOption, 0)

	for _, j := range sq.joins {
		tableId, ok := toInt(j.SourceTable)
		if !ok {
			continue
		}

		table := sq.metadata.Table(tableId)
		if table == nil {
			continue
		}

		name := j.Alias
		if len(name) == 0 {
			name = table.DisplayName()
		}

		dimensions := make([]Dimension, 0)
		for _, d := range tableDimensions(table) {
			dimensions = append(dimensions, d.WithJoinAlias(j.Alias))
		}

		options = append(options, fkOption{name: name, dimensions: filterDimensions(dimensions, filter)})
	}

	table := sq.Table()
	if table == nil {
		return options
	}

	for _, fk := range table.Fields() {
		if !fk.IsFK() || fk.FkTargetFieldId == nil || hiddenVisibilityTypes[fk.Visibility] {
			continue
		}

		target := sq.metadata.Field(*fk.FkTargetFieldId)
		if target == nil || target.Table() == nil {
			continue
		}

		dimensions := make([]Dimension, 0)
		for _, d := range tableDimensions(target.Table()) {
			dimensions = append(dimensions, d.WithFK(fk.Id))
		}

		options = append(options, fkOption{name: fk.TargetObjectName(), dimensions: filterDimensions(dimensions, filter)})
	}

	return options
}

// Returns the dimensions of the query grouped in sections: the source table (with expressions), then joined tables,
// then tables reached through foreign keys. Empty sections are omitted.
func (sq *StructuredQuery) DimensionOptions(filter DimensionFilter) DimensionOptions {
	name := ""
	if table := sq.Table(); table != nil {
		name = table.DisplayName()
	}

	return DimensionOptions{
		name:       name,
		dimensions: filterDimensions(sq.Dimensions(), filter),
		fks:        sq.fkOptions(filter),
	}
}

// The base types of the values returned by MBQL functions.
var expressionTypes = map[string]string{
	"+": metadata.TypeFloat, "-": metadata.TypeFloat, "*": metadata.TypeFloat, "/": metadata.TypeFloat,
	"abs": metadata.TypeFloat, "ceil": metadata.TypeInteger, "floor": metadata.TypeInteger,
	"round": metadata.TypeInteger, "power": metadata.TypeFloat, "sqrt": metadata.TypeFloat,
	"exp": metadata.TypeFloat, "log": metadata.TypeFloat, "length": metadata.TypeInteger,
	"datetime-diff": metadata.TypeInteger, "get-year": metadata.TypeInteger, "get-month": metadata.TypeInteger,
	"get-day": metadata.TypeInteger,

	"concat": metadata.TypeText, "substring": metadata.TypeText, "upper": metadata.TypeText,
	"lower": metadata.TypeText, "trim": metadata.TypeText, "ltrim": metadata.TypeText,
	"rtrim": metadata.TypeText, "replace": metadata.TypeText, "regex-match-first": metadata.TypeText,

	"datetime-add": metadata.TypeDateTime, "datetime-subtract": metadata.TypeDateTime,
	"now": metadata.TypeDateTime, "convert-timezone": metadata.TypeDateTime,

	"=": metadata.TypeBoolean, "!=": metadata.TypeBoolean, "<": metadata.TypeBoolean, ">": metadata.TypeBoolean,
	"<=": metadata.TypeBoolean, ">=": metadata.TypeBoolean, "and": metadata.TypeBoolean,
	"or": metadata.TypeBoolean, "not": metadata.TypeBoolean, "between": metadata.TypeBoolean,
	"contains": metadata.TypeBoolean, "starts-with": metadata.TypeBoolean, "ends-with": metadata.TypeBoolean,
	"is-null": metadata.TypeBoolean, "not-null": metadata.TypeBoolean, "is-empty": metadata.TypeBoolean,
	"not-empty": metadata.TypeBoolean,
}

// The maximum depth of nested expressions when inferring types, which also protects against cyclic references.
const maxExpressionDepth = 16

// Infers the base type of the value of an expression clause. Returns an empty string if it cannot be inferred.
func (sq *StructuredQuery) expressionType(clause any) string {
	return sq.inferType(clause, 0)
}

func (sq *StructuredQuery) inferType(clause any, depth int) string {
	if depth > maxExpressionDepth {
		return ""
	}

	switch c := clause.(type) {
	case float64, int:
		return metadata.TypeFloat
	case string:
		return metadata.TypeText
	case bool:
		return metadata.TypeBoolean
	case []any:
		if len(c) == 0 {
			return ""
		}

		head, ok := c[0].(string)
		if !ok {
			return ""
		}

		switch head {
		case metabase.FieldLiteral, "field-id", "fk->", "joined-field":
			d := parseFieldRef(c, sq.metadata)
			if d == nil || d.Field() == nil {
				return ""
			}
			return d.Field().BaseType
		case metabase.ExpressionLiteral:
			if len(c) < 2 {
				return ""
			}
			name, _ := c[1].(string)
			for _, e := range sq.expressions {
				if e.name == name {
					return sq.inferType(e.clause, depth+1)
				}
			}
			return ""
		case "coalesce":
			for _, arg := range c[1:] {
				if t := sq.inferType(arg, depth+1); len(t) > 0 {
					return t
				}
			}
			return ""
		case "case":
			// `["case", [[condition, value], ...], {"default": value}]`
			if len(c) < 2 {
				return ""
			}
			pairs, _ := c[1].([]any)
			for _, p := range pairs {
				pair, ok := p.([]any)
				if !ok || len(pair) < 2 {
					continue
				}
				if t := sq.inferType(pair[1], depth+1); len(t) > 0 {
					return t
				}
			}
			if len(c) > 2 {
				options, _ := c[2].(map[string]any)
				if def, ok := options["default"]; ok {
					return sq.inferType(def, depth+1)
				}
			}
			return ""
		}

		return expressionTypes[head]
	}

	return ""
}
