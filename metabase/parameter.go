package metabase

import (
	"encoding/json"
	"errors"
	"fmt"
)

// A kind of filter that can be added to a dashboard, as presented to the user when creating a parameter.
type ParameterOption struct {
	Type         string `json:"type"`                   // The parameter type, e.g. `date/single`, `string/=` or `id`.
	Operator     string `json:"operator,omitempty"`     // The operator applied by the filter, if the type is operator-based.
	Name         string `json:"name"`                   // The name of the option.
	MenuName     string `json:"menuName,omitempty"`     // A shorter name used in menus, if different from the name.
	Description  string `json:"description,omitempty"`  // A description of the values accepted by the filter.
	CombinedName string `json:"combinedName,omitempty"` // The name combining the section and the option, used as the default parameter name.
	SectionId    string `json:"sectionId,omitempty"`    // The ID of the section the option belongs to.
}

// A group of parameter options, e.g. all the time filters.
type ParameterSection struct {
	Id          string            `json:"id"`          // The ID of the section, e.g. `date` or `location`.
	Name        string            `json:"name"`        // The localized name of the section.
	Description string            `json:"description"` // The localized description of the section.
	Options     []ParameterOption `json:"options"`     // The options in the section.
}

// A parameter (filter) defined on a dashboard.
// The ID is only used within the dashboard itself, it is not the ID of an object in the Metabase API / DB.
type Parameter struct {
	Id                  string   `json:"id"`                            // A random hexadecimal identifier.
	Name                string   `json:"name"`                          // The display name, unique within the dashboard.
	Slug                string   `json:"slug"`                          // The URL-safe identifier derived from the name.
	Type                string   `json:"type"`                          // The type of the parameter, copied from the option.
	SectionId           string   `json:"sectionId,omitempty"`           // The section the parameter was created from.
	Default             any      `json:"default,omitempty"`             // The default value, if any.
	Required            bool     `json:"required,omitempty"`            // Whether a value should always be set.
	FilteringParameters []string `json:"filteringParameters,omitempty"` // The IDs of the parameters restricting the values of this one.
}

// The reference a parameter is mapped to in a card: either a dimension (column) or a variable of a native query.
// It is serialized as a two-element array, e.g. `["dimension", ["field", 1, null]]`.
type ParameterTarget struct {
	Kind string // Either `dimension` or `variable`.
	Ref  []any  // The MBQL reference to the dimension or variable.
}

// Makes a target referencing a dimension.
func DimensionTarget(ref []any) ParameterTarget {
	return ParameterTarget{Kind: DimensionTargetLiteral, Ref: ref}
}

// Makes a target referencing a variable.
func VariableTarget(ref []any) ParameterTarget {
	return ParameterTarget{Kind: VariableTargetLiteral, Ref: ref}
}

func (t ParameterTarget) IsDimension() bool {
	return t.Kind == DimensionTargetLiteral
}

func (t ParameterTarget) IsVariable() bool {
	return t.Kind == VariableTargetLiteral
}

func (t ParameterTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.Kind, t.Ref})
}

func (t *ParameterTarget) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	err := json.Unmarshal(data, &tuple)
	if err != nil {
		return err
	}

	if len(tuple) != 2 {
		return fmt.Errorf("expected a parameter target with 2 elements, got %d", len(tuple))
	}

	var kind string
	err = json.Unmarshal(tuple[0], &kind)
	if err != nil {
		return err
	}

	if kind != DimensionTargetLiteral && kind != VariableTargetLiteral {
		return errors.New("parameter target should either be a dimension or a variable")
	}

	var ref []any
	err = json.Unmarshal(tuple[1], &ref)
	if err != nil {
		return err
	}

	t.Kind = kind
	t.Ref = ref

	return nil
}

// A candidate binding target for a dashboard parameter in a given card.
type ParameterMappingUIOption struct {
	SectionName string          `json:"sectionName,omitempty"` // The name of the dimension section, for structured queries only.
	Name        string          `json:"name"`                  // The display name of the dimension or variable.
	Icon        string          `json:"icon"`                  // The name of the icon to display next to the option.
	Target      ParameterTarget `json:"target"`                // The reference to the dimension or variable.
	IsForeign   bool            `json:"isForeign"`             // Whether the dimension is reached through a foreign key or a join.
}
