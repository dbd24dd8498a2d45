package metadata

import (
	"strings"

	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// A field (column) known to the metadata.
type Field struct {
	metabase.Field

	table *Table // The table containing the field.
}

// Creates a field that is not part of any table, e.g. a custom expression or a column referenced by name.
func NewDetachedField(name string, baseType string) *Field {
	return &Field{
		Field: metabase.Field{
			Name:        name,
			DisplayName: name,
			BaseType:    typeName(baseType),
		},
	}
}

// Returns the table containing the field, if known.
func (f *Field) Table() *Table {
	return f.table
}

// Returns the name to display for the field, falling back to its name.
func (f *Field) DisplayName() string {
	if f.Field.DisplayName != "" {
		return f.Field.DisplayName
	}
	return f.Name
}

// Returns the effective type of the field, or its base type if it has none.
func (f *Field) effectiveType() string {
	if f.EffectiveType != "" {
		return typeName(f.EffectiveType)
	}
	return typeName(f.BaseType)
}

// Returns the semantic type of the field, or an empty string.
func (f *Field) semanticType() string {
	if f.SemanticType == nil {
		return ""
	}
	return typeName(*f.SemanticType)
}

func (f *Field) isSemantic(t string) bool {
	return Isa(f.semanticType(), t)
}

func (f *Field) IsDate() bool {
	return Isa(f.effectiveType(), TypeTemporal) || f.isSemantic(TypeTemporal)
}

func (f *Field) IsNumber() bool {
	return Isa(f.effectiveType(), TypeNumber)
}

func (f *Field) IsString() bool {
	return Isa(f.effectiveType(), TypeText)
}

func (f *Field) IsBoolean() bool {
	return Isa(f.effectiveType(), TypeBoolean)
}

func (f *Field) IsPK() bool {
	return f.isSemantic(TypePK)
}

// A field is considered a foreign key if it has this semantic type, even without a known target field.
func (f *Field) IsFK() bool {
	return f.isSemantic(TypeFK)
}

func (f *Field) IsID() bool {
	return f.IsPK() || f.IsFK()
}

// Booleans are always treated as categories.
func (f *Field) IsCategory() bool {
	return f.isSemantic(TypeCategory) || f.IsBoolean()
}

func (f *Field) IsLocation() bool {
	return f.isSemantic(TypeAddress)
}

func (f *Field) IsCity() bool {
	return f.isSemantic(TypeCity)
}

func (f *Field) IsState() bool {
	return f.isSemantic(TypeState)
}

func (f *Field) IsZipCode() bool {
	return f.isSemantic(TypeZipCode)
}

func (f *Field) IsCountry() bool {
	return f.isSemantic(TypeCountry)
}

func (f *Field) IsCoordinate() bool {
	return f.isSemantic(TypeCoordinate)
}

// Returns the name of the icon representing the field, by order of precedence of its characteristics.
func (f *Field) Icon() string {
	switch {
	case f.IsDate():
		return "calendar"
	case f.IsLocation(), f.IsCoordinate():
		return "location"
	case f.IsFK():
		return "connections"
	case f.IsPK():
		return "label"
	case f.IsString():
		return "string"
	case f.IsNumber():
		return "int"
	case f.IsBoolean():
		return "io"
	}

	return "unknown"
}

// Returns the name of the foreign key field without its usual ` ID` suffix, e.g. `Product ID` becomes `Product`.
// It is used to name the section of fields reached through the foreign key.
func (f *Field) TargetObjectName() string {
	return strings.TrimSuffix(strings.TrimSuffix(f.DisplayName(), " ID"), " Id")
}
