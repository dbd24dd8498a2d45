package metabase

// The name of the literal in an array, indicating a reference to a `Field` object.
const FieldLiteral = "field"

// The name of the literal in an array, indicating a reference to a custom expression of a structured query.
const ExpressionLiteral = "expression"

// The name of the literal in an array, indicating a reference to a template tag of a native query.
const TemplateTagLiteral = "template-tag"

// The first element of a parameter mapping target pointing to a dimension.
const DimensionTargetLiteral = "dimension"

// The first element of a parameter mapping target pointing to a variable.
const VariableTargetLiteral = "variable"

// The options attributes of a `field` reference.
const (
	SourceFieldOption = "source-field" // The ID of the foreign key through which the field is reached.
	JoinAliasOption   = "join-alias"   // The alias of the join the field belongs to.
	BaseTypeOption    = "base-type"    // The base type, for fields referenced by name.
)

// The attributes of a structured (MBQL) query.
const (
	SourceTableAttribute = "source-table"
	JoinsAttribute       = "joins"
	ExpressionsAttribute = "expressions"
	AliasAttribute       = "alias"
	ConditionAttribute   = "condition"
)

// The `display` of a card that only renders markdown text. Such cards cannot be mapped to parameters.
const TextDisplay = "text"

// The types of dataset queries.
const (
	StructuredQueryType = "query"
	NativeQueryType     = "native"
)

// The name of the parameter given to parameters that have been left without a name.
const UnnamedParameterName = "unnamed"
