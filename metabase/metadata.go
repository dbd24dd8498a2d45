package metabase

// A database, as returned by the Metabase API.
type Database struct {
	Id     int    `json:"id"`
	Name   string `json:"name"`
	Engine string `json:"engine,omitempty"`
}

// A table with its fields, as returned by the `query_metadata` endpoint of the Metabase API.
type TableMetadata struct {
	Id          int     `json:"id"`
	DbId        int     `json:"db_id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Schema      *string `json:"schema,omitempty"`
	EntityType  string  `json:"entity_type,omitempty"`
	Fields      []Field `json:"fields"`
}

// A field (column) of a table.
type Field struct {
	Id              int     `json:"id"`
	TableId         int     `json:"table_id"`
	Name            string  `json:"name"`
	DisplayName     string  `json:"display_name"`
	BaseType        string  `json:"base_type"`
	EffectiveType   string  `json:"effective_type,omitempty"`
	SemanticType    *string `json:"semantic_type,omitempty"`
	FkTargetFieldId *int    `json:"fk_target_field_id,omitempty"`
	Position        int     `json:"position,omitempty"`
	Visibility      string  `json:"visibility_type,omitempty"`
}
