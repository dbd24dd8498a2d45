package metabase

import "encoding/json"

// A card (question), as returned by the Metabase API. Only the attributes needed to resolve parameter mappings are
// modelled.
type Card struct {
	Id           *int         `json:"id,omitempty"`
	Name         string       `json:"name"`
	Display      string       `json:"display"`
	DatasetQuery DatasetQuery `json:"dataset_query"`
}

// The query of a card.
type DatasetQuery struct {
	Type     string          `json:"type"`             // Either `query` (structured) or `native`.
	Database *int            `json:"database"`         // The ID of the database the query runs against.
	Query    json.RawMessage `json:"query,omitempty"`  // The MBQL query, for structured queries. Kept raw and parsed lazily.
	Native   *NativeQuery    `json:"native,omitempty"` // The native query, for native queries.
}

// A native (SQL) query, with its template tags (variables).
type NativeQuery struct {
	Query        string       `json:"query"`
	TemplateTags TemplateTags `json:"template-tags"`
}

// The types of template tags.
const (
	TemplateTagTypeText      = "text"
	TemplateTagTypeNumber    = "number"
	TemplateTagTypeDate      = "date"
	TemplateTagTypeDimension = "dimension"
	TemplateTagTypeSnippet   = "snippet"
	TemplateTagTypeCard      = "card"
)

// A variable in a native query, e.g. `{{created_at}}`.
type TemplateTag struct {
	Id          string `json:"id,omitempty"`
	Name        string `json:"name"`
	DisplayName string `json:"display-name"`
	Type        string `json:"type"`                  // One of the `TemplateTagType*` constants.
	Dimension   []any  `json:"dimension,omitempty"`   // The field reference, for `dimension` template tags (field filters).
	WidgetType  string `json:"widget-type,omitempty"` // The parameter type used for the widget of field filters.
	Default     any    `json:"default,omitempty"`
	Required    bool   `json:"required,omitempty"`
}
