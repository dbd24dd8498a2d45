package query

import (
	"github.com/flovouin/terraform-provider-mbparams/internal/metadata"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// A query of a card, either structured or native.
type Query interface {
	// Returns the dimensions of the query matching the filter, which can be `nil`.
	DimensionOptions(filter DimensionFilter) DimensionOptions
}

// A card interpreted against metadata.
type Question struct {
	card     metabase.Card
	metadata *metadata.Metadata
}

// Creates a question from a card. The metadata can be `nil`, in which case fields cannot be resolved.
func NewQuestion(card metabase.Card, md *metadata.Metadata) *Question {
	return &Question{card: card, metadata: md}
}

// Returns the card the question was built from.
func (q *Question) Card() metabase.Card {
	return q.card
}

// Returns whether the question is based on a structured (MBQL) query, as opposed to a native one.
func (q *Question) IsStructured() bool {
	return q.card.DatasetQuery.Type == metabase.StructuredQueryType
}

// Returns the query of the question. Queries of an unknown type, or that cannot be parsed, are returned as an empty
// native query without any dimension or variable.
func (q *Question) Query() Query {
	if q.IsStructured() {
		sq, err := NewStructuredQuery(q.card.DatasetQuery.Query, q.metadata)
		if err != nil {
			return &NativeQuery{}
		}
		return sq
	}

	if q.card.DatasetQuery.Type == metabase.NativeQueryType && q.card.DatasetQuery.Native != nil {
		return NewNativeQuery(*q.card.DatasetQuery.Native, q.metadata)
	}

	return &NativeQuery{}
}
