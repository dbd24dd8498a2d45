package parameters

import (
	"github.com/flovouin/terraform-provider-mbparams/internal/metadata"
	"github.com/flovouin/terraform-provider-mbparams/internal/query"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// Returns whether a dimension is reached through a foreign key or a join.
func isForeign(d query.Dimension) bool {
	fd, ok := d.(*query.FieldDimension)
	if !ok {
		// Expressions and template tags never come from another table.
		return false
	}
	return fd.FK() != nil || len(fd.JoinAlias()) > 0
}

// Returns the targets the parameter can be mapped to in the card. If the parameter is `nil`, all targets are returned.
// Structured queries offer their dimensions, while native queries offer their variables followed by their field
// filters. Text cards cannot be mapped to parameters and have no options.
func MappingOptions(md *metadata.Metadata, parameter *metabase.Parameter, card metabase.Card) []metabase.ParameterMappingUIOption {
	options := make([]metabase.ParameterMappingUIOption, 0)
	if card.Display == metabase.TextDisplay {
		return options
	}

	question := query.NewQuestion(card, md)
	q := question.Query()

	var dimensionFilter query.DimensionFilter
	if parameter != nil {
		dimensionFilter = DimensionFilterForParameter(*parameter)
	}

	if question.IsStructured() {
		for _, section := range q.DimensionOptions(dimensionFilter).Sections() {
			for _, item := range section.Items {
				options = append(options, metabase.ParameterMappingUIOption{
					SectionName: section.Name,
					Name:        item.Dimension.DisplayName(),
					Icon:        item.Dimension.Icon(),
					Target:      metabase.DimensionTarget(item.Dimension.MBQL()),
					IsForeign:   isForeign(item.Dimension),
				})
			}
		}

		return options
	}

	if vq, ok := q.(query.VariableQuery); ok {
		var variableFilter query.VariableFilter
		if parameter != nil {
			variableFilter = VariableFilterForParameter(*parameter)
		}

		for _, v := range vq.Variables(variableFilter) {
			options = append(options, metabase.ParameterMappingUIOption{
				Name:      v.DisplayName(),
				Icon:      v.Icon(),
				Target:    metabase.VariableTarget(v.MBQL()),
				IsForeign: false,
			})
		}
	}

	for _, section := range q.DimensionOptions(dimensionFilter).Sections() {
		for _, item := range section.Items {
			options = append(options, metabase.ParameterMappingUIOption{
				Name:      item.Dimension.DisplayName(),
				Icon:      item.Dimension.Icon(),
				Target:    metabase.DimensionTarget(item.Dimension.MBQL()),
				IsForeign: false,
			})
		}
	}

	return options
}
