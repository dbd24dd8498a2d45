package query

// A predicate used to restrict the dimensions offered for a parameter.
type DimensionFilter func(Dimension) bool

// A dimension within a section of dimension options.
type DimensionItem struct {
	Dimension Dimension
}

// A named group of dimensions, e.g. the fields of a table reached through a given foreign key.
type DimensionSection struct {
	Name  string
	Items []DimensionItem
}

// The dimensions of a query that a filter can apply to.
type DimensionOptions struct {
	name       string      // The name of the main section.
	dimensions []Dimension // The dimensions of the main section.
	fks        []fkOption  // The dimensions reached through foreign keys or joins, one group per key or join.
}

// A group of dimensions reached through a given foreign key or join.
type fkOption struct {
	name       string
	dimensions []Dimension
}

// Returns the number of dimensions across all sections.
func (o DimensionOptions) Count() int {
	count := len(o.dimensions)
	for _, fk := range o.fks {
		count += len(fk.dimensions)
	}
	return count
}

// Returns all dimensions, grouped by section. The main section comes first, and empty sections are omitted.
func (o DimensionOptions) Sections() []DimensionSection {
	sections := make([]DimensionSection, 0, len(o.fks)+1)

	if len(o.dimensions) > 0 {
		sections = append(sections, makeSection(o.name, o.dimensions))
	}

	for _, fk := range o.fks {
		if len(fk.dimensions) > 0 {
			sections = append(sections, makeSection(fk.name, fk.dimensions))
		}
	}

	return sections
}

func makeSection(name string, dimensions []Dimension) DimensionSection {
	items := make([]DimensionItem, 0, len(dimensions))
	for _, d := range dimensions {
		items = append(items, DimensionItem{Dimension: d})
	}

	return DimensionSection{Name: name, Items: items}
}

// Returns the dimensions matching the filter. A `nil` filter matches everything.
func filterDimensions(dimensions []Dimension, filter DimensionFilter) []Dimension {
	if filter == nil {
		return dimensions
	}

	filtered := make([]Dimension, 0, len(dimensions))
	for _, d := range dimensions {
		if filter(d) {
			filtered = append(filtered, d)
		}
	}

	return filtered
}
