package parameters

import (
	"strings"

	"github.com/flovouin/terraform-provider-mbparams/internal/i18n"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// Returns the options whose type starts with the given prefix.
func optionsWithTypePrefix(options []metabase.ParameterOption, prefix string) []metabase.ParameterOption {
	filtered := make([]metabase.ParameterOption, 0)
	for _, o := range options {
		if strings.HasPrefix(o.Type, prefix) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// Returns the sections of parameter options offered when adding a filter to a dashboard.
// The `number` section is only present when field filter operators are enabled, in which case location and category
// filters are also operator-based.
func Sections(s Settings, t i18n.Translator) []metabase.ParameterSection {
	t = translator(t)
	operatorsEnabled := areFieldFilterOperatorsEnabled(s)
	parameterOptions := ParameterOptions(s, t)

	var locationOptions, categoryOptions []metabase.ParameterOption
	if operatorsEnabled {
		locationOptions = sectionOperatorOptions(StringOperators, "location", t.T("Location"), t)
		categoryOptions = sectionOperatorOptions(StringOperators, "category", t.T("Category"), t)
	} else {
		locationOptions = optionsWithTypePrefix(parameterOptions, "location")
		categoryOptions = optionsWithTypePrefix(parameterOptions, "category")
	}

	idOptions := make([]metabase.ParameterOption, 0, 1)
	for _, o := range parameterOptions {
		if o.Type == "id" {
			o.SectionId = "id"
			idOptions = append(idOptions, o)
			break
		}
	}

	sections := []metabase.ParameterSection{
		{
			Id:          "date",
			Name:        t.T("Time"),
			Description: t.T("Date range, relative date, time of day, etc."),
			Options:     sectionOperatorOptions(DateOperators, "date", t.T("Date"), t),
		},
		{
			Id:          "location",
			Name:        t.T("Location"),
			Description: t.T("City, State, Country, ZIP code."),
			Options:     locationOptions,
		},
		{
			Id:          "id",
			Name:        t.T("ID"),
			Description: t.T("User ID, product ID, event ID, etc."),
			Options:     idOptions,
		},
	}

	if operatorsEnabled {
		sections = append(sections, metabase.ParameterSection{
			Id:          "number",
			Name:        t.T("Number"),
			Description: t.T("Subtotal, Age, Price, Quantity, etc."),
			Options:     sectionOperatorOptions(NumberOperators, "number", t.T("Number"), t),
		})
	}

	sections = append(sections, metabase.ParameterSection{
		Id:          "category",
		Name:        t.T("Other Categories"),
		Description: t.T("Category, Type, Model, Rating, etc."),
		Options:     categoryOptions,
	})

	return sections
}

// Finds an option of any section by its type and section ID. An empty section ID matches the first option of the type.
func FindOption(sections []metabase.ParameterSection, optionType string, sectionId string) (metabase.ParameterOption, bool) {
	for _, s := range sections {
		if len(sectionId) > 0 && s.Id != sectionId {
			continue
		}

		for _, o := range s.Options {
			if o.Type == optionType {
				return o, true
			}
		}
	}

	return metabase.ParameterOption{}, false
}
