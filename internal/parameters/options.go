package parameters

import (
	"github.com/flovouin/terraform-provider-mbparams/internal/i18n"
	"github.com/flovouin/terraform-provider-mbparams/internal/settings"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The kinds of operator-based parameters.
const (
	DateOperators   = "date"
	NumberOperators = "number"
	StringOperators = "string"
)

// Read access to the settings of the Metabase instance.
type Settings interface {
	Bool(name string) bool
}

// Returns whether operator-based options are used for location, category, and number filters.
func areFieldFilterOperatorsEnabled(s Settings) bool {
	return s != nil && s.Bool(settings.FieldFilterOperatorsEnabled)
}

// Returns the translator, or the English one if none is given.
func translator(t i18n.Translator) i18n.Translator {
	if t == nil {
		return i18n.English
	}
	return t
}

// Returns the operator-based options of the given kind (`date`, `number` or `string`). Unknown kinds have no options.
func OperatorOptions(kind string, t i18n.Translator) []metabase.ParameterOption {
	t = translator(t)

	switch kind {
	case DateOperators:
		return []metabase.ParameterOption{
			{Type: "date/month-year", Operator: "month-year", Name: t.T("Month and Year"), Description: t.T("Like January, 2016")},
			{Type: "date/quarter-year", Operator: "quarter-year", Name: t.T("Quarter and Year"), Description: t.T("Like Q1, 2016")},
			{Type: "date/single", Operator: "single", Name: t.T("Single Date"), Description: t.T("Like January 31, 2016")},
			{Type: "date/range", Operator: "range", Name: t.T("Date Range"), Description: t.T("Like December 25, 2015 - February 14, 2016")},
			{Type: "date/relative", Operator: "relative", Name: t.T("Relative Date"), Description: t.T(`Like "the last 7 days" or "this month"`)},
			{Type: "date/all-options", Operator: "all-options", Name: t.T("Date Filter"), MenuName: t.T("All Options"), Description: t.T("Contains all of the above")},
		}
	case NumberOperators:
		return []metabase.ParameterOption{
			{Type: "number/=", Operator: "=", Name: t.T("Equal to")},
			{Type: "number/!=", Operator: "!=", Name: t.T("Not equal to")},
			{Type: "number/between", Operator: "between", Name: t.T("Between")},
			{Type: "number/>=", Operator: ">=", Name: t.T("Greater than or equal to")},
			{Type: "number/<=", Operator: "<=", Name: t.T("Less than or equal to")},
		}
	case StringOperators:
		return []metabase.ParameterOption{
			{Type: "string/=", Operator: "=", Name: t.T("Dropdown"), Description: t.T("Select one or more values from a list or search box.")},
			{Type: "string/!=", Operator: "!=", Name: t.T("Is not"), Description: t.T("Exclude one or more specific values.")},
			{Type: "string/contains", Operator: "contains", Name: t.T("Contains"), Description: t.T("Match values that contain the entered text.")},
			{Type: "string/does-not-contain", Operator: "does-not-contain", Name: t.T("Does not contain"), Description: t.T("Filter out values that contain the entered text.")},
			{Type: "string/starts-with", Operator: "starts-with", Name: t.T("Starts with"), Description: t.T("Match values that begin with the entered text.")},
			{Type: "string/ends-with", Operator: "ends-with", Name: t.T("Ends with"), Description: t.T("Match values that end with the entered text.")},
		}
	}

	return nil
}

// Returns the name of an operator-based option combined with the name of its section, e.g. `Location contains`.
// Date and number options keep their own name, and the `=` string operator is named after the section only.
func OperatorDisplayName(option metabase.ParameterOption, operatorType string, sectionName string) string {
	switch {
	case operatorType == DateOperators || operatorType == NumberOperators:
		return option.Name
	case operatorType == StringOperators && option.Operator == "=":
		return sectionName
	}

	return sectionName + " " + cases.Lower(language.Und).String(option.Name)
}

// Returns the operator options of the given kind, attached to a section.
func sectionOperatorOptions(kind string, sectionId string, sectionName string, t i18n.Translator) []metabase.ParameterOption {
	options := OperatorOptions(kind, t)
	for i := range options {
		options[i].SectionId = sectionId
		options[i].CombinedName = OperatorDisplayName(options[i], kind, sectionName)
	}
	return options
}

// Returns the list of all parameter options, regardless of sections.
// When field filter operators are disabled, location and category filters use the legacy, non operator-based types.
func ParameterOptions(s Settings, t i18n.Translator) []metabase.ParameterOption {
	t = translator(t)

	options := []metabase.ParameterOption{
		{Type: "id", Name: t.T("ID")},
	}

	if areFieldFilterOperatorsEnabled(s) {
		options = append(options, sectionOperatorOptions(NumberOperators, "number", t.T("Number"), t)...)
		options = append(options, sectionOperatorOptions(StringOperators, "string", t.T("Category"), t)...)
	} else {
		options = append(options,
			metabase.ParameterOption{Type: "category", Name: t.T("Category")},
			metabase.ParameterOption{Type: "location/city", Name: t.T("City")},
			metabase.ParameterOption{Type: "location/state", Name: t.T("State")},
			metabase.ParameterOption{Type: "location/zip_code", Name: t.T("ZIP or Postal Code")},
			metabase.ParameterOption{Type: "location/country", Name: t.T("Country")},
		)
	}

	options = append(options, sectionOperatorOptions(DateOperators, "date", t.T("Date"), t)...)

	return options
}
