package parameters

import (
	"strings"

	"github.com/flovouin/terraform-provider-mbparams/internal/metadata"
	"github.com/flovouin/terraform-provider-mbparams/internal/query"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// Splits a parameter type into its type and subtype, e.g. `location/city` gives `location` and `city`.
func splitParameterType(parameterType string) (string, string) {
	t, subtype, _ := strings.Cut(parameterType, "/")
	return t, subtype
}

// Returns a predicate on fields matching the given parameter type.
func fieldFilterForParameterType(parameterType string) func(*metadata.Field) bool {
	t, subtype := splitParameterType(parameterType)

	switch t {
	case "date":
		return (*metadata.Field).IsDate
	case "id":
		return (*metadata.Field).IsID
	case "category":
		return (*metadata.Field).IsCategory
	case "location":
		switch subtype {
		case "city":
			return (*metadata.Field).IsCity
		case "state":
			return (*metadata.Field).IsState
		case "zip_code":
			return (*metadata.Field).IsZipCode
		case "country":
			return (*metadata.Field).IsCountry
		}
		return (*metadata.Field).IsLocation
	case "number":
		return func(f *metadata.Field) bool {
			return f.IsNumber() && !f.IsCoordinate()
		}
	case "string":
		return func(f *metadata.Field) bool {
			return f.IsString() && !f.IsLocation()
		}
	}

	return func(*metadata.Field) bool { return false }
}

// Returns the predicate selecting the dimensions a parameter can be mapped to.
func DimensionFilterForParameter(parameter metabase.Parameter) query.DimensionFilter {
	fieldFilter := fieldFilterForParameterType(parameter.Type)

	return func(d query.Dimension) bool {
		f := d.Field()
		return f != nil && fieldFilter(f)
	}
}

// Returns a predicate on template tags matching the given parameter type.
func tagFilterForParameterType(parameterType string) func(metabase.TemplateTag) bool {
	t, subtype := splitParameterType(parameterType)

	switch t {
	case "date":
		return func(tag metabase.TemplateTag) bool {
			return subtype == "single" && tag.Type == metabase.TemplateTagTypeDate
		}
	case "location", "id", "category":
		return func(tag metabase.TemplateTag) bool {
			return tag.Type == metabase.TemplateTagTypeNumber || tag.Type == metabase.TemplateTagTypeText
		}
	case "number":
		return func(tag metabase.TemplateTag) bool {
			return tag.Type == metabase.TemplateTagTypeNumber
		}
	case "string":
		return func(tag metabase.TemplateTag) bool {
			return tag.Type == metabase.TemplateTagTypeText
		}
	}

	return func(metabase.TemplateTag) bool { return false }
}

// Returns the predicate selecting the variables a parameter can be mapped to. Only template tag variables can be
// mapped.
func VariableFilterForParameter(parameter metabase.Parameter) query.VariableFilter {
	tagFilter := tagFilterForParameterType(parameter.Type)

	return func(v query.Variable) bool {
		tv, ok := v.(*query.TemplateTagVariable)
		return ok && tagFilter(tv.Tag())
	}
}
