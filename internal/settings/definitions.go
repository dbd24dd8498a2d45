package settings

import "strings"

// The type of the value of a setting.
type SettingType string

const (
	BooleanSetting SettingType = "boolean"
	StringSetting  SettingType = "string"
)

// The definition of a setting known to the store.
type Definition struct {
	Name    string      // The name of the setting, as used by Metabase, e.g. `field-filter-operators-enabled?`.
	Type    SettingType // The type of the value.
	Default any         // The value used when the setting is not set.
}

// The name of the setting enabling operator-based field filters (e.g. "contains", "between").
const FieldFilterOperatorsEnabled = "field-filter-operators-enabled?"

// The name of the setting defining the locale of the instance.
const SiteLocale = "site-locale"

// The settings known to the store.
var Definitions = []Definition{
	{Name: FieldFilterOperatorsEnabled, Type: BooleanSetting, Default: true},
	{Name: SiteLocale, Type: StringSetting, Default: "en"},
}

// Returns the definition of a setting, accepting the name of boolean settings without their trailing `?`.
func lookupDefinition(name string) (Definition, bool) {
	for _, d := range Definitions {
		if d.Name == name || strings.TrimSuffix(d.Name, "?") == name {
			return d, true
		}
	}

	return Definition{}, false
}

// Converts the name of an environment variable to the name of a setting, following the Metabase convention:
// `MB_FIELD_FILTER_OPERATORS_ENABLED` corresponds to `field-filter-operators-enabled?`.
// Returns an empty string if the variable does not correspond to a known setting.
func settingNameFromEnvironmentVariable(variable string) string {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(variable, EnvironmentVariablesPrefix)), "_", "-")

	d, ok := lookupDefinition(name)
	if !ok {
		return ""
	}

	return d.Name
}
