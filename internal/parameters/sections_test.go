package parameters

import (
	"testing"

	"github.com/flovouin/terraform-provider-mbparams/internal/i18n"
	"github.com/flovouin/terraform-provider-mbparams/internal/settings"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
	"github.com/google/go-cmp/cmp"
)

// Settings with a fixed value for the field filter operators flag.
type staticSettings bool

func (s staticSettings) Bool(name string) bool {
	return name == settings.FieldFilterOperatorsEnabled && bool(s)
}

func sectionIds(sections []metabase.ParameterSection) []string {
	ids := make([]string, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.Id)
	}
	return ids
}

func optionTypes(options []metabase.ParameterOption) []string {
	types := make([]string, 0, len(options))
	for _, o := range options {
		types = append(types, o.Type)
	}
	return types
}

func TestSectionsWithOperators(t *testing.T) {
	sections := Sections(staticSettings(true), nil)

	if diff := cmp.Diff([]string{"date", "location", "id", "number", "category"}, sectionIds(sections)); diff != "" {
		t.Fatalf("unexpected sections (-want +got):\n%s", diff)
	}

	location := sections[1]
	expectedLocation := []metabase.ParameterOption{
		{Type: "string/=", Operator: "=", Name: "Dropdown", Description: "Select one or more values from a list or search box.", CombinedName: "Location", SectionId: "location"},
		{Type: "string/!=", Operator: "!=", Name: "Is not", Description: "Exclude one or more specific values.", CombinedName: "Location is not", SectionId: "location"},
		{Type: "string/contains", Operator: "contains", Name: "Contains", Description: "Match values that contain the entered text.", CombinedName: "Location contains", SectionId: "location"},
		{Type: "string/does-not-contain", Operator: "does-not-contain", Name: "Does not contain", Description: "Filter out values that contain the entered text.", CombinedName: "Location does not contain", SectionId: "location"},
		{Type: "string/starts-with", Operator: "starts-with", Name: "Starts with", Description: "Match values that begin with the entered text.", CombinedName: "Location starts with", SectionId: "location"},
		{Type: "string/ends-with", Operator: "ends-with", Name: "Ends with", Description: "Match values that end with the entered text.", CombinedName: "Location ends with", SectionId: "location"},
	}
	if diff := cmp.Diff(expectedLocation, location.Options); diff != "" {
		t.Errorf("unexpected location options (-want +got):\n%s", diff)
	}

	category := sections[4]
	if category.Name != "Other Categories" || category.Options[0].CombinedName != "Category" || category.Options[2].CombinedName != "Category contains" {
		t.Errorf("unexpected category section: %+v", category)
	}

	number := sections[3]
	if diff := cmp.Diff([]string{"number/=", "number/!=", "number/between", "number/>=", "number/<="}, optionTypes(number.Options)); diff != "" {
		t.Errorf("unexpected number options (-want +got):\n%s", diff)
	}
	for _, o := range number.Options {
		if o.CombinedName != o.Name || o.SectionId != "number" {
			t.Errorf("unexpected number option: %+v", o)
		}
	}
}

func TestSectionsWithoutOperators(t *testing.T) {
	sections := Sections(staticSettings(false), nil)

	if diff := cmp.Diff([]string{"date", "location", "id", "category"}, sectionIds(sections)); diff != "" {
		t.Fatalf("unexpected sections (-want +got):\n%s", diff)
	}

	expectedLocation := []string{"location/city", "location/state", "location/zip_code", "location/country"}
	if diff := cmp.Diff(expectedLocation, optionTypes(sections[1].Options)); diff != "" {
		t.Errorf("unexpected location options (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"category"}, optionTypes(sections[3].Options)); diff != "" {
		t.Errorf("unexpected category options (-want +got):\n%s", diff)
	}
}

func TestSectionsCommonToAllSettings(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		sections := Sections(staticSettings(enabled), nil)

		date := sections[0]
		if date.Name != "Time" || date.Description != "Date range, relative date, time of day, etc." {
			t.Errorf("unexpected date section: %+v", date)
		}
		expectedDates := []string{"date/month-year", "date/quarter-year", "date/single", "date/range", "date/relative", "date/all-options"}
		if diff := cmp.Diff(expectedDates, optionTypes(date.Options)); diff != "" {
			t.Errorf("unexpected date options (-want +got):\n%s", diff)
		}
		for _, o := range date.Options {
			if o.SectionId != "date" || o.CombinedName != o.Name {
				t.Errorf("unexpected date option: %+v", o)
			}
		}

		id := sections[2]
		expectedId := []metabase.ParameterOption{{Type: "id", Name: "ID", SectionId: "id"}}
		if diff := cmp.Diff(expectedId, id.Options); diff != "" {
			t.Errorf("unexpected id options (-want +got):\n%s", diff)
		}
	}
}

func TestSectionsWithSettingsStore(t *testing.T) {
	store := settings.NewStore()
	if len(Sections(store, nil)) != 5 {
		t.Error("expected the number section with the default settings")
	}

	if err := store.Set(settings.FieldFilterOperatorsEnabled, false); err != nil {
		t.Fatal(err)
	}
	if len(Sections(store, nil)) != 4 {
		t.Error("expected no number section once operators are disabled")
	}

	// Without any settings, operators are considered disabled.
	if len(Sections(nil, nil)) != 4 {
		t.Error("expected no number section without settings")
	}
}

func TestSectionsAreLocalized(t *testing.T) {
	sections := Sections(staticSettings(true), i18n.New("fr"))

	if sections[4].Name != "Autres catégories" {
		t.Errorf("unexpected section name %q", sections[4].Name)
	}
	if got := sections[1].Options[2].CombinedName; got != "Lieu contient" {
		t.Errorf("unexpected combined name %q", got)
	}
}

func TestOperatorDisplayName(t *testing.T) {
	testCases := []struct {
		option       metabase.ParameterOption
		operatorType string
		expected     string
	}{
		{metabase.ParameterOption{Name: "Single Date", Operator: "single"}, DateOperators, "Single Date"},
		{metabase.ParameterOption{Name: "Between", Operator: "between"}, NumberOperators, "Between"},
		{metabase.ParameterOption{Name: "Dropdown", Operator: "="}, StringOperators, "Location"},
		{metabase.ParameterOption{Name: "Starts with", Operator: "starts-with"}, StringOperators, "Location starts with"},
	}

	for _, tc := range testCases {
		if got := OperatorDisplayName(tc.option, tc.operatorType, "Location"); got != tc.expected {
			t.Errorf("expected %q, got %q", tc.expected, got)
		}
	}
}

func TestOperatorOptionsUnknownKind(t *testing.T) {
	if OperatorOptions("boolean", nil) != nil {
		t.Error("expected no options for an unknown kind")
	}
}

func TestFindOption(t *testing.T) {
	sections := Sections(staticSettings(true), nil)

	o, ok := FindOption(sections, "string/contains", "category")
	if !ok || o.SectionId != "category" || o.CombinedName != "Category contains" {
		t.Errorf("unexpected option %+v", o)
	}

	o, ok = FindOption(sections, "string/contains", "")
	if !ok || o.SectionId != "location" {
		t.Errorf("expected the first matching option, got %+v", o)
	}

	if _, ok := FindOption(sections, "string/contains", "date"); ok {
		t.Error("expected no string option in the date section")
	}
}
