package query

import (
	"encoding/json"
	"testing"

	"github.com/flovouin/terraform-provider-mbparams/internal/metadata"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
	"github.com/google/go-cmp/cmp"
)

func loadSampleMetadata(t *testing.T) *metadata.Metadata {
	t.Helper()

	md, err := metadata.Load("testdata/sample_metadata.json")
	if err != nil {
		t.Fatalf("failed to load sample metadata: %v", err)
	}

	return md
}

func parseCard(t *testing.T, cardJson string) metabase.Card {
	t.Helper()

	var card metabase.Card
	err := json.Unmarshal([]byte(cardJson), &card)
	if err != nil {
		t.Fatalf("failed to parse card: %v", err)
	}

	return card
}

const structuredCard = `{
  "name": "Orders with products",
  "display": "table",
  "dataset_query": {
    "type": "query",
    "database": 1,
    "query": {
      "source-table": 1,
      "expressions": {
        "Discounted": ["*", ["field", 4, null], 0.9],
        "Label": ["concat", "#", ["field", 1, null]]
      },
      "joins": [
        {
          "alias": "Products",
          "source-table": 3,
          "condition": ["=", ["field", 3, null], ["field", 20, {"join-alias": "Products"}]]
        }
      ]
    }
  }
}`

type sectionSummary struct {
	Name  string
	Items []string
}

func summarize(sections []DimensionSection) []sectionSummary {
	summary := make([]sectionSummary, 0, len(sections))
	for _, s := range sections {
		items := make([]string, 0, len(s.Items))
		for _, i := range s.Items {
			items = append(items, i.Dimension.DisplayName())
		}
		summary = append(summary, sectionSummary{Name: s.Name, Items: items})
	}
	return summary
}

func TestStructuredQueryDimensionOptions(t *testing.T) {
	md := loadSampleMetadata(t)
	question := NewQuestion(parseCard(t, structuredCard), md)

	if !question.IsStructured() {
		t.Fatal("expected the question to be structured")
	}

	options := question.Query().DimensionOptions(nil)

	expected := []sectionSummary{
		{Name: "Orders", Items: []string{"ID", "User ID", "Product ID", "Subtotal", "Created At", "Discounted", "Label"}},
		{Name: "Products", Items: []string{"ID", "Category", "Price"}},
		{Name: "User", Items: []string{"ID", "Name", "City", "State", "Latitude"}},
		{Name: "Product", Items: []string{"ID", "Category", "Price"}},
	}

	if diff := cmp.Diff(expected, summarize(options.Sections())); diff != "" {
		t.Errorf("unexpected sections (-want +got):\n%s", diff)
	}

	if options.Count() != 18 {
		t.Errorf("expected 18 dimensions, got %d", options.Count())
	}
}

func TestStructuredQueryDimensionMBQL(t *testing.T) {
	md := loadSampleMetadata(t)
	options := NewQuestion(parseCard(t, structuredCard), md).Query().DimensionOptions(nil)
	sections := options.Sections()

	testCases := []struct {
		name     string
		section  int
		item     int
		expected []any
	}{
		{"source table field", 0, 3, []any{"field", 4, nil}},
		{"expression", 0, 5, []any{"expression", "Discounted"}},
		{"joined field", 1, 1, []any{"field", 21, map[string]any{"join-alias": "Products"}}},
		{"field through foreign key", 2, 2, []any{"field", 12, map[string]any{"source-field": 2}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := sections[tc.section].Items[tc.item].Dimension.MBQL()
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("unexpected MBQL (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpressionTypes(t *testing.T) {
	md := loadSampleMetadata(t)
	options := NewQuestion(parseCard(t, structuredCard), md).Query().DimensionOptions(nil)
	main := options.Sections()[0].Items

	discounted := main[5].Dimension
	if !discounted.Field().IsNumber() || discounted.Icon() != "int" {
		t.Errorf("expected the arithmetic expression to be a number, got icon %q", discounted.Icon())
	}

	label := main[6].Dimension
	if !label.Field().IsString() || label.Icon() != "string" {
		t.Errorf("expected the concat expression to be a string, got icon %q", label.Icon())
	}
}

func TestStructuredQueryDimensionOptionsWithFilter(t *testing.T) {
	md := loadSampleMetadata(t)
	q := NewQuestion(parseCard(t, structuredCard), md).Query()

	onlyDates := func(d Dimension) bool {
		return d.Field() != nil && d.Field().IsDate()
	}

	expected := []sectionSummary{
		{Name: "Orders", Items: []string{"Created At"}},
	}

	if diff := cmp.Diff(expected, summarize(q.DimensionOptions(onlyDates).Sections())); diff != "" {
		t.Errorf("unexpected sections (-want +got):\n%s", diff)
	}
}

func TestStructuredQueryWithoutMetadata(t *testing.T) {
	q := NewQuestion(parseCard(t, structuredCard), nil).Query()

	// Only the expressions can be resolved without metadata.
	expected := []sectionSummary{
		{Name: "", Items: []string{"Discounted", "Label"}},
	}

	if diff := cmp.Diff(expected, summarize(q.DimensionOptions(nil).Sections())); diff != "" {
		t.Errorf("unexpected sections (-want +got):\n%s", diff)
	}
}

const nativeCard = `{
  "name": "Native orders",
  "display": "table",
  "dataset_query": {
    "type": "native",
    "database": 1,
    "native": {
      "query": "SELECT * FROM ORDERS WHERE {{user_name}} AND {{created}} AND {{category}} {{snippet: active}}",
      "template-tags": {
        "user_name": {"name": "user_name", "display-name": "User name", "type": "text"},
        "created": {"name": "created", "display-name": "Created", "type": "date"},
        "category": {"name": "category", "display-name": "Category filter", "type": "dimension", "dimension": ["field", 21, null], "widget-type": "string/="},
        "snippet: active": {"name": "snippet: active", "display-name": "Active", "type": "snippet"},
        "legacy": {"display-name": "Legacy", "type": "dimension", "dimension": ["field-id", 12]}
      }
    }
  }
}`

func TestNativeQueryVariables(t *testing.T) {
	md := loadSampleMetadata(t)
	question := NewQuestion(parseCard(t, nativeCard), md)

	if question.IsStructured() {
		t.Fatal("expected the question to be native")
	}

	vq, ok := question.Query().(VariableQuery)
	if !ok {
		t.Fatal("expected a native query to declare variables")
	}

	variables := vq.Variables(nil)

	names := make([]string, 0, len(variables))
	icons := make([]string, 0, len(variables))
	for _, v := range variables {
		names = append(names, v.DisplayName())
		icons = append(icons, v.Icon())
	}

	if diff := cmp.Diff([]string{"User name", "Created", "Active"}, names); diff != "" {
		t.Errorf("unexpected variables (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"string", "calendar", "unknown"}, icons); diff != "" {
		t.Errorf("unexpected icons (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"template-tag", "user_name"}, variables[0].MBQL()); diff != "" {
		t.Errorf("unexpected MBQL (-want +got):\n%s", diff)
	}
}

func TestNativeQueryDimensionOptions(t *testing.T) {
	md := loadSampleMetadata(t)
	sections := NewQuestion(parseCard(t, nativeCard), md).Query().DimensionOptions(nil).Sections()

	expected := []sectionSummary{
		{Name: "", Items: []string{"Category filter", "Legacy"}},
	}
	if diff := cmp.Diff(expected, summarize(sections)); diff != "" {
		t.Fatalf("unexpected sections (-want +got):\n%s", diff)
	}

	category := sections[0].Items[0].Dimension
	if category.Field() == nil || category.Field().Id != 21 {
		t.Errorf("expected the field filter to resolve to field 21")
	}
	if diff := cmp.Diff([]any{"template-tag", "category"}, category.MBQL()); diff != "" {
		t.Errorf("unexpected MBQL (-want +got):\n%s", diff)
	}

	legacy := sections[0].Items[1].Dimension
	if legacy.Field() == nil || !legacy.Field().IsCity() || legacy.Icon() != "location" {
		t.Errorf("expected the legacy field reference to resolve to the city field")
	}
}

func TestUnknownQueryType(t *testing.T) {
	card := parseCard(t, `{"display": "table", "dataset_query": {"type": "internal"}}`)
	q := NewQuestion(card, nil).Query()

	if q.DimensionOptions(nil).Count() != 0 {
		t.Error("expected no dimension for an unknown query type")
	}

	vq, ok := q.(VariableQuery)
	if !ok || len(vq.Variables(nil)) != 0 {
		t.Error("expected no variable for an unknown query type")
	}
}

func TestMalformedStructuredQuery(t *testing.T) {
	card := parseCard(t, `{"display": "table", "dataset_query": {"type": "query", "query": {"joins": "nope"}}}`)
	q := NewQuestion(card, nil).Query()

	if q.DimensionOptions(nil).Count() != 0 {
		t.Error("expected no dimension for a malformed query")
	}
}

func TestParseFieldRef(t *testing.T) {
	md := loadSampleMetadata(t)

	testCases := []struct {
		name     string
		ref      []any
		expected []any
	}{
		{"current field", []any{"field", 4.0, nil}, []any{"field", 4, nil}},
		{"field by name", []any{"field", "total", map[string]any{"base-type": "type/Float"}}, []any{"field", "total", map[string]any{"base-type": "type/Float"}}},
		{"legacy foreign key", []any{"fk->", []any{"field-id", 2.0}, []any{"field-id", 11.0}}, []any{"field", 11, map[string]any{"source-field": 2}}},
		{"legacy joined field", []any{"joined-field", "P", []any{"field-id", 21.0}}, []any{"field", 21, map[string]any{"join-alias": "P"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := parseFieldRef(tc.ref, md)
			if d == nil {
				t.Fatal("failed to parse field reference")
			}
			if diff := cmp.Diff(tc.expected, d.MBQL()); diff != "" {
				t.Errorf("unexpected MBQL (-want +got):\n%s", diff)
			}
		})
	}

	if parseFieldRef([]any{"aggregation", 0.0}, md) != nil {
		t.Error("expected aggregation references not to be parsed as fields")
	}
}
