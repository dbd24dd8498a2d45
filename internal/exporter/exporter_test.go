package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flovouin/terraform-provider-mbparams/metabase"
	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

func TestMakeUniqueSlug(t *testing.T) {
	existing := make(map[string]bool)

	slugs := []string{
		makeUniqueSlug("Sales Overview", existing),
		makeUniqueSlug("Sales overview", existing),
		makeUniqueSlug("sales-overview", existing),
		makeUniqueSlug("2024 KPIs", existing),
		makeUniqueSlug("", existing),
		makeUniqueSlug(strings.Repeat("a", 200), existing),
	}

	expected := []string{
		"sales_overview",
		"sales_overview_001",
		"sales_overview_002",
		"_2024_kpis",
		"unnamed",
		strings.Repeat("a", maxSlugLength),
	}
	if diff := cmp.Diff(expected, slugs); diff != "" {
		t.Errorf("unexpected slugs (-want +got):\n%s", diff)
	}

	for _, s := range slugs {
		if !existing[s] {
			t.Errorf("expected slug %q to be registered", s)
		}
	}
}

var testParameters = []metabase.Parameter{
	{Id: "a1", Name: "Month and Year", Slug: "month_and_year", Type: "date/month-year", SectionId: "date"},
	{Id: "b2", Name: "State", Slug: "state", Type: "string/=", SectionId: "location", Default: []any{"CA", "NY"}},
	{Id: "c3", Name: "Category", Slug: "category", Type: "category", Default: "Widget"},
}

// Parses generated HCL, and returns the blocks of the file.
func parseHcl(t *testing.T, src []byte) hclsyntax.Blocks {
	t.Helper()

	file, diags := hclsyntax.ParseConfig(src, "test.tf", hcl.InitialPos)
	if diags.HasErrors() {
		t.Fatalf("generated HCL is invalid: %s\n%s", diags.Error(), src)
	}

	return file.Body.(*hclsyntax.Body).Blocks
}

// Returns the value of a string attribute of a block, or an empty string if it is not defined.
func stringAttribute(t *testing.T, block *hclsyntax.Block, name string) string {
	t.Helper()

	attribute, ok := block.Body.Attributes[name]
	if !ok {
		return ""
	}

	value, diags := attribute.Expr.Value(nil)
	if diags.HasErrors() {
		t.Fatalf("failed to evaluate attribute %s: %s", name, diags.Error())
	}

	return value.AsString()
}

func TestExportDashboard(t *testing.T) {
	ec := NewExportContext()

	err := ec.ExportDashboard("Sales", testParameters)
	if err != nil {
		t.Fatalf("failed to export dashboard: %v", err)
	}

	files := ec.Hcl()
	if len(files) != 1 {
		t.Fatalf("expected a single file, got %d", len(files))
	}

	blocks := parseHcl(t, files[0])
	if len(blocks) != 4 {
		t.Fatalf("expected 3 resources and the locals, got %d blocks", len(blocks))
	}

	labels := make([][]string, 0)
	for _, b := range blocks[:3] {
		labels = append(labels, b.Labels)
	}
	expectedLabels := [][]string{
		{"mbparams_parameter", "sales_month_and_year"},
		{"mbparams_parameter", "sales_state"},
		{"mbparams_parameter", "sales_category"},
	}
	if diff := cmp.Diff(expectedLabels, labels); diff != "" {
		t.Errorf("unexpected resources (-want +got):\n%s", diff)
	}

	if stringAttribute(t, blocks[0], "type") != "date/month-year" || stringAttribute(t, blocks[0], "section_id") != "date" {
		t.Error("unexpected type or section for the first parameter")
	}
	if stringAttribute(t, blocks[0], "name") != "Month and Year" || stringAttribute(t, blocks[0], "default") != "" {
		t.Error("unexpected name or default for the first parameter")
	}
	if _, ok := blocks[1].Body.Attributes["default"]; ok {
		t.Error("expected a list of default values not to be exported as a string")
	}
	if !strings.Contains(string(files[0]), `# The default value ["CA","NY"] is not a string and cannot be exported.`) {
		t.Errorf("expected a comment about the default value that cannot be exported:\n%s", files[0])
	}
	if _, ok := blocks[2].Body.Attributes["section_id"]; ok {
		t.Error("expected no section for a legacy parameter")
	}
	if stringAttribute(t, blocks[2], "default") != "Widget" {
		t.Error("unexpected default for the last parameter")
	}

	locals := blocks[3]
	if locals.Type != "locals" {
		t.Fatalf("expected a locals block, got %s", locals.Type)
	}

	attribute, ok := locals.Body.Attributes["sales_parameters_json"]
	if !ok {
		t.Fatal("expected the local value containing the parameters")
	}

	references := make([]string, 0)
	for _, v := range attribute.Expr.Variables() {
		references = append(references, v.RootName()+"."+v[1].(hcl.TraverseAttr).Name)
	}
	expectedReferences := []string{
		"mbparams_parameter.sales_month_and_year",
		"mbparams_parameter.sales_state",
		"mbparams_parameter.sales_category",
	}
	if diff := cmp.Diff(expectedReferences, references); diff != "" {
		t.Errorf("unexpected references (-want +got):\n%s", diff)
	}
}

func TestExportDashboardsWithConflictingSlugs(t *testing.T) {
	ec := NewExportContext()

	err := ec.ExportDashboard("Sales", testParameters[:1])
	if err != nil {
		t.Fatalf("failed to export dashboard: %v", err)
	}

	err = ec.ExportDashboard("sales", []metabase.Parameter{{Id: "d4", Name: "Month and Year", Type: "date/month-year"}})
	if err != nil {
		t.Fatalf("failed to export dashboard: %v", err)
	}

	blocks := parseHcl(t, ec.Hcl()[1])
	if diff := cmp.Diff([]string{"mbparams_parameter", "sales_001_month_and_year"}, blocks[0].Labels); diff != "" {
		t.Errorf("unexpected resource (-want +got):\n%s", diff)
	}
	if _, ok := blocks[1].Body.Attributes["sales_001_parameters_json"]; !ok {
		t.Error("expected the local value to be named after the dashboard slug")
	}

	err = ec.ExportDashboard("", nil)
	if err == nil {
		t.Error("expected an error for a dashboard without a name")
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "mbparams-gen-old.tf")
	err := os.WriteFile(stale, []byte("# stale"), 0644)
	if err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	unrelated := filepath.Join(dir, "main.tf")
	err = os.WriteFile(unrelated, []byte("# kept"), 0644)
	if err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	ec := NewExportContext()
	err = ec.ExportDashboard("Sales Overview", testParameters)
	if err != nil {
		t.Fatalf("failed to export dashboard: %v", err)
	}

	written, err := ec.Write(dir, WriteOptions{ClearOutput: true})
	if err != nil {
		t.Fatalf("failed to write files: %v", err)
	}

	expectedPath := filepath.Join(dir, "mbparams-gen-sales-overview.tf")
	if diff := cmp.Diff([]string{expectedPath}, written); diff != "" {
		t.Errorf("unexpected files (-want +got):\n%s", diff)
	}

	content, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("failed to read generated file: %v", err)
	}
	if diff := cmp.Diff(string(ec.Hcl()[0]), string(content)); diff != "" {
		t.Errorf("unexpected content (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("expected previously generated files to be removed")
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Error("expected other files to be kept")
	}
}

func TestWriteWithPrefix(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	ec := NewExportContext()
	err := ec.ExportDashboard("2024 KPIs", testParameters[:1])
	if err != nil {
		t.Fatalf("failed to export dashboard: %v", err)
	}

	written, err := ec.Write(dir, WriteOptions{FileNamePrefix: "params-"})
	if err != nil {
		t.Fatalf("failed to write files: %v", err)
	}

	if diff := cmp.Diff([]string{filepath.Join(dir, "params-2024-kpis.tf")}, written); diff != "" {
		t.Errorf("unexpected files (-want +got):\n%s", diff)
	}
}
