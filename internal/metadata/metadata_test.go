package metadata

import (
	"testing"

	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

func TestLoad(t *testing.T) {
	md, err := Load("testdata/sample_metadata.json")
	if err != nil {
		t.Fatalf("failed to load metadata: %v", err)
	}

	orders := md.Table(1)
	if orders == nil {
		t.Fatal("expected to find the orders table")
	}
	if orders.DisplayName() != "Orders" {
		t.Errorf("unexpected table display name %q", orders.DisplayName())
	}
	if len(orders.Fields()) != 6 {
		t.Errorf("expected 6 fields, got %d", len(orders.Fields()))
	}

	userId := md.FieldByName(1, "USER_ID")
	if userId == nil || userId.Id != 2 {
		t.Fatal("expected to find USER_ID by name")
	}
	if userId.Table() != orders {
		t.Error("expected the field to reference its table")
	}

	if md.Table(42) != nil || md.Field(42) != nil || md.FieldByName(42, "ID") != nil {
		t.Error("expected unknown tables and fields to be nil")
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"not": "a list"}`))
	if err == nil {
		t.Error("expected an error when parsing an object")
	}
}

func TestNilMetadata(t *testing.T) {
	var md *Metadata
	if md.Table(1) != nil || md.Field(1) != nil || md.FieldByName(1, "ID") != nil {
		t.Error("expected nil metadata to resolve nothing")
	}
}

func TestFieldPredicates(t *testing.T) {
	md, err := Load("testdata/sample_metadata.json")
	if err != nil {
		t.Fatalf("failed to load metadata: %v", err)
	}

	testCases := []struct {
		fieldId  int
		check    func(*Field) bool
		expected bool
	}{
		{1, (*Field).IsPK, true},
		{1, (*Field).IsID, true},
		{2, (*Field).IsFK, true},
		{2, (*Field).IsNumber, true},
		{4, (*Field).IsNumber, true},
		{4, (*Field).IsID, false},
		{5, (*Field).IsDate, true},
		{11, (*Field).IsCategory, true},
		{11, (*Field).IsLocation, false},
		{12, (*Field).IsCity, true},
		{12, (*Field).IsLocation, true},
		{12, (*Field).IsCategory, true},
		{13, (*Field).IsState, true},
		{14, (*Field).IsCoordinate, true},
		{14, (*Field).IsNumber, true},
		{21, (*Field).IsString, true},
		{21, (*Field).IsCategory, true},
	}

	for _, tc := range testCases {
		if got := tc.check(md.Field(tc.fieldId)); got != tc.expected {
			t.Errorf("field %d: expected %v, got %v", tc.fieldId, tc.expected, got)
		}
	}
}

func TestFieldIcon(t *testing.T) {
	semantic := func(s string) *string { return &s }

	testCases := []struct {
		name     string
		field    metabase.Field
		expected string
	}{
		{"date", metabase.Field{BaseType: "type/Date"}, "calendar"},
		{"city", metabase.Field{BaseType: "type/Text", SemanticType: semantic("type/City")}, "location"},
		{"latitude", metabase.Field{BaseType: "type/Float", SemanticType: semantic("type/Latitude")}, "location"},
		{"foreign key", metabase.Field{BaseType: "type/Integer", SemanticType: semantic("type/FK")}, "connections"},
		{"primary key", metabase.Field{BaseType: "type/Integer", SemanticType: semantic("type/PK")}, "label"},
		{"text", metabase.Field{BaseType: "type/Text"}, "string"},
		{"number", metabase.Field{BaseType: "type/Decimal"}, "int"},
		{"boolean", metabase.Field{BaseType: "type/Boolean"}, "io"},
		{"short type name", metabase.Field{BaseType: "Integer"}, "int"},
		{"unknown", metabase.Field{BaseType: "type/*"}, "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := &Field{Field: tc.field}
			if got := f.Icon(); got != tc.expected {
				t.Errorf("expected icon %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestTargetObjectName(t *testing.T) {
	f := &Field{Field: metabase.Field{Name: "PRODUCT_ID", DisplayName: "Product ID"}}
	if f.TargetObjectName() != "Product" {
		t.Errorf("unexpected target object name %q", f.TargetObjectName())
	}
}

func TestIsa(t *testing.T) {
	if !Isa(TypeDateTimeLTZ, TypeTemporal) {
		t.Error("expected DateTimeWithLocalTZ to derive from Temporal")
	}
	if Isa(TypeText, TypeNumber) {
		t.Error("expected Text not to derive from Number")
	}
	if Isa("", TypeNumber) {
		t.Error("expected the empty type not to derive from anything")
	}
}
