package provider

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// Converts a possibly empty string to a Terraform `String` type, where an empty string is null.
func stringValueOrNull[T ~string](v T) types.String {
	if len(v) == 0 {
		return types.StringNull()
	}

	return types.StringValue(string(v))
}

// Returns the value of a Terraform `String` type, or `nil` if it is null or unknown.
func valueStringOrNull(v types.String) *string {
	if v.IsNull() || v.IsUnknown() {
		return nil
	}

	r := v.ValueString()
	return &r
}

// Parses the JSON content of a Terraform `String` attribute into a value of type `T`.
// Returns `nil` if the attribute is null or unknown.
func parseJSONAttribute[T any](v types.String, attribute string) (*T, diag.Diagnostics) {
	var diags diag.Diagnostics

	raw := valueStringOrNull(v)
	if raw == nil {
		return nil, diags
	}

	var value T
	err := json.Unmarshal([]byte(*raw), &value)
	if err != nil {
		diags.AddError(fmt.Sprintf("Unable to parse the JSON content of attribute '%s'.", attribute), err.Error())
		return nil, diags
	}

	return &value, diags
}

// Serializes a value to a Terraform `String` containing its JSON representation.
func jsonStringValue(v any) (types.String, diag.Diagnostics) {
	var diags diag.Diagnostics

	data, err := json.Marshal(v)
	if err != nil {
		diags.AddError("Unable to serialize value to JSON.", err.Error())
		return types.StringNull(), diags
	}

	return types.StringValue(string(data)), diags
}
