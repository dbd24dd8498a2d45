package planmodifiers

import (
	"context"
	"reflect"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/tfsdk"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// This modifier has a similar behavior to `UseStateForUnknown`.
// The state value will be used as the plan value unless one of the specified attributes has changed.
// All attributes should be strings, e.g. the JSON-encoded inputs a computed attribute is derived from.
func UseStateForUnknownIfAttributesUnchanged(attributes ...path.Path) planmodifier.String {
	return useStateForUnknownIfAttributesUnchangedModifier{attributes: attributes}
}

// useStateForUnknownIfAttributesUnchangedModifier implements the plan modifier.
type useStateForUnknownIfAttributesUnchangedModifier struct {
	attributes []path.Path
}

func (m useStateForUnknownIfAttributesUnchangedModifier) Description(_ context.Context) string {
	return "Once set, the value of this attribute in state will not change unless one of the attributes it depends on changes."
}

func (m useStateForUnknownIfAttributesUnchangedModifier) MarkdownDescription(_ context.Context) string {
	return "Once set, the value of this attribute in state will not change unless one of the attributes it depends on changes."
}

// Returns whether any of the attributes referenced by the modifier has changed between the given state and plan.
func (m useStateForUnknownIfAttributesUnchangedModifier) haveAttributesChanged(ctx context.Context, state tfsdk.State, plan tfsdk.Plan) (bool, diag.Diagnostics) {
	var diags diag.Diagnostics

	for _, attribute := range m.attributes {
		var stateValue types.String
		diags.Append(state.GetAttribute(ctx, attribute, &stateValue)...)
		if diags.HasError() {
			return false, diags
		}

		var planValue types.String
		diags.Append(plan.GetAttribute(ctx, attribute, &planValue)...)
		if diags.HasError() {
			return false, diags
		}

		if !reflect.DeepEqual(planValue, stateValue) {
			return true, diags
		}
	}

	return false, diags
}

func (m useStateForUnknownIfAttributesUnchangedModifier) PlanModifyString(ctx context.Context, req planmodifier.StringRequest, resp *planmodifier.StringResponse) {
	// Do nothing if there is no state value, if there is a known planned value, or if there is an unknown configuration
	// value, otherwise interpolation gets messed up.
	if req.StateValue.IsNull() || !req.PlanValue.IsUnknown() || req.ConfigValue.IsUnknown() {
		return
	}

	hasChanged, diags := m.haveAttributesChanged(ctx, req.State, req.Plan)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	// If none of the attributes has changed, the plan value can be marked as known.
	if !hasChanged {
		resp.PlanValue = req.StateValue
	}
}
