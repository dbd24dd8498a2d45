package planmodifiers

import (
	"context"

	"github.com/flovouin/terraform-provider-mbparams/internal/parameters"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// Plans the value of a slug attribute from the name stored in another string attribute, such that the slug is known
// as soon as the name is.
func SlugFromAttribute(name path.Path) planmodifier.String {
	return slugFromAttributeModifier{name: name}
}

// slugFromAttributeModifier implements the plan modifier.
type slugFromAttributeModifier struct {
	name path.Path
}

func (m slugFromAttributeModifier) Description(_ context.Context) string {
	return "The value of this attribute is the slug of the name attribute."
}

func (m slugFromAttributeModifier) MarkdownDescription(_ context.Context) string {
	return "The value of this attribute is the slug of the name attribute."
}

func (m slugFromAttributeModifier) PlanModifyString(ctx context.Context, req planmodifier.StringRequest, resp *planmodifier.StringResponse) {
	// The resource is being destroyed.
	if req.Plan.Raw.IsNull() {
		return
	}

	var name types.String
	resp.Diagnostics.Append(req.Plan.GetAttribute(ctx, m.name, &name)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// The name is computed when not configured, in which case the slug will only be known once it is.
	if name.IsUnknown() || name.IsNull() {
		return
	}

	resp.PlanValue = types.StringValue(parameters.Slugify(name.ValueString()))
}
