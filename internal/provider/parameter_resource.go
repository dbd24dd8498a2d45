package provider

import (
	"context"
	"fmt"

	"github.com/flovouin/terraform-provider-mbparams/internal/parameters"
	"github.com/flovouin/terraform-provider-mbparams/internal/planmodifiers"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensures provider defined types fully satisfy framework interfaces.
var _ resource.ResourceWithConfigure = &ParameterResource{}

// Creates a new parameter resource.
func NewParameterResource() resource.Resource {
	return &ParameterResource{
		MbParamsBaseResource{name: "parameter"},
	}
}

// A resource generating the definition of a dashboard parameter (filter).
// The parameter only lives in the Terraform state, its JSON definition is meant to be used in the `parameters_json`
// of a dashboard.
type ParameterResource struct {
	MbParamsBaseResource
}

// The Terraform model for a parameter.
type ParameterResourceModel struct {
	Id                     types.String `tfsdk:"id"`                       // The random ID of the parameter within the dashboard.
	Type                   types.String `tfsdk:"type"`                     // The type of the option the parameter is created from.
	SectionId              types.String `tfsdk:"section_id"`               // The section of the option.
	Name                   types.String `tfsdk:"name"`                     // The display name of the parameter.
	ExistingParametersJson types.String `tfsdk:"existing_parameters_json"` // The other parameters of the dashboard.
	Default                types.String `tfsdk:"default"`                  // The default value of the parameter.
	Slug                   types.String `tfsdk:"slug"`                     // The slug derived from the name.
	ParameterJson          types.String `tfsdk:"parameter_json"`           // The full definition of the parameter.
}

func (r *ParameterResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: `A Metabase dashboard parameter (filter), created from one of the options listed by the ` + "`mbparams_sections`" + ` data source.

The parameter is not sent to Metabase. Its ` + "`parameter_json`" + ` should be added to the ` + "`parameters_json`" + ` of a dashboard, and its ` + "`id`" + ` used in the parameter mappings of the dashboard cards.

The ` + "`id`" + ` is random and assigned once, such that renaming the parameter or changing its default value does not break the mappings.`,

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				MarkdownDescription: "The random hexadecimal ID of the parameter.",
				Computed:            true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"type": schema.StringAttribute{
				MarkdownDescription: "The type of the option the parameter is created from, e.g. `date/month-year` or `string/=`.",
				Required:            true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
			},
			"section_id": schema.StringAttribute{
				MarkdownDescription: "The section of the option, e.g. `location`. Some types, like `string/=`, are offered in several sections. Defaults to the first section offering the type.",
				Optional:            true,
				Computed:            true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
					stringplanmodifier.RequiresReplace(),
				},
			},
			"name": schema.StringAttribute{
				MarkdownDescription: "The display name of the parameter. Defaults to the name of the option, made unique among the existing parameters. It cannot be empty.",
				Optional:            true,
				Computed:            true,
				// An empty name would be replaced by `unnamed`, which differs from the configuration.
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
				PlanModifiers: []planmodifier.String{
					planmodifiers.UseStateForUnknownIfAttributesUnchanged(path.Root("existing_parameters_json")),
				},
			},
			"existing_parameters_json": schema.StringAttribute{
				MarkdownDescription: "The JSON list of the other parameters of the dashboard, used to make the default name unique.",
				Optional:            true,
			},
			"default": schema.StringAttribute{
				MarkdownDescription: "The default value of the parameter.",
				Optional:            true,
			},
			"slug": schema.StringAttribute{
				MarkdownDescription: "The URL-safe identifier of the parameter, derived from its name.",
				Computed:            true,
				PlanModifiers: []planmodifier.String{
					planmodifiers.UseStateForUnknownIfAttributesUnchanged(path.Root("existing_parameters_json")),
					planmodifiers.SlugFromAttribute(path.Root("name")),
				},
			},
			"parameter_json": schema.StringAttribute{
				MarkdownDescription: "The JSON definition of the parameter, as expected in the `parameters_json` of a dashboard.",
				Computed:            true,
				PlanModifiers: []planmodifier.String{
					planmodifiers.UseStateForUnknownIfAttributesUnchanged(
						path.Root("name"),
						path.Root("default"),
						path.Root("existing_parameters_json"),
					),
				},
			},
		},
	}
}

// Updates the given `ParameterResourceModel` from a parameter.
func updateModelFromParameter(p metabase.Parameter, data *ParameterResourceModel) diag.Diagnostics {
	var diags diag.Diagnostics

	data.Id = types.StringValue(p.Id)
	data.Type = types.StringValue(p.Type)
	data.SectionId = stringValueOrNull(p.SectionId)
	data.Name = types.StringValue(p.Name)
	data.Slug = types.StringValue(p.Slug)

	parameterJson, jsonDiags := jsonStringValue(p)
	diags.Append(jsonDiags...)
	if diags.HasError() {
		return diags
	}
	data.ParameterJson = parameterJson

	return diags
}

// Builds the parameter described by the model. If `id` is not empty, it replaces the random ID assigned by the
// factory.
func (r *ParameterResource) makeParameter(data ParameterResourceModel, id string) (*metabase.Parameter, diag.Diagnostics) {
	var diags diag.Diagnostics

	pd := r.providerData()
	sections := parameters.Sections(pd.Settings, pd.Translator)

	option, found := parameters.FindOption(sections, data.Type.ValueString(), data.SectionId.ValueString())
	if !found {
		diags.AddAttributeError(
			path.Root("type"),
			"Unknown parameter type.",
			fmt.Sprintf("No option of type '%s' in section '%s'. Use the mbparams_sections data source to list available options.", data.Type.ValueString(), data.SectionId.ValueString()),
		)
		return nil, diags
	}

	existing, existingDiags := parseJSONAttribute[[]metabase.Parameter](data.ExistingParametersJson, "existing_parameters_json")
	diags.Append(existingDiags...)
	if diags.HasError() {
		return nil, diags
	}

	var others []metabase.Parameter
	if existing != nil {
		for _, p := range *existing {
			// The parameter itself may be listed when the dashboard parameters are built from the resources.
			if len(id) > 0 && p.Id == id {
				continue
			}
			others = append(others, p)
		}
	}

	p := pd.Factory.CreateParameter(option, others)
	if len(id) > 0 {
		p.Id = id
	}

	if name := valueStringOrNull(data.Name); name != nil {
		p = parameters.SetParameterName(p, *name)
	}

	if value := valueStringOrNull(data.Default); value != nil {
		p = parameters.SetParameterDefaultValue(p, *value)
	}

	return &p, diags
}

func (r *ParameterResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	var data *ParameterResourceModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	p, diags := r.makeParameter(*data, "")
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Created dashboard parameter", map[string]interface{}{
		"id":   p.Id,
		"slug": p.Slug,
		"type": p.Type,
	})

	resp.Diagnostics.Append(updateModelFromParameter(*p, data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

// The parameter only exists in the state, which is kept as is.
func (r *ParameterResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	var data *ParameterResourceModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *ParameterResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	var data *ParameterResourceModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	var state *ParameterResourceModel

	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	p, diags := r.makeParameter(*data, state.Id.ValueString())
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updated dashboard parameter", map[string]interface{}{
		"id":   p.Id,
		"slug": p.Slug,
	})

	resp.Diagnostics.Append(updateModelFromParameter(*p, data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *ParameterResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	var data *ParameterResourceModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Removed dashboard parameter", map[string]interface{}{
		"id": data.Id.ValueString(),
	})
}
