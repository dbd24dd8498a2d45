package provider

import (
	"context"

	"github.com/flovouin/terraform-provider-mbparams/internal/metadata"
	"github.com/flovouin/terraform-provider-mbparams/internal/parameters"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensures provider defined types fully satisfy framework interfaces.
var _ datasource.DataSourceWithConfigure = &MappingOptionsDataSource{}

// Creates a new mapping options data source.
func NewMappingOptionsDataSource() datasource.DataSource {
	return &MappingOptionsDataSource{
		MbParamsBaseDataSource{name: "mapping_options"},
	}
}

// A data source listing the columns and variables of a card that a dashboard parameter can be mapped to.
type MappingOptionsDataSource struct {
	MbParamsBaseDataSource
}

// The Terraform model for the mapping options of a card.
type MappingOptionsDataSourceModel struct {
	CardJson      types.String         `tfsdk:"card_json"`      // The card, as returned by the Metabase API.
	MetadataJson  types.String         `tfsdk:"metadata_json"`  // The tables (with their fields) the card can reference.
	ParameterJson types.String         `tfsdk:"parameter_json"` // The parameter restricting the options, if any.
	Options       []MappingOptionModel `tfsdk:"options"`        // The options, in display order.
}

// The Terraform model for a single mapping option.
type MappingOptionModel struct {
	SectionName types.String `tfsdk:"section_name"`
	Name        types.String `tfsdk:"name"`
	Icon        types.String `tfsdk:"icon"`
	TargetJson  types.String `tfsdk:"target_json"`
	IsForeign   types.Bool   `tfsdk:"is_foreign"`
}

func (d *MappingOptionsDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: `The columns and variables of a card (question) that a dashboard parameter can be mapped to.

For questions built with the query builder, options are the columns of the source table, the custom expressions, and the columns of joined tables or of tables reached through foreign keys. For SQL questions, options are the variables followed by the field filters. Text cards do not have any option.

The ` + "`target_json`" + ` of an option can be used in the ` + "`parameter_mappings`" + ` of a dashboard card.`,

		Attributes: map[string]schema.Attribute{
			"card_json": schema.StringAttribute{
				MarkdownDescription: "The card, as a JSON object containing at least its `display` and `dataset_query`.",
				Required:            true,
			},
			"metadata_json": schema.StringAttribute{
				MarkdownDescription: "A JSON list of the tables the card can reference, including their `fields`. Without it, columns cannot be resolved.",
				Optional:            true,
			},
			"parameter_json": schema.StringAttribute{
				MarkdownDescription: "The parameter (as a JSON object) for which options are listed. Only the options compatible with its `type` are returned. If it is not set, all options are returned.",
				Optional:            true,
			},
			"options": schema.ListNestedAttribute{
				MarkdownDescription: "The targets the parameter can be mapped to.",
				Computed:            true,
				NestedObject: schema.NestedAttributeObject{
					Attributes: map[string]schema.Attribute{
						"section_name": schema.StringAttribute{
							MarkdownDescription: "The table the column belongs to, for questions built with the query builder.",
							Computed:            true,
						},
						"name": schema.StringAttribute{
							MarkdownDescription: "The name of the column or variable.",
							Computed:            true,
						},
						"icon": schema.StringAttribute{
							MarkdownDescription: "The icon displayed next to the option.",
							Computed:            true,
						},
						"target_json": schema.StringAttribute{
							MarkdownDescription: "The JSON reference to the column or variable, e.g. `[\"dimension\",[\"field\",12,null]]`.",
							Computed:            true,
						},
						"is_foreign": schema.BoolAttribute{
							MarkdownDescription: "Whether the column is reached through a foreign key or a join.",
							Computed:            true,
						},
					},
				},
			},
		},
	}
}

// Makes the Terraform models for mapping options.
func makeMappingOptionModels(options []metabase.ParameterMappingUIOption) ([]MappingOptionModel, diag.Diagnostics) {
	var diags diag.Diagnostics

	models := make([]MappingOptionModel, 0, len(options))
	for _, o := range options {
		target, targetDiags := jsonStringValue(o.Target)
		diags.Append(targetDiags...)
		if diags.HasError() {
			return nil, diags
		}

		models = append(models, MappingOptionModel{
			SectionName: stringValueOrNull(o.SectionName),
			Name:        types.StringValue(o.Name),
			Icon:        types.StringValue(o.Icon),
			TargetJson:  target,
			IsForeign:   types.BoolValue(o.IsForeign),
		})
	}

	return models, diags
}

// Resolves the mapping options from the JSON inputs of the data source.
func resolveMappingOptions(data MappingOptionsDataSourceModel) ([]metabase.ParameterMappingUIOption, diag.Diagnostics) {
	var diags diag.Diagnostics

	card, cardDiags := parseJSONAttribute[metabase.Card](data.CardJson, "card_json")
	diags.Append(cardDiags...)
	if diags.HasError() {
		return nil, diags
	}
	if card == nil {
		diags.AddError("The card should be known to list mapping options.", "")
		return nil, diags
	}

	var md *metadata.Metadata
	if raw := valueStringOrNull(data.MetadataJson); raw != nil {
		var err error
		md, err = metadata.Parse([]byte(*raw))
		if err != nil {
			diags.AddError("Unable to parse the JSON content of attribute 'metadata_json'.", err.Error())
			return nil, diags
		}
	}

	parameter, parameterDiags := parseJSONAttribute[metabase.Parameter](data.ParameterJson, "parameter_json")
	diags.Append(parameterDiags...)
	if diags.HasError() {
		return nil, diags
	}

	return parameters.MappingOptions(md, parameter, *card), diags
}

func (d *MappingOptionsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data MappingOptionsDataSourceModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	options, diags := resolveMappingOptions(data)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Debug(ctx, "Resolved parameter mapping options", map[string]interface{}{
		"count": len(options),
	})

	models, diags := makeMappingOptionModels(options)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
	data.Options = models

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
