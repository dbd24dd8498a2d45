package provider

import (
	"context"

	"github.com/flovouin/terraform-provider-mbparams/internal/parameters"
	"github.com/flovouin/terraform-provider-mbparams/metabase"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensures provider defined types fully satisfy framework interfaces.
var _ datasource.DataSourceWithConfigure = &SectionsDataSource{}

// Creates a new sections data source.
func NewSectionsDataSource() datasource.DataSource {
	return &SectionsDataSource{
		MbParamsBaseDataSource{name: "sections"},
	}
}

// A data source listing the kinds of filters that can be added to a dashboard, grouped by section.
type SectionsDataSource struct {
	MbParamsBaseDataSource
}

// The Terraform model for the list of sections.
type SectionsDataSourceModel struct {
	Locale   types.String   `tfsdk:"locale"`   // The locale the names and descriptions are written in.
	Sections []SectionModel `tfsdk:"sections"` // The sections, in display order.
}

// The Terraform model for a section.
type SectionModel struct {
	Id          types.String  `tfsdk:"id"`
	Name        types.String  `tfsdk:"name"`
	Description types.String  `tfsdk:"description"`
	Options     []OptionModel `tfsdk:"options"`
}

// The Terraform model for a parameter option.
type OptionModel struct {
	Type         types.String `tfsdk:"type"`
	Operator     types.String `tfsdk:"operator"`
	Name         types.String `tfsdk:"name"`
	MenuName     types.String `tfsdk:"menu_name"`
	Description  types.String `tfsdk:"description"`
	CombinedName types.String `tfsdk:"combined_name"`
	SectionId    types.String `tfsdk:"section_id"`
}

func (d *SectionsDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: `The kinds of filters that can be added to a Metabase dashboard, grouped by section (time, location, ID, number, text or category).

The available options depend on the ` + "`field-filter-operators-enabled?`" + ` setting, and their names on the locale of the provider. The ` + "`type`" + ` and ` + "`section_id`" + ` of an option are the inputs of the ` + "`mbparams_parameter`" + ` resource.`,

		Attributes: map[string]schema.Attribute{
			"locale": schema.StringAttribute{
				MarkdownDescription: "The locale in which names and descriptions are written.",
				Computed:            true,
			},
			"sections": schema.ListNestedAttribute{
				MarkdownDescription: "The sections of filters.",
				Computed:            true,
				NestedObject: schema.NestedAttributeObject{
					Attributes: map[string]schema.Attribute{
						"id": schema.StringAttribute{
							MarkdownDescription: "The ID of the section, e.g. `date` or `location`.",
							Computed:            true,
						},
						"name": schema.StringAttribute{
							MarkdownDescription: "The name of the section.",
							Computed:            true,
						},
						"description": schema.StringAttribute{
							MarkdownDescription: "A description of the values filtered by the section.",
							Computed:            true,
						},
						"options": schema.ListNestedAttribute{
							MarkdownDescription: "The kinds of filters in the section.",
							Computed:            true,
							NestedObject: schema.NestedAttributeObject{
								Attributes: map[string]schema.Attribute{
									"type": schema.StringAttribute{
										MarkdownDescription: "The parameter type, e.g. `date/single` or `string/=`.",
										Computed:            true,
									},
									"operator": schema.StringAttribute{
										MarkdownDescription: "The operator applied by the filter, if any.",
										Computed:            true,
									},
									"name": schema.StringAttribute{
										MarkdownDescription: "The name of the option.",
										Computed:            true,
									},
									"menu_name": schema.StringAttribute{
										MarkdownDescription: "The name of the option in menus, if it differs from its name.",
										Computed:            true,
									},
									"description": schema.StringAttribute{
										MarkdownDescription: "A description of the values accepted by the filter.",
										Computed:            true,
									},
									"combined_name": schema.StringAttribute{
										MarkdownDescription: "The name combining the section and the operator, used as the default name of parameters.",
										Computed:            true,
									},
									"section_id": schema.StringAttribute{
										MarkdownDescription: "The ID of the section.",
										Computed:            true,
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// Makes the Terraform model for an option.
func makeOptionModel(o metabase.ParameterOption) OptionModel {
	return OptionModel{
		Type:         types.StringValue(o.Type),
		Operator:     stringValueOrNull(o.Operator),
		Name:         types.StringValue(o.Name),
		MenuName:     stringValueOrNull(o.MenuName),
		Description:  stringValueOrNull(o.Description),
		CombinedName: stringValueOrNull(o.CombinedName),
		SectionId:    stringValueOrNull(o.SectionId),
	}
}

// Makes the Terraform model for a list of sections.
func makeSectionModels(sections []metabase.ParameterSection) []SectionModel {
	models := make([]SectionModel, 0, len(sections))
	for _, s := range sections {
		options := make([]OptionModel, 0, len(s.Options))
		for _, o := range s.Options {
			options = append(options, makeOptionModel(o))
		}

		models = append(models, SectionModel{
			Id:          types.StringValue(s.Id),
			Name:        types.StringValue(s.Name),
			Description: types.StringValue(s.Description),
			Options:     options,
		})
	}

	return models
}

func (d *SectionsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data SectionsDataSourceModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	pd := d.providerData()
	sections := parameters.Sections(pd.Settings, pd.Translator)

	tflog.Debug(ctx, "Built parameter sections", map[string]interface{}{
		"count":  len(sections),
		"locale": pd.Translator.Tag().String(),
	})

	data.Locale = types.StringValue(pd.Translator.Tag().String())
	data.Sections = makeSectionModels(sections)

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
