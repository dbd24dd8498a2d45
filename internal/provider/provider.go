package provider

import (
	"context"

	"github.com/flovouin/terraform-provider-mbparams/internal/i18n"
	"github.com/flovouin/terraform-provider-mbparams/internal/parameters"
	"github.com/flovouin/terraform-provider-mbparams/internal/settings"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensures provider defined types fully satisfy framework interfaces.
var _ provider.ProviderWithSchema = &MbParamsProvider{}
var _ provider.ProviderWithMetadata = &MbParamsProvider{}

// Handles Metabase dashboard parameters.
type MbParamsProvider struct {
	// Version is set to the provider version on release, "dev" when the provider is built and ran locally, and "test"
	// when running acceptance testing.
	version string
}

// The Terraform model for the provider.
type MbParamsProviderModel struct {
	FieldFilterOperatorsEnabled types.Bool   `tfsdk:"field_filter_operators_enabled"` // Overrides the setting of the same name.
	Locale                      types.String `tfsdk:"locale"`                         // Overrides the site locale.
	SettingsFile                types.String `tfsdk:"settings_file"`                  // A YAML file containing Metabase settings.
}

// The data passed by the provider to its resources and data sources.
type ProviderData struct {
	Settings   *settings.Store     // The Metabase settings the parameter options depend on.
	Translator i18n.Translator     // Localizes the names and descriptions of options.
	Factory    *parameters.Factory // Creates parameters with random IDs.
}

func (p *MbParamsProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "mbparams"
	resp.Version = p.version
}

func (p *MbParamsProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: `Computes the configuration of Metabase dashboard parameters (filters): the catalog of filter types, the columns and variables of a card a filter can be wired to, and the parameters themselves.

Settings are read from (by increasing precedence) their defaults, the ` + "`settings_file`" + `, ` + "`MB_*`" + ` environment variables, and the provider attributes.`,

		Attributes: map[string]schema.Attribute{
			"field_filter_operators_enabled": schema.BoolAttribute{
				MarkdownDescription: "Whether number and string filters with operators are offered. Defaults to the `field-filter-operators-enabled?` setting.",
				Optional:            true,
			},
			"locale": schema.StringAttribute{
				MarkdownDescription: "The locale used for the names and descriptions of filters, e.g. `fr`. Defaults to the `site-locale` setting.",
				Optional:            true,
			},
			"settings_file": schema.StringAttribute{
				MarkdownDescription: "The path to a YAML file mapping Metabase setting names to their values.",
				Optional:            true,
			},
		},
	}
}

func (p *MbParamsProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var data MbParamsProviderModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	overrides := make(map[string]any)
	if !data.FieldFilterOperatorsEnabled.IsNull() && !data.FieldFilterOperatorsEnabled.IsUnknown() {
		overrides[settings.FieldFilterOperatorsEnabled] = data.FieldFilterOperatorsEnabled.ValueBool()
	}
	if !data.Locale.IsNull() && !data.Locale.IsUnknown() {
		overrides[settings.SiteLocale] = data.Locale.ValueString()
	}

	store, err := settings.Load(settings.Options{
		FilePath:  data.SettingsFile.ValueString(),
		Overrides: overrides,
	})
	if err != nil {
		resp.Diagnostics.AddError("Failed to load Metabase settings.", err.Error())
		return
	}

	translator := i18n.New(store.String(settings.SiteLocale))

	tflog.Debug(ctx, "Configured the mbparams provider", map[string]interface{}{
		"locale":                         translator.Tag().String(),
		"field_filter_operators_enabled": store.Bool(settings.FieldFilterOperatorsEnabled),
	})

	providerData := &ProviderData{
		Settings:   store,
		Translator: translator,
		Factory:    parameters.NewFactory(nil),
	}

	resp.DataSourceData = providerData
	resp.ResourceData = providerData
}

func (p *MbParamsProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewParameterResource,
	}
}

func (p *MbParamsProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewSectionsDataSource,
		NewMappingOptionsDataSource,
	}
}

func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &MbParamsProvider{
			version: version,
		}
	}
}
