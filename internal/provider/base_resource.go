package provider

import (
	"context"
	"fmt"

	"github.com/flovouin/terraform-provider-mbparams/internal/i18n"
	"github.com/flovouin/terraform-provider-mbparams/internal/parameters"
	"github.com/flovouin/terraform-provider-mbparams/internal/settings"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/resource"
)

// A resource that can be used as the base for any resource of the provider. It references the data built when
// configuring the provider.
type MbParamsBaseResource struct {
	// The name of the resource, as exposed to the Terraform API (by prefixing it with the provider name).
	name string

	// The settings, translator and parameter factory.
	data *ProviderData
}

func (r *MbParamsBaseResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = fmt.Sprintf("%s_%s", req.ProviderTypeName, r.name)
}

func (r *MbParamsBaseResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	data, diags := providerDataFromAny(req.ProviderData)
	resp.Diagnostics.Append(diags...)
	if data != nil {
		r.data = data
	}
}

// The data source counterpart of `MbParamsBaseResource`.
type MbParamsBaseDataSource struct {
	// The name of the data source, as exposed to the Terraform API (by prefixing it with the provider name).
	name string

	// The settings, translator and parameter factory.
	data *ProviderData
}

func (d *MbParamsBaseDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = fmt.Sprintf("%s_%s", req.ProviderTypeName, d.name)
}

func (d *MbParamsBaseDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	data, diags := providerDataFromAny(req.ProviderData)
	resp.Diagnostics.Append(diags...)
	if data != nil {
		d.data = data
	}
}

// Converts the opaque data passed by the framework to the provider data. Returns `nil` without error when the
// provider has not been configured yet.
func providerDataFromAny(v any) (*ProviderData, diag.Diagnostics) {
	var diags diag.Diagnostics

	if v == nil {
		return nil, diags
	}

	data, ok := v.(*ProviderData)
	if !ok {
		diags.AddError(
			"Unexpected provider data type when configuring mbparams resource.",
			fmt.Sprintf("Expected *provider.ProviderData, got: %T. Please report this issue to the provider developers.", v),
		)

		return nil, diags
	}

	return data, diags
}

// Returns the data used when the provider has not been configured: default settings and English names.
func defaultProviderData() *ProviderData {
	return &ProviderData{
		Settings:   settings.NewStore(),
		Translator: i18n.English,
		Factory:    parameters.NewFactory(nil),
	}
}

func (r *MbParamsBaseResource) providerData() *ProviderData {
	if r.data == nil {
		return defaultProviderData()
	}
	return r.data
}

func (d *MbParamsBaseDataSource) providerData() *ProviderData {
	if d.data == nil {
		return defaultProviderData()
	}
	return d.data
}
