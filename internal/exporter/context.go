package exporter

import (
	"errors"

	"github.com/flovouin/terraform-provider-mbparams/metabase"
)

// A parameter exported as a `mbparams_parameter` Terraform resource.
type exportedParameter struct {
	Parameter metabase.Parameter // The parameter, as defined in the dashboard.
	Slug      string             // A slug attributed to the parameter, used as the name of the Terraform resource.
}

// The parameters of a dashboard, converted to HCL.
type exportedDashboard struct {
	Name       string              // The name of the dashboard.
	Slug       string              // A slug attributed to the dashboard, used as the name of the file and of the local value.
	Parameters []exportedParameter // The parameters of the dashboard, in order.
	Hcl        []byte              // The HCL definition for the parameters.
}

// A context that can be created to export the parameters of one or several dashboards to Terraform files.
type ExportContext struct {
	dashboards      []*exportedDashboard // The dashboards exported so far, in order.
	dashboardsSlugs map[string]bool      // The slugs that have been assigned to dashboards, for which uniqueness should be guaranteed.
	parametersSlugs map[string]bool      // The slugs that have been assigned to parameters, for which uniqueness should be guaranteed.
}

// Creates a new, empty export context.
func NewExportContext() ExportContext {
	return ExportContext{
		dashboards:      make([]*exportedDashboard, 0),
		dashboardsSlugs: make(map[string]bool),
		parametersSlugs: make(map[string]bool),
	}
}

// Adds the parameters of a dashboard to the context, and produces their Terraform definition.
func (ec *ExportContext) ExportDashboard(name string, parameters []metabase.Parameter) error {
	if len(name) == 0 {
		return errors.New("the name of the dashboard should not be empty")
	}

	dashboard := &exportedDashboard{
		Name:       name,
		Slug:       makeUniqueSlug(name, ec.dashboardsSlugs),
		Parameters: make([]exportedParameter, 0, len(parameters)),
	}

	for _, p := range parameters {
		slugSource := p.Slug
		if len(slugSource) == 0 {
			slugSource = p.Name
		}

		dashboard.Parameters = append(dashboard.Parameters, exportedParameter{
			Parameter: p,
			Slug:      makeUniqueSlug(dashboard.Slug+"_"+slugSource, ec.parametersSlugs),
		})
	}

	dashboard.Hcl = makeDashboardHcl(*dashboard)

	ec.dashboards = append(ec.dashboards, dashboard)

	return nil
}

// Returns the HCL definitions produced for all the dashboards, in the order in which they were exported.
func (ec *ExportContext) Hcl() [][]byte {
	hcl := make([][]byte, 0, len(ec.dashboards))
	for _, d := range ec.dashboards {
		hcl = append(hcl, d.Hcl)
	}
	return hcl
}
