package exporter

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// The type of the Terraform resource for parameters.
const parameterResourceType = "mbparams_parameter"

// Sets the default value of a parameter on the resource. The resource only accepts string defaults: other values, e.g.
// lists of values, are not exported and a comment is written in their place.
func appendDefaultValue(body *hclwrite.Body, v any) {
	if s, ok := v.(string); ok {
		body.SetAttributeValue("default", cty.StringVal(s))
		return
	}

	value := fmt.Sprintf("%v", v)
	if data, err := json.Marshal(v); err == nil {
		value = string(data)
	}

	body.AppendUnstructuredTokens(hclwrite.Tokens{
		{
			Type:  hclsyntax.TokenComment,
			Bytes: []byte(fmt.Sprintf("# The default value %s is not a string and cannot be exported.\n", value)),
		},
	})
}

// Appends the `mbparams_parameter` resource for a parameter to the body.
func appendParameterBlock(body *hclwrite.Body, p exportedParameter) {
	block := body.AppendNewBlock("resource", []string{parameterResourceType, p.Slug})
	blockBody := block.Body()

	blockBody.SetAttributeValue("type", cty.StringVal(p.Parameter.Type))
	if len(p.Parameter.SectionId) > 0 {
		blockBody.SetAttributeValue("section_id", cty.StringVal(p.Parameter.SectionId))
	}
	blockBody.SetAttributeValue("name", cty.StringVal(p.Parameter.Name))

	if p.Parameter.Default != nil {
		appendDefaultValue(blockBody, p.Parameter.Default)
	}
}

// Makes the tokens for `jsondecode(mbparams_parameter.<slug>.parameter_json)`.
func parameterJsonTokens(p exportedParameter) hclwrite.Tokens {
	traversal := hcl.Traversal{
		hcl.TraverseRoot{Name: parameterResourceType},
		hcl.TraverseAttr{Name: p.Slug},
		hcl.TraverseAttr{Name: "parameter_json"},
	}

	return hclwrite.TokensForFunctionCall("jsondecode", hclwrite.TokensForTraversal(traversal))
}

// Produces the Terraform definitions for the parameters of a dashboard: one `mbparams_parameter` resource per
// parameter, and a local value containing the JSON list of parameters, to be used as the `parameters_json` of the
// dashboard.
func makeDashboardHcl(dashboard exportedDashboard) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, p := range dashboard.Parameters {
		appendParameterBlock(body, p)
		body.AppendNewline()
	}

	elements := make([]hclwrite.Tokens, 0, len(dashboard.Parameters))
	for _, p := range dashboard.Parameters {
		elements = append(elements, parameterJsonTokens(p))
	}

	locals := body.AppendNewBlock("locals", nil).Body()
	locals.SetAttributeRaw(
		parametersLocalName(dashboard),
		hclwrite.TokensForFunctionCall("jsonencode", hclwrite.TokensForTuple(elements)),
	)

	return hclwrite.Format(f.Bytes())
}

// Returns the name of the local value containing the parameters of a dashboard, as produced by `makeDashboardHcl`.
func parametersLocalName(dashboard exportedDashboard) string {
	return fmt.Sprintf("%s_parameters_json", dashboard.Slug)
}
