package provider

import (
	"github.com/hashicorp/terraform-plugin-framework/providerserver"
	"github.com/hashicorp/terraform-plugin-go/tfprotov6"
)

const providerConfig = `
provider "mbparams" {
  field_filter_operators_enabled = true
  locale                         = "en"
}
`

const providerFrenchConfig = `
provider "mbparams" {
  field_filter_operators_enabled = false
  locale                         = "fr"
}
`

var testAccProtoV6ProviderFactories = map[string]func() (tfprotov6.ProviderServer, error){
	"mbparams": providerserver.NewProtocol6WithError(New("test")()),
}
