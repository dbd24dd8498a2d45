package parameters

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/flovouin/terraform-provider-mbparams/metabase"
	"github.com/gosimple/slug"
)

// Makes the URL-safe slug of a parameter name, containing underscores instead of dashes.
// Names without any character that can be kept in a slug produce the slug of the unnamed parameter.
func Slugify(name string) string {
	slg := strings.ReplaceAll(slug.Make(name), "-", "_")
	if len(slg) == 0 {
		return metabase.UnnamedParameterName
	}
	return slg
}

// Creates parameters with random IDs.
type Factory struct {
	newId func() uint32 // Returns the random number used as the parameter ID.
}

// Creates a factory drawing parameter IDs from the given source. A `nil` source uses `math/rand/v2`.
func NewFactory(idSource func() uint32) *Factory {
	if idSource == nil {
		idSource = rand.Uint32
	}
	return &Factory{newId: idSource}
}

var defaultFactory = NewFactory(nil)

// Creates a parameter from an option, using the default factory.
func CreateParameter(option metabase.ParameterOption, existing []metabase.Parameter) metabase.Parameter {
	return defaultFactory.CreateParameter(option, existing)
}

// Creates a parameter from an option, with a name that is unique among the existing parameters.
// The name is the combined name of the option (or its name), suffixed with ` 1`, ` 2`, etc. until it is unique.
func (f *Factory) CreateParameter(option metabase.ParameterOption, existing []metabase.Parameter) metabase.Parameter {
	baseName := option.CombinedName
	if len(baseName) == 0 {
		baseName = option.Name
	}
	if len(baseName) == 0 {
		// Otherwise uniqueness would be checked against the empty name, while `SetParameterName` assigns another one.
		baseName = metabase.UnnamedParameterName
	}

	names := make(map[string]bool, len(existing))
	for _, p := range existing {
		names[p.Name] = true
	}

	name := baseName
	for i := 1; names[name]; i++ {
		name = fmt.Sprintf("%s %d", baseName, i)
	}

	parameter := metabase.Parameter{
		Id:        strconv.FormatUint(uint64(f.newId()), 16),
		Type:      option.Type,
		SectionId: option.SectionId,
	}

	return SetParameterName(parameter, name)
}

// Returns a copy of the parameter with the given name and the corresponding slug. An empty name is replaced by
// `unnamed`.
func SetParameterName(parameter metabase.Parameter, name string) metabase.Parameter {
	if len(name) == 0 {
		name = metabase.UnnamedParameterName
	}

	parameter.Name = name
	parameter.Slug = Slugify(name)

	return parameter
}

// Returns a copy of the parameter with the given default value.
func SetParameterDefaultValue(parameter metabase.Parameter, value string) metabase.Parameter {
	parameter.Default = value
	return parameter
}
