package exporter

import (
	"fmt"

	"github.com/flovouin/terraform-provider-mbparams/internal/parameters"
)

// The maximum length of a slug, leaving 4 characters for the suffix in case of duplicates.
const maxSlugLength = 124

// Makes a unique slug containing underscores instead of dashes.
// The returned slug is guaranteed not to exist in `existingSlugs`. When this function returns, the slug has been added
// to the map passed as input.
func makeUniqueSlug(str string, existingSlugs map[string]bool) string {
	baseSlug := parameters.Slugify(str)
	if len(baseSlug) > maxSlugLength {
		baseSlug = baseSlug[:maxSlugLength]
	}
	// Terraform identifiers cannot start with a digit.
	if baseSlug[0] >= '0' && baseSlug[0] <= '9' {
		baseSlug = "_" + baseSlug
	}

	slg := baseSlug
	for i := 1; existingSlugs[slg]; i++ {
		slg = fmt.Sprintf("%s_%03d", baseSlug, i)
	}

	existingSlugs[slg] = true
	return slg
}
