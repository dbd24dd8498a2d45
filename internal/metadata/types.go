package metadata

import "strings"

// Metabase semantic and base types, as the subset needed to classify fields for parameters.
const (
	TypeNumber      = "type/Number"
	TypeInteger     = "type/Integer"
	TypeBigInteger  = "type/BigInteger"
	TypeFloat       = "type/Float"
	TypeDecimal     = "type/Decimal"
	TypeText        = "type/Text"
	TypeBoolean     = "type/Boolean"
	TypeTemporal    = "type/Temporal"
	TypeDate        = "type/Date"
	TypeTime        = "type/Time"
	TypeDateTime    = "type/DateTime"
	TypeDateTimeTZ  = "type/DateTimeWithTZ"
	TypeDateTimeLTZ = "type/DateTimeWithLocalTZ"
	TypePK          = "type/PK"
	TypeFK          = "type/FK"
	TypeCategory    = "type/Category"
	TypeEnum        = "type/Enum"
	TypeName        = "type/Name"
	TypeTitle       = "type/Title"
	TypeAddress     = "type/Address"
	TypeCity        = "type/City"
	TypeState       = "type/State"
	TypeCountry     = "type/Country"
	TypeZipCode     = "type/ZipCode"
	TypeCoordinate  = "type/Coordinate"
	TypeLatitude    = "type/Latitude"
	TypeLongitude   = "type/Longitude"
	TypeCreatedAt   = "type/CreationTimestamp"
	TypeUpdatedAt   = "type/UpdatedTimestamp"
)

// The parents of each type in the Metabase type hierarchy. A type can derive from several parents.
var typeParents = map[string][]string{
	TypeInteger:     {TypeNumber},
	TypeBigInteger:  {TypeInteger},
	TypeFloat:       {TypeNumber},
	TypeDecimal:     {TypeFloat},
	TypeDate:        {TypeTemporal},
	TypeTime:        {TypeTemporal},
	TypeDateTime:    {TypeTemporal},
	TypeDateTimeTZ:  {TypeDateTime},
	TypeDateTimeLTZ: {TypeDateTimeTZ},
	TypeCreatedAt:   {TypeTemporal},
	TypeUpdatedAt:   {TypeTemporal},
	TypeEnum:        {TypeCategory},
	TypeName:        {TypeCategory},
	TypeTitle:       {TypeCategory},
	TypeCity:        {TypeAddress, TypeCategory},
	TypeState:       {TypeAddress, TypeCategory},
	TypeCountry:     {TypeAddress, TypeCategory},
	TypeZipCode:     {TypeAddress},
	TypeLatitude:    {TypeCoordinate},
	TypeLongitude:   {TypeCoordinate},
}

// Returns whether type `t` is, or derives from, `ancestor`.
func Isa(t string, ancestor string) bool {
	if t == "" {
		return false
	}

	if t == ancestor {
		return true
	}

	for _, parent := range typeParents[t] {
		if Isa(parent, ancestor) {
			return true
		}
	}

	return false
}

// Makes a type name from a short name, e.g. `Integer` becomes `type/Integer`.
// Names already carrying the `type/` prefix are returned as is.
func typeName(name string) string {
	if name == "" || strings.HasPrefix(name, "type/") {
		return name
	}

	return "type/" + name
}
