package geodesy

import (
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
)

// TownshipRange is a U.S. Public Land Survey System location.
type TownshipRange struct {
	Meridian string
	Township int // positive north of the baseline
	Range    int // positive east of the meridian
	Section  int
}

// FromTownshipRange would convert a Public Land Survey System location to
// latitude and longitude. It is not implemented and always returns
// ErrUnsupportedCoordinateSystem.
func FromTownshipRange(tr TownshipRange) (s2.LatLng, error) {
	return s2.LatLng{}, fmt.Errorf("%w: township and range", ErrUnsupportedCoordinateSystem)
}

// ToTownshipRange is not implemented and always returns
// ErrUnsupportedCoordinateSystem.
func ToTownshipRange(p s2.LatLng) (TownshipRange, error) {
	return TownshipRange{}, fmt.Errorf("%w: township and range", ErrUnsupportedCoordinateSystem)
}

// FromNZMG would convert New Zealand Map Grid coordinates. It is not
// implemented and always returns ErrUnsupportedCoordinateSystem.
func FromNZMG(easting, northing float64) (s2.LatLng, error) {
	return s2.LatLng{}, fmt.Errorf("%w: NZMG", ErrUnsupportedCoordinateSystem)
}

// ToNZMG is not implemented and always returns
// ErrUnsupportedCoordinateSystem.
func ToNZMG(p s2.LatLng) (MapCoords, error) {
	return MapCoords{}, fmt.Errorf("%w: NZMG", ErrUnsupportedCoordinateSystem)
}

// principalMeridians are the initial points of the PLSS principal meridians,
// as latitude and longitude.
var principalMeridians = map[string][2]DMS{
	"black hills":               {{43, 59, 44, 1}, {104, 3, 16, -1}},
	"boise":                     {{43, 22, 21, 1}, {116, 23, 35, -1}},
	"chickasaw":                 {{35, 1, 58, 1}, {89, 14, 47, -1}},
	"choctaw":                   {{31, 52, 32, 1}, {90, 14, 41, -1}},
	"cimarron":                  {{36, 30, 5, 1}, {103, 0, 7, -1}},
	"copper river":              {{61, 49, 4, 1}, {145, 18, 37, -1}},
	"fairbanks":                 {{64, 51, 50, 1}, {147, 38, 26, -1}},
	"fifth principal":           {{34, 38, 45, 1}, {91, 3, 7, -1}},
	"first principal":           {{40, 59, 22, 1}, {84, 48, 11, -1}},
	"fourth principal":          {{40, 0, 50, 1}, {90, 27, 11, -1}},
	"fourth principal extended": {{42, 30, 28, 1}, {90, 25, 37, -1}},
	"gila and salt river":       {{33, 22, 38, 1}, {112, 18, 19, -1}},
	"humboldt":                  {{40, 25, 2, 1}, {124, 7, 10, -1}},
	"huntsville":                {{34, 59, 27, 1}, {86, 34, 16, -1}},
	"indian":                    {{34, 29, 32, 1}, {97, 14, 49, -1}},
	"kateel river":              {{65, 26, 16, 1}, {158, 45, 31, -1}},
	"louisiana":                 {{31, 0, 31, 1}, {92, 24, 55, -1}},
	"michigan":                  {{42, 25, 28, 1}, {84, 21, 53, -1}},
	"mount diablo":              {{37, 52, 54, 1}, {121, 54, 47, -1}},
	"navajo":                    {{35, 44, 56, 1}, {108, 31, 59, -1}},
	"new mexico principal":      {{34, 15, 35, 1}, {106, 53, 12, -1}},
	"montana principal":         {{45, 47, 13, 1}, {111, 39, 33, -1}},
	"salt lake":                 {{40, 46, 11, 1}, {111, 53, 27, -1}},
	"san bernardino":            {{34, 7, 13, 1}, {116, 55, 48, -1}},
	"second principal":          {{38, 28, 14, 1}, {86, 27, 21, -1}},
	"seward":                    {{60, 7, 37, 1}, {149, 21, 26, -1}},
	"sixth principal":           {{40, 0, 7, 1}, {97, 22, 8, -1}},
	"saint helena":              {{30, 59, 56, 1}, {91, 9, 36, -1}},
	"saint stephens":            {{30, 59, 51, 1}, {88, 1, 20, -1}},
	"tallahassee":               {{30, 26, 3, 1}, {84, 16, 38, -1}},
	"third principal":           {{38, 28, 27, 1}, {89, 8, 54, -1}},
	"uintah":                    {{40, 25, 59, 1}, {109, 56, 6, -1}},
	"umiat":                     {{69, 23, 30, 1}, {152, 0, 5, -1}},
	"ute":                       {{39, 6, 23, 1}, {108, 31, 59, -1}},
	"washington":                {{30, 59, 56, 1}, {91, 9, 36, -1}},
	"willamette":                {{45, 31, 11, 1}, {122, 44, 34, -1}},
	"wind river":                {{43, 0, 41, 1}, {108, 48, 49, -1}},
}

// PrincipalMeridian returns the initial point of the named PLSS principal
// meridian, e.g. "boise" or "Fifth Principal".
func PrincipalMeridian(name string) (s2.LatLng, bool) {
	key := strings.ToLower(strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), " "))
	origin, ok := principalMeridians[key]
	if !ok {
		return s2.LatLng{}, false
	}
	return s2.LatLngFromDegrees(origin[0].Decimal(), origin[1].Decimal()), true
}
