package geodesy

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// WGS84 semi-major axis (meters) and flattening.
const (
	WGS84SemiMajorAxis = 6378137.0
	WGS84Flattening    = 1 / 298.257223563
)

// WGS84 is the WGS84 reference ellipsoid.
var WGS84 *Ellipsoid

// DefaultUTMConverter is a WGS84 ellipsoid based UTM converter.
var DefaultUTMConverter *UTM

func init() {
	var err error
	WGS84, err = NewEllipsoid(WGS84SemiMajorAxis, WGS84Flattening)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 ellipsoid: %s", err))
	}
	DefaultUTMConverter, err = NewUTM(WGS84)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 UTM converter: %s", err))
	}
}

// ToUTM converts a WGS84 latitude and longitude in decimal degrees to UTM.
// It returns ErrCoordinateOutOfRange for latitudes beyond ±84 degrees.
func ToUTM(latitude, longitude float64) (UTMCoord, error) {
	if err := checkGeodetic(latitude, longitude); err != nil {
		return UTMCoord{}, err
	}
	return DefaultUTMConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(latitude, longitude))
}

// FromUTM converts a WGS84 UTM coordinate to latitude and longitude. It
// returns ErrInvalidZone when zone is outside [1, 60].
func FromUTM(easting, northing float64, zone int, hemisphere Hemisphere) (s2.LatLng, error) {
	return DefaultUTMConverter.ConvertToGeodetic(UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
	})
}
