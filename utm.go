package geodesy

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Hemisphere is the sign of a UTM coordinate's hemisphere. Any negative value
// is treated as south.
type Hemisphere int

// Hemisphere constants
const (
	HemisphereNorth Hemisphere = 1
	HemisphereSouth Hemisphere = -1
)

// IsSouth reports whether h denotes the southern hemisphere.
func (h Hemisphere) IsSouth() bool { return h < 0 }

func (h Hemisphere) String() string {
	if h.IsSouth() {
		return "S"
	}
	return "N"
}

// UTMCoord is a UTM coordinate
type UTMCoord struct {
	Zone       int
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
}

func (c UTMCoord) String() string {
	return fmt.Sprintf("%d%s %.0f %.0f", c.Zone, c.Hemisphere, c.Easting, c.Northing)
}

// UTM is a UTM coordinate converter
type UTM struct {
	ellipsoid             *Ellipsoid
	transverseMercatorMap [61]*TransverseMercator
}

const utmMaxLat = 84.0 // degrees
const epsilonDegrees = 1.0e-9
const utmScaleFactor = 0.9996
const utmFalseEasting = 500000.0
const utmSouthFalseNorthing = 10000000.0
const utmMinZone = 1
const utmMaxZone = 60

// NewUTM constructs a UTM converter for the given ellipsoid, with one
// transverse Mercator projection per zone.
func NewUTM(ellipsoid *Ellipsoid) (*UTM, error) {
	if ellipsoid == nil {
		return nil, errors.New("missing ellipsoid")
	}
	u := &UTM{ellipsoid: ellipsoid}

	for zone := utmMinZone; zone <= utmMaxZone; zone++ {
		centralMeridian := float64(CentralMeridian(zone)) * math.Pi / 180

		var err error
		u.transverseMercatorMap[zone], err = NewTransverseMercator(u.ellipsoid, centralMeridian,
			utmFalseEasting, 0, utmScaleFactor)
		if err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Zone returns the standard UTM zone containing longitude (degrees). The
// antimeridian at +180 folds into zone 60. Nonstandard zones over Norway and
// Svalbard are not applied.
func Zone(longitude float64) int {
	zone := 1 + int(math.Floor((longitude+180+1.0e-10)/6))
	if zone < utmMinZone {
		zone = utmMinZone
	}
	if zone > utmMaxZone {
		zone = utmMaxZone
	}
	return zone
}

// CentralMeridian returns the central meridian of zone in degrees.
func CentralMeridian(zone int) int {
	return 6*zone - 183
}

func validZone(zone int) error {
	if zone < utmMinZone || zone > utmMaxZone {
		return fmt.Errorf("%w: %d", ErrInvalidZone, zone)
	}
	return nil
}

func checkGeodetic(latitude, longitude float64) error {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) ||
		math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return fmt.Errorf("%w: non-finite coordinate (%v, %v)", ErrCoordinateOutOfRange, latitude, longitude)
	}
	if math.Abs(latitude) > utmMaxLat+epsilonDegrees {
		return fmt.Errorf("%w: latitude %v outside UTM coverage, polar regions not covered",
			ErrCoordinateOutOfRange, latitude)
	}
	if math.Abs(longitude) > 180+epsilonDegrees {
		return fmt.Errorf("%w: longitude %v", ErrCoordinateOutOfRange, longitude)
	}
	return nil
}

// ConvertFromGeodetic converts geodetic (latitude and longitude) coordinates
// to UTM projection (zone, hemisphere, easting and northing) coordinates in
// the standard zone for the longitude.
func (u *UTM) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) (UTMCoord, error) {
	latitude := geodeticCoordinates.Lat.Degrees()
	longitude := geodeticCoordinates.Lng.Degrees()
	if err := checkGeodetic(latitude, longitude); err != nil {
		return UTMCoord{}, err
	}
	return u.convert(geodeticCoordinates, Zone(longitude)), nil
}

// ConvertFromGeodeticInZone is like ConvertFromGeodetic but projects into
// zone, which must be the standard zone or one of its neighbours. This keeps
// points that straddle a zone boundary on a single grid.
func (u *UTM) ConvertFromGeodeticInZone(geodeticCoordinates s2.LatLng, zone int) (UTMCoord, error) {
	latitude := geodeticCoordinates.Lat.Degrees()
	longitude := geodeticCoordinates.Lng.Degrees()
	if err := checkGeodetic(latitude, longitude); err != nil {
		return UTMCoord{}, err
	}
	if err := validZone(zone); err != nil {
		return UTMCoord{}, err
	}

	// allow UTM zone override up to +/- one zone of the calculated zone
	tempZone := Zone(longitude)
	switch {
	case tempZone == utmMinZone && zone == utmMaxZone:
	case tempZone == utmMaxZone && zone == utmMinZone:
	case tempZone-1 <= zone && zone <= tempZone+1:
	default:
		return UTMCoord{}, fmt.Errorf("%w: %d is not adjacent to zone %d", ErrInvalidZone, zone, tempZone)
	}
	return u.convert(geodeticCoordinates, zone), nil
}

func (u *UTM) convert(geodeticCoordinates s2.LatLng, zone int) UTMCoord {
	transverseMercator := u.transverseMercatorMap[zone]

	// Bring the longitude within half a turn of the central meridian so the
	// 60/1 wrap projects onto the near side.
	lambda := geodeticCoordinates.Lng.Radians() - transverseMercator.tranMercOriginLong
	lambda = math.Remainder(lambda, 2*math.Pi)
	tempGeodeticCoordinates := s2.LatLng{
		Lat: geodeticCoordinates.Lat,
		Lng: s1.Angle(transverseMercator.tranMercOriginLong + lambda),
	}

	transverseMercatorCoordinates := transverseMercator.ConvertFromGeodetic(tempGeodeticCoordinates)

	hemisphere := HemisphereNorth
	northing := transverseMercatorCoordinates.Northing
	if geodeticCoordinates.Lat < 0 {
		hemisphere = HemisphereSouth
		northing += utmSouthFalseNorthing
	}

	return UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    transverseMercatorCoordinates.Easting,
		Northing:   northing,
	}
}

// ConvertToGeodetic converts UTM projection (zone, hemisphere, easting and
// northing) coordinates to geodetic (latitude and longitude) coordinates.
// The longitude is normalized to [-180, 180].
func (u *UTM) ConvertToGeodetic(utmCoordinates UTMCoord) (s2.LatLng, error) {
	if err := validZone(utmCoordinates.Zone); err != nil {
		return s2.LatLng{}, err
	}
	easting := utmCoordinates.Easting
	northing := utmCoordinates.Northing
	if math.IsNaN(easting) || math.IsInf(easting, 0) ||
		math.IsNaN(northing) || math.IsInf(northing, 0) {
		return s2.LatLng{}, fmt.Errorf("%w: non-finite easting/northing (%v, %v)",
			ErrCoordinateOutOfRange, easting, northing)
	}

	if utmCoordinates.Hemisphere.IsSouth() {
		northing -= utmSouthFalseNorthing
	}

	transverseMercator := u.transverseMercatorMap[utmCoordinates.Zone]
	geodeticCoordinates := transverseMercator.ConvertToGeodetic(MapCoords{Easting: easting, Northing: northing})
	return geodeticCoordinates.Normalized(), nil
}
