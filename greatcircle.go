package geodesy

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the WGS84 equatorial radius in kilometers, used as the
// sphere radius for great-circle helpers.
const EarthRadiusKm = WGS84SemiMajorAxis / 1000

// CentralAngle returns the angle subtended at the centre of a sphere by p and
// q, using the spherical law of cosines.
func CentralAngle(p, q s2.LatLng) s1.Angle {
	lat1 := p.Lat.Radians()
	lat2 := q.Lat.Radians()
	delta := math.Abs(p.Lng.Radians() - q.Lng.Radians())

	cosAngle := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(delta)
	// identical and antipodal points can round just outside [-1, 1]
	return s1.Angle(math.Acos(clamp(cosAngle, -1, 1)))
}

// GreatCircle returns the angle in degrees between two points given in
// decimal degrees. Multiply the angle in radians by a sphere radius to get a
// surface distance. NaN inputs yield NaN.
func GreatCircle(latitude1, longitude1, latitude2, longitude2 float64) float64 {
	return CentralAngle(
		s2.LatLngFromDegrees(latitude1, longitude1),
		s2.LatLngFromDegrees(latitude2, longitude2),
	).Degrees()
}

// GreatCircleDistance returns the surface distance between p and q on a
// sphere of the given radius, in the radius' units.
func GreatCircleDistance(p, q s2.LatLng, radius float64) float64 {
	return CentralAngle(p, q).Radians() * radius
}

// BoundingBox returns the latitude/longitude rectangle enclosing a square
// with sides 2*halfSide centred on center, on a sphere of the given radius
// (same units as halfSide). Boxes reaching a pole span every longitude; boxes
// crossing the antimeridian have an inverted longitude interval.
func BoundingBox(center s2.LatLng, halfSide, radius float64) s2.Rect {
	r := math.Abs(halfSide) / radius
	lat := center.Lat.Radians()
	lng := center.Lng.Radians()

	latMin, latMax := lat-r, lat+r
	if latMin < -math.Pi/2 || latMax > math.Pi/2 {
		return s2.Rect{
			Lat: r1.Interval{Lo: math.Max(latMin, -math.Pi/2), Hi: math.Min(latMax, math.Pi/2)},
			Lng: s1.FullInterval(),
		}
	}

	deltaLng := math.Asin(clamp(math.Sin(r)/math.Cos(lat), -1, 1))
	lngMin, lngMax := lng-deltaLng, lng+deltaLng
	if lngMin < -math.Pi {
		lngMin += 2 * math.Pi
	}
	if lngMax > math.Pi {
		lngMax -= 2 * math.Pi
	}

	return s2.Rect{
		Lat: r1.Interval{Lo: latMin, Hi: latMax},
		Lng: s1.IntervalFromEndpoints(lngMin, lngMax),
	}
}
