package geodesy

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// MapCoords is a projected easting/northing pair in meters.
type MapCoords struct {
	Easting  float64
	Northing float64
}

// TransverseMercator provides conversions between geodetic coordinates
// (latitude and longitude) and Transverse Mercator projection coordinates
// (easting and northing) using the Krüger series.
type TransverseMercator struct {
	ellipsoid *Ellipsoid

	tranMercK0A float64 // scale factor * rectifying radius

	// Transverse_Mercator projection Parameters
	tranMercOriginLong    float64 // Longitude of origin in radians
	tranMercFalseEasting  float64 // False easting in meters
	tranMercFalseNorthing float64 // False northing in meters
	tranMercScaleFactor   float64 // Scale factor
}

// NewTransverseMercator constructs a new TransverseMercator converter. The
// central meridian is in radians.
func NewTransverseMercator(ellipsoid *Ellipsoid, centralMeridian, falseEasting,
	falseNorthing, scaleFactor float64) (*TransverseMercator, error) {
	if ellipsoid == nil {
		return nil, errors.New("missing ellipsoid")
	}
	if (centralMeridian < -math.Pi) ||
		(centralMeridian > math.Pi) {
		return nil, errors.New("centralMeridian out of range")
	}

	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if !(scaleFactor >= minScaleFactor && scaleFactor <= maxScaleFactor) {
		return nil, errors.New("scale factor out of range")
	}

	return &TransverseMercator{
		ellipsoid:             ellipsoid,
		tranMercK0A:           scaleFactor * ellipsoid.rectRadius,
		tranMercOriginLong:    centralMeridian,
		tranMercFalseEasting:  falseEasting,
		tranMercFalseNorthing: falseNorthing,
		tranMercScaleFactor:   scaleFactor,
	}, nil
}

// CentralMeridian returns the longitude of the projection origin.
func (t *TransverseMercator) CentralMeridian() s1.Angle {
	return s1.Angle(t.tranMercOriginLong)
}

// ConvertFromGeodetic projects a geodetic point. The caller is responsible
// for keeping the point within a few degrees of the central meridian; the
// series loses accuracy quickly beyond that.
func (t *TransverseMercator) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) MapCoords {
	latitude := geodeticCoordinates.Lat.Radians()
	lambda := geodeticCoordinates.Lng.Radians() - t.tranMercOriginLong

	xiPrime, etaPrime := t.conformalSphere(latitude, lambda)

	var c2kxi, s2kxi, c2keta, s2keta [seriesOrder]float64
	computeTrigSeries(2.0*xiPrime, c2kxi[:], s2kxi[:])
	computeHyperbolicSeries(2.0*etaPrime, c2keta[:], s2keta[:])

	xi := xiPrime
	eta := etaPrime
	alpha := &t.ellipsoid.alpha
	for k := seriesOrder - 1; k >= 0; k-- {
		xi += alpha[k] * s2kxi[k] * c2keta[k]
		eta += alpha[k] * c2kxi[k] * s2keta[k]
	}

	return MapCoords{
		Easting:  t.tranMercFalseEasting + t.tranMercK0A*eta,
		Northing: t.tranMercFalseNorthing + t.tranMercK0A*xi,
	}
}

// conformalSphere maps geodetic latitude and longitude offset from the
// central meridian to the spherical transverse Mercator coordinates
// (xi', eta').
func (t *TransverseMercator) conformalSphere(latitude, lambda float64) (float64, float64) {
	e := t.ellipsoid.eccentricity
	sinPhi := math.Sin(latitude)
	tau := math.Sinh(math.Atanh(sinPhi) - e*math.Atanh(e*sinPhi))

	xiPrime := math.Atan2(tau, math.Cos(lambda))
	etaPrime := math.Atanh(math.Sin(lambda) / math.Hypot(1, tau))
	return xiPrime, etaPrime
}

// ConvertToGeodetic inverts the projection. The returned longitude is not
// normalized.
func (t *TransverseMercator) ConvertToGeodetic(mapProjectionCoordinates MapCoords) s2.LatLng {
	xi := (mapProjectionCoordinates.Northing - t.tranMercFalseNorthing) / t.tranMercK0A
	eta := (mapProjectionCoordinates.Easting - t.tranMercFalseEasting) / t.tranMercK0A

	var c2kxi, s2kxi, c2keta, s2keta [seriesOrder]float64
	computeTrigSeries(2.0*xi, c2kxi[:], s2kxi[:])
	computeHyperbolicSeries(2.0*eta, c2keta[:], s2keta[:])

	xiPrime := xi
	etaPrime := eta
	beta := &t.ellipsoid.beta
	for k := seriesOrder - 1; k >= 0; k-- {
		xiPrime -= beta[k] * s2kxi[k] * c2keta[k]
		etaPrime -= beta[k] * c2kxi[k] * s2keta[k]
	}

	//   Conformal latitude
	chi := math.Asin(clamp(math.Sin(xiPrime)/math.Cosh(etaPrime), -1, 1))
	latitude := geodeticLat(chi, &t.ellipsoid.delta)

	//   Longitude from central meridian
	lambda := math.Atan2(math.Sinh(etaPrime), math.Cos(xiPrime))

	return s2.LatLng{
		Lat: s1.Angle(latitude),
		Lng: s1.Angle(t.tranMercOriginLong + lambda),
	}
}

func geodeticLat(chi float64, delta *[seriesOrder]float64) float64 {
	var c2kchi, s2kchi [seriesOrder]float64
	computeTrigSeries(2.0*chi, c2kchi[:], s2kchi[:])

	latitude := chi
	for k := seriesOrder - 1; k >= 0; k-- {
		latitude += delta[k] * s2kchi[k]
	}
	return latitude
}

func computeHyperbolicSeries(twoX float64, c2kx, s2kx []float64) {
	// Use trig identities to compute
	// c2kx[k] = cosh(2(k+1)X), s2kx[k] = sinh(2(k+1)X)   for k = 0 .. 2
	c2kx[0] = math.Cosh(twoX)
	s2kx[0] = math.Sinh(twoX)
	c2kx[1] = 2.0*c2kx[0]*c2kx[0] - 1.0
	s2kx[1] = 2.0 * c2kx[0] * s2kx[0]
	c2kx[2] = c2kx[0]*c2kx[1] + s2kx[0]*s2kx[1]
	s2kx[2] = c2kx[1]*s2kx[0] + c2kx[0]*s2kx[1]
}

func computeTrigSeries(twoY float64, c2ky, s2ky []float64) {
	// Use trig identities to compute
	// c2ky[k] = cos(2(k+1)Y), s2ky[k] = sin(2(k+1)Y)   for k = 0 .. 2
	c2ky[0] = math.Cos(twoY)
	s2ky[0] = math.Sin(twoY)
	c2ky[1] = 2.0*c2ky[0]*c2ky[0] - 1.0
	s2ky[1] = 2.0 * c2ky[0] * s2ky[0]
	c2ky[2] = c2ky[1]*c2ky[0] - s2ky[1]*s2ky[0]
	s2ky[2] = c2ky[1]*s2ky[0] + c2ky[0]*s2ky[1]
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
