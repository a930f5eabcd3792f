package geodesy

import (
	"errors"
	"math"
)

// seriesOrder is the number of terms kept in the Krüger series.
const seriesOrder = 3

// Ellipsoid holds a reference ellipsoid and the transverse Mercator series
// coefficients derived from it. An Ellipsoid is immutable once constructed.
type Ellipsoid struct {
	semiMajorAxis float64 // meters
	flattening    float64

	n            float64 // third flattening (a-b)/(a+b)
	eccentricity float64
	rectRadius   float64 // A, the rectifying radius in meters

	alpha [seriesOrder]float64 // forward series
	beta  [seriesOrder]float64 // inverse series
	delta [seriesOrder]float64 // conformal to geodetic latitude
}

// NewEllipsoid constructs an ellipsoid from its semi-major axis in meters and
// its flattening.
func NewEllipsoid(semiMajorAxis, flattening float64) (*Ellipsoid, error) {
	if !(semiMajorAxis > 0) || math.IsInf(semiMajorAxis, 1) {
		return nil, errors.New("semi-major axis must be greater than zero")
	}
	invF := 1 / flattening
	if !(invF >= 250 && invF <= 350) {
		return nil, errors.New("inverse flattening must be between 250 and 350")
	}

	e := &Ellipsoid{
		semiMajorAxis: semiMajorAxis,
		flattening:    flattening,
	}
	e.generateCoefficients()
	return e, nil
}

func (e *Ellipsoid) generateCoefficients() {
	n1 := e.flattening / (2 - e.flattening)
	n2 := n1 * n1
	n3 := n2 * n1
	n4 := n3 * n1

	e.n = n1
	e.eccentricity = 2 * math.Sqrt(n1) / (1 + n1)

	coeff := 1.0
	coeff += n2 / 4
	coeff += n4 / 64
	e.rectRadius = e.semiMajorAxis / (1 + n1) * coeff

	// alpha
	coeff = 0.0
	coeff += (5.0) * n3 / 16.0
	coeff += (-2.0) * n2 / 3.0
	coeff += (1.0) * n1 / 2.0
	e.alpha[0] = coeff

	coeff = 0.0
	coeff += (-3.0) * n3 / 5.0
	coeff += (13.0) * n2 / 48.0
	e.alpha[1] = coeff

	e.alpha[2] = (61.0) * n3 / 240.0

	// beta
	coeff = 0.0
	coeff += (37.0) * n3 / 96.0
	coeff += (-2.0) * n2 / 3.0
	coeff += (1.0) * n1 / 2.0
	e.beta[0] = coeff

	coeff = 0.0
	coeff += (1.0) * n3 / 15.0
	coeff += (1.0) * n2 / 48.0
	e.beta[1] = coeff

	e.beta[2] = (17.0) * n3 / 480.0

	// delta
	coeff = 0.0
	coeff += (-2.0) * n3
	coeff += (-2.0) * n2 / 3.0
	coeff += (2.0) * n1
	e.delta[0] = coeff

	coeff = 0.0
	coeff += (-8.0) * n3 / 5.0
	coeff += (7.0) * n2 / 3.0
	e.delta[1] = coeff

	e.delta[2] = (56.0) * n3 / 15.0
}

// SemiMajorAxis returns the equatorial radius in meters.
func (e *Ellipsoid) SemiMajorAxis() float64 { return e.semiMajorAxis }

// Flattening returns the ellipsoid flattening.
func (e *Ellipsoid) Flattening() float64 { return e.flattening }

// ThirdFlattening returns n = f/(2-f).
func (e *Ellipsoid) ThirdFlattening() float64 { return e.n }

// RectifyingRadius returns A, the radius of the sphere with the same
// meridian length as the ellipsoid, in meters.
func (e *Ellipsoid) RectifyingRadius() float64 { return e.rectRadius }

// Alpha returns the forward Krüger series coefficients.
func (e *Ellipsoid) Alpha() [3]float64 { return e.alpha }

// Beta returns the inverse Krüger series coefficients.
func (e *Ellipsoid) Beta() [3]float64 { return e.beta }

// Delta returns the coefficients taking conformal latitude back to geodetic
// latitude.
func (e *Ellipsoid) Delta() [3]float64 { return e.delta }
