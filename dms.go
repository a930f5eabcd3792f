package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// DMS is an angle split into degrees, minutes and seconds. The components are
// non-negative; the sign is held separately so that angles such as -0°30'
// keep their sign.
type DMS struct {
	Degrees float64
	Minutes float64
	Seconds float64
	Sign    int
}

// FromDMS combines degree, minute and second components into decimal degrees.
// The magnitudes of the components are used; a negative sign makes the result
// negative.
func FromDMS(degrees, minutes, seconds float64, sign int) float64 {
	s := 1.0
	if sign < 0 {
		s = -1.0
	}
	return s * (math.Abs(degrees) + math.Abs(minutes)/60.0 + math.Abs(seconds)/3600.0)
}

// ToDMS splits decimal degrees into whole degrees, whole minutes, fractional
// seconds and a sign.
func ToDMS(decimal float64) DMS {
	sign := 1
	if decimal < 0 {
		sign = -1
	}
	decimal = math.Abs(decimal)

	degrees := math.Floor(decimal)
	minutes := 60 * (decimal - degrees)
	wholeMinutes := math.Floor(minutes)
	seconds := 60 * (minutes - wholeMinutes)

	return DMS{
		Degrees: degrees,
		Minutes: wholeMinutes,
		Seconds: seconds,
		Sign:    sign,
	}
}

// Decimal returns the angle in decimal degrees.
func (d DMS) Decimal() float64 {
	return FromDMS(d.Degrees, d.Minutes, d.Seconds, d.Sign)
}

// Angle returns the angle as an s1.Angle.
func (d DMS) Angle() s1.Angle {
	return s1.Angle(d.Decimal()) * s1.Degree
}

func (d DMS) String() string {
	sign := ""
	if d.Sign < 0 {
		sign = "-"
	}
	deg, mins, secs := d.rounded()
	return fmt.Sprintf("%s%d°%02d'%04.1f\"", sign, deg, mins, secs)
}

// rounded returns the components with seconds rounded to a tenth, carrying
// seconds that round up to 60.0 into minutes and degrees.
func (d DMS) rounded() (int, int, float64) {
	deg := int(d.Degrees)
	mins := int(d.Minutes)
	secs := math.Round(d.Seconds*10) / 10
	if secs >= 60 {
		mins++
		secs = 0
	}
	if mins >= 60 {
		mins -= 60
		deg++
	}
	return deg, mins, secs
}

// FormatLatitude formats a latitude as degrees, minutes and seconds with a
// hemisphere letter, e.g. 51°10'44.0"N.
func FormatLatitude(latitude float64) string {
	return formatDMS(latitude, "%02d°%02d'%04.1f\"%c", "NS")
}

// FormatLongitude formats a longitude as degrees, minutes and seconds with a
// hemisphere letter, e.g. 001°49'34.0"W.
func FormatLongitude(longitude float64) string {
	return formatDMS(longitude, "%03d°%02d'%04.1f\"%c", "EW")
}

func formatDMS(coord float64, ofmt string, ind string) string {
	dms := ToDMS(coord)
	d, m, s := dms.rounded()
	q := ind[0]
	if dms.Sign < 0 {
		q = ind[1]
	}
	return fmt.Sprintf(ofmt, d, m, s, q)
}
