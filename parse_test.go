package geodesy_test

import (
	"testing"

	"github.com/sarbayes/geodesy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in       string
		lat, lng float64
	}{
		{"44.5, -73.2", 44.5, -73.2},
		{"44.5 -73.2", 44.5, -73.2},
		{"44.5N 73.2W", 44.5, -73.2},
		{"44 30.5N 73 12.0W", 44.508333333, -73.2},
		{"44 30.5 -73 12", 44.508333333, -73.2},
		{`44°30'15"N 73°12'00"W`, 44.504166667, -73.2},
		{"44-30-15 N, 73-12-00 W", 44.504166667, -73.2},
		{"N44 30.5 W73 12.0", 44.508333333, -73.2},
		{"73 12 W 44 30 S", -44.5, -73.2},
		{"33 52 07.68 S; 151 12 33.48 E", -33.8688, 151.2093},
		{"-.5, -.25", -0.5, -0.25},
		{"44:30:15 N 73:12:00 W", 44.504166667, -73.2},
		{"44°30′15″N 73°12′00″W", 44.504166667, -73.2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			geo, err := geodesy.ParseCoordinate(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.lat, geo.Lat.Degrees(), 1e-8)
			assert.InDelta(t, tt.lng, geo.Lng.Degrees(), 1e-8)
		})
	}
}

func TestParseCoordinateErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"unknown",
		"44.5",
		"44 30 15 12 73 12 0",
		"44 75N 73 12W",
		"44.5 30N 73 12W",
		"44N 73S",
		"44E 73W",
		"1.5e-3 2",
		"12.5 km, 3",
		"44.5 north 73.2 west",
		"44.5 / 73.2",
		"44.5, - 73.2",
	} {
		_, err := geodesy.ParseCoordinate(in)
		assert.ErrorIs(t, err, geodesy.ErrMalformedCoordinate, "%q", in)
	}

	_, err := geodesy.ParseCoordinate("95.0, 10.0")
	assert.ErrorIs(t, err, geodesy.ErrCoordinateOutOfRange)
	_, err = geodesy.ParseCoordinate("45.0, 190.0")
	assert.ErrorIs(t, err, geodesy.ErrCoordinateOutOfRange)
}

func TestParseAngle(t *testing.T) {
	v, err := geodesy.ParseAngle("-73.25")
	require.NoError(t, err)
	assert.InDelta(t, -73.25, v, 1e-12)

	v, err = geodesy.ParseAngle("73 15.0W")
	require.NoError(t, err)
	assert.InDelta(t, -73.25, v, 1e-12)

	v, err = geodesy.ParseAngle(`-0°30'00"`)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, v, 1e-12)

	_, err = geodesy.ParseAngle("44.5, -73.2")
	assert.ErrorIs(t, err, geodesy.ErrMalformedCoordinate)
	_, err = geodesy.ParseAngle("12 60")
	assert.ErrorIs(t, err, geodesy.ErrMalformedCoordinate)

	v, err = geodesy.ParseAngle(".5")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)

	v, err = geodesy.ParseAngle("-.5")
	require.NoError(t, err)
	assert.InDelta(t, -0.5, v, 1e-12)

	for _, in := range []string{"12.5 km", "1.5e-3", "1.5E3", "12.5 deg", "x12", "-"} {
		_, err = geodesy.ParseAngle(in)
		assert.ErrorIs(t, err, geodesy.ErrMalformedCoordinate, "%q", in)
	}
}
