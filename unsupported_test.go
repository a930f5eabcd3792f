package geodesy_test

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/sarbayes/geodesy"
	"github.com/stretchr/testify/assert"
)

func TestUnsupportedCoordinateSystems(t *testing.T) {
	_, err := geodesy.FromTownshipRange(geodesy.TownshipRange{Meridian: "boise", Township: 3, Range: -2, Section: 14})
	assert.ErrorIs(t, err, geodesy.ErrUnsupportedCoordinateSystem)

	_, err = geodesy.ToTownshipRange(s2.LatLngFromDegrees(43.5, -116.2))
	assert.ErrorIs(t, err, geodesy.ErrUnsupportedCoordinateSystem)

	_, err = geodesy.FromNZMG(2667000, 6000000)
	assert.ErrorIs(t, err, geodesy.ErrUnsupportedCoordinateSystem)

	_, err = geodesy.ToNZMG(s2.LatLngFromDegrees(-41, 174))
	assert.ErrorIs(t, err, geodesy.ErrUnsupportedCoordinateSystem)
}

func TestPrincipalMeridian(t *testing.T) {
	geo, ok := geodesy.PrincipalMeridian("Boise")
	assert.True(t, ok)
	assert.InDelta(t, 43.3725, geo.Lat.Degrees(), 1e-9)
	assert.InDelta(t, -116.393056, geo.Lng.Degrees(), 1e-6)

	_, ok = geodesy.PrincipalMeridian("FIFTH_PRINCIPAL")
	assert.True(t, ok)
	_, ok = geodesy.PrincipalMeridian("gila-and-salt river")
	assert.True(t, ok)

	_, ok = geodesy.PrincipalMeridian("greenwich")
	assert.False(t, ok)
}
