package geodesy_test

import (
	"testing"

	"github.com/sarbayes/geodesy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWGS84Constants(t *testing.T) {
	e := geodesy.WGS84
	require.NotNil(t, e)

	assert.Equal(t, 6378137.0, e.SemiMajorAxis())
	assert.InDelta(t, 0.0016792203863837047, e.ThirdFlattening(), 1e-18)
	assert.InDelta(t, 6367449.145823415, e.RectifyingRadius(), 1e-6)

	alpha := e.Alpha()
	beta := e.Beta()
	delta := e.Delta()
	assert.InDelta(t, 8.377318188192541e-4, alpha[0], 1e-15)
	assert.InDelta(t, 8.37732164082144e-4, beta[0], 1e-15)
	assert.InDelta(t, 3.356551448628875e-3, delta[0], 1e-15)

	// higher order terms shrink by roughly a factor of n each
	for _, series := range [][3]float64{alpha, beta, delta} {
		assert.Less(t, series[1], series[0])
		assert.Less(t, series[2], series[1])
		assert.Greater(t, series[2], 0.0)
	}
}

func TestNewEllipsoidValidation(t *testing.T) {
	_, err := geodesy.NewEllipsoid(0, geodesy.WGS84Flattening)
	assert.Error(t, err)
	_, err = geodesy.NewEllipsoid(-1, geodesy.WGS84Flattening)
	assert.Error(t, err)
	_, err = geodesy.NewEllipsoid(geodesy.WGS84SemiMajorAxis, 1/100.0)
	assert.Error(t, err)
	_, err = geodesy.NewEllipsoid(geodesy.WGS84SemiMajorAxis, 0)
	assert.Error(t, err)

	// GRS80 differs from WGS84 only in the flattening's last digits
	grs80, err := geodesy.NewEllipsoid(6378137, 1/298.257222101)
	require.NoError(t, err)
	assert.InDelta(t, geodesy.WGS84.RectifyingRadius(), grs80.RectifyingRadius(), 1e-3)
}
