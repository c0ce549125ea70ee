package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/nextcut-api/internal/domain/geo"
)

func TestDistanceKm(t *testing.T) {
	mumbai := geo.Point{Lat: 19.0760, Long: 72.8777}
	pune := geo.Point{Lat: 18.5204, Long: 73.8567}

	tests := []struct {
		name string
		a, b geo.Point
		want float64
		tol  float64
	}{
		{"mismo punto", mumbai, mumbai, 0, 1e-9},
		{"Mumbai-Pune", mumbai, pune, 120.0, 2.0},
		{"un grado de latitud", geo.Point{Lat: 0, Long: 0}, geo.Point{Lat: 1, Long: 0}, 111.19, 0.01},
		{"antípodas", geo.Point{Lat: 0, Long: 0}, geo.Point{Lat: 0, Long: 180}, math.Pi * geo.EarthRadiusKm, 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, geo.DistanceKm(tt.a, tt.b), tt.tol)
		})
	}
}

func TestDistanceKm_Simetrica(t *testing.T) {
	a := geo.Point{Lat: 12.9716, Long: 77.5946}
	b := geo.Point{Lat: 13.0827, Long: 80.2707}
	assert.InDelta(t, geo.DistanceKm(a, b), geo.DistanceKm(b, a), 1e-9)
}

func TestPointValidate(t *testing.T) {
	assert.NoError(t, geo.Point{Lat: 90, Long: -180}.Validate())
	assert.Error(t, geo.Point{Lat: 90.1, Long: 0}.Validate())
	assert.Error(t, geo.Point{Lat: 0, Long: 180.5}.Validate())
	assert.Error(t, geo.Point{Lat: math.NaN(), Long: 0}.Validate())
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 1.2, geo.RoundKm(1.234))
	assert.Equal(t, 1.3, geo.RoundKm(1.25))
}
