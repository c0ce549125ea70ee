// Package geo contiene la distancia sobre la esfera terrestre usada para buscar barberos cercanos.
package geo

import (
	"fmt"
	"math"

	"github.com/jhoicas/nextcut-api/internal/domain"
)

// EarthRadiusKm radio medio de la Tierra usado por Haversine.
const EarthRadiusKm = 6371.0

// Point coordenada en grados decimales.
type Point struct {
	Lat  float64
	Long float64
}

// Validate comprueba los rangos lat ∈ [-90, 90] y long ∈ [-180, 180].
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return domain.NewValidationError("lat", fmt.Sprintf("latitud fuera de rango [-90, 90]: %v", p.Lat))
	}
	if math.IsNaN(p.Long) || p.Long < -180 || p.Long > 180 {
		return domain.NewValidationError("long", fmt.Sprintf("longitud fuera de rango [-180, 180]: %v", p.Long))
	}
	return nil
}

// DistanceKm calcula la distancia de círculo máximo entre a y b (fórmula de Haversine).
func DistanceKm(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLong := toRad(b.Long - a.Long)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLong/2)*math.Sin(dLong/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// RoundKm redondea a un decimal para mostrar.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
