// internal/geo/distance.go
// Great-circle distance between two coordinates and human-readable formatting

package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371

// DistanceKm returns the haversine distance between two points in kilometers,
// rounded to one decimal place. Inputs are assumed to be valid coordinates;
// validation is the caller's responsibility.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*10) / 10
}

// FormatDistance renders a distance for display: sub-kilometer values in
// meters, values under 10 km with one decimal, everything else rounded to
// the nearest kilometer.
func FormatDistance(km float64) string {
	// branch on the rounded meter value: 0.9995 km must render as 1.0km,
	// never 1000m
	meters := math.Round(km * 1000)
	if meters < 1000 {
		return fmt.Sprintf("%.0fm", meters)
	}
	if km < 10 {
		return fmt.Sprintf("%.1fkm", km)
	}
	return fmt.Sprintf("%.0fkm", math.Round(km))
}
