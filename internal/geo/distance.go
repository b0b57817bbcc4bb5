package geo

import (
	"math"
	"strconv"

	"favornet/server/internal/models"
)

const (
	earthRadiusMeters = 6378137
	metersPerMile     = 1609
)

// DistanceMeters returns the great-circle distance between a and b
func DistanceMeters(a, b models.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// DistanceMiles formats the distance in miles with one decimal place
func DistanceMiles(a, b models.Location) string {
	return strconv.FormatFloat(DistanceMeters(a, b)/metersPerMile, 'f', 1, 64)
}
