package utils

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometers between two
// coordinates, using the spherical law of cosines. The acos argument is
// clamped to [-1, 1]: rounding can push it just outside the domain for
// near-zero and near-antipodal separations, which must yield 0 km or the
// maximum distance instead of NaN.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	dLonRad := (lon2 - lon1) * math.Pi / 180.0

	cosArg := math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLonRad) +
		math.Sin(lat1Rad)*math.Sin(lat2Rad)

	if cosArg > 1 {
		cosArg = 1
	} else if cosArg < -1 {
		cosArg = -1
	}

	return earthRadiusKm * math.Acos(cosArg)
}

// ValidateCoordinates reports whether lat/lon form a valid coordinate pair.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
