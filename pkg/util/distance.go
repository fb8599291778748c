package util

import (
	"fmt"
	"math"
)

// earthRadiusMeters matches the WGS-84 equatorial radius used by common
// geolocation libraries, so distances agree with clients computing their own.
const earthRadiusMeters = 6378137.0

// DistanceMeters returns the haversine distance between two points given in
// degrees, rounded to whole meters.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) int {
	lat1Rad := degToRad(lat1)
	lat2Rad := degToRad(lat2)
	dLat := lat2Rad - lat1Rad
	dLon := degToRad(lon2) - degToRad(lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return int(math.Round(earthRadiusMeters * c))
}

// FormatDistance renders meters as kilometers with two decimals, e.g. "1.25 km".
func FormatDistance(meters int) string {
	return fmt.Sprintf("%.2f km", float64(meters)/1000)
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
