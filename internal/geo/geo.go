// Package geo holds the coordinate math used by the geofence resolver:
// great-circle distance, circular containment and a ray-casting
// point-in-polygon test over go-geom polygons.
package geo

import (
	"math"

	"github.com/twpayne/go-geom"
)

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two
// geographic points (haversine formula).
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// PointInCircle reports whether (lat, lng) lies within radiusMeters of the
// center. The boundary counts as inside.
func PointInCircle(lat, lng, centerLat, centerLng, radiusMeters float64) bool {
	return Distance(lat, lng, centerLat, centerLng) <= radiusMeters
}

// PointInPolygon reports whether (lat, lng) lies inside the outer ring of
// the polygon, by crossing-number ray cast. Points exactly on an edge or
// vertex follow the crossing-number convention and are not guaranteed to
// be reported inside. Polygon coordinates are (lng, lat) per go-geom's
// X/Y order.
func PointInPolygon(lat, lng float64, poly *geom.Polygon) bool {
	if poly == nil || poly.NumLinearRings() == 0 {
		return false
	}
	ring := poly.LinearRing(0).Coords()
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		xi, yi := ring[i].X(), ring[i].Y()
		xj, yj := ring[j].X(), ring[j].Y()

		if (yi > lat) != (yj > lat) &&
			lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
