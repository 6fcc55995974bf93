package models

// Geofence types carried on a route-station link.
const (
	GeofenceCircle  = "circle"
	GeofencePolygon = "polygon"
)

// RouteStation links a station into a route's stop sequence and carries the
// stop's geofence. OrderIndex is both the stop sequence and the priority
// used to break ties when several geofences contain the same position.
//
// GeofencePolygon is stored exactly as the authority sends it, as the flat
// textual encoding "[[lat,lng],[lat,lng],...]". It must round-trip through
// the resolver without loss.
type RouteStation struct {
	ID             int      `json:"id" gorm:"primaryKey"`
	RouteID        int      `json:"route_id" gorm:"index"`
	StationID      int      `json:"station_id" gorm:"index"`
	OrderIndex     int      `json:"order_index"`
	GeofenceType   string   `json:"geofence_type"` // "circle", "polygon" or empty
	GeofenceRadius *float64 `json:"geofence_radius"`
	GeofencePolygon *string `json:"geofence_polygon"`
}
