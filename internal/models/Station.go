package models

// Station is a named stop. Coordinates are optional; geofence evaluation
// requires both to be present.
type Station struct {
	ID        int      `json:"id" gorm:"primaryKey"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
