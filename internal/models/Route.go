package models

// Route is a service path between two terminals.
//
// OrderIndex controls display/iteration order; routes without one sort
// last. VisibleForDrivers hides administrative routes from the terminal UI.
type Route struct {
	ID                int    `json:"id" gorm:"primaryKey"`
	Name              string `json:"name"`
	OrderIndex        *int   `json:"order_index"`
	VisibleForDrivers bool   `json:"visible_for_drivers"`
}
