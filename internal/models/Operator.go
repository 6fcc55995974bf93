package models

// Operator represents a transport company whose routes and vehicles
// the driver terminal can serve. Rows are owned by the remote authority
// and only ever written by the synchronizer.
type Operator struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name"`
}
