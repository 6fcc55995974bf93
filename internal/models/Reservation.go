package models

// Reservation statuses as sent by the authority.
const (
	ReservationActive    = "active"
	ReservationCancelled = "cancelled"
	ReservationNoShow    = "no_show"
)

// Reservation mirrors a server-originated booking relevant to boarding.
// The primary key is the server's reservation id; boarding state is the
// only thing written on-device.
type Reservation struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	TripID *int `json:"trip_id"`
	SeatID *int `json:"seat_id"`

	PersonID    *int64  `json:"person_id"`
	PersonName  *string `json:"person_name"`
	PersonPhone *string `json:"person_phone"`

	Status         string `json:"status"`
	BoardStationID *int   `json:"board_station_id"`
	ExitStationID  *int   `json:"exit_station_id"`

	Boarded   bool    `json:"boarded"`
	BoardedAt *string `json:"boarded_at"`

	SyncStatus SyncStatus `json:"sync_status"`
}

func (Reservation) TableName() string { return "reservations_local" }
