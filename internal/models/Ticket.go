package models

import "time"

// SyncStatus tracks whether a locally created row has been acknowledged by
// the remote authority. The wire values match the authority's upload API.
type SyncStatus int

const (
	SyncPending SyncStatus = 0
	SyncSynced  SyncStatus = 1
	SyncFailed  SyncStatus = 2
)

func (s SyncStatus) String() string {
	switch s {
	case SyncPending:
		return "pending"
	case SyncSynced:
		return "synced"
	case SyncFailed:
		return "failed"
	}
	return "unknown"
}

// Ticket is a fare sold on the terminal. Tickets are created only
// on-device and are immutable once written, except for SyncStatus which
// the upload path advances.
//
// BasePrice is nil when no price list covered the segment at sale time; a
// ticket in that state can exist but must not be encashed.
type Ticket struct {
	ID                  int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	RemoteReservationID *int64     `json:"remote_reservation_id"`
	SyncStatus          SyncStatus `json:"sync_status" gorm:"index"`

	OperatorID    *int `json:"operator_id"`
	EmployeeID    *int `json:"employee_id"`
	TripID        *int `json:"trip_id"`
	TripVehicleID *int `json:"trip_vehicle_id"`
	RouteID       *int `json:"route_id"`

	FromStationID  *int `json:"from_station_id"`
	ToStationID    *int `json:"to_station_id"`
	SeatID         *int `json:"seat_id"`
	PriceListID    *int `json:"price_list_id"`
	DiscountTypeID *int `json:"discount_type_id"`

	BasePrice     *float64 `json:"base_price"`
	FinalPrice    *float64 `json:"final_price"`
	Currency      string   `json:"currency"`
	PaymentMethod string   `json:"payment_method"` // "cash", "card"

	CreatedAt time.Time `json:"created_at"`
}

func (Ticket) TableName() string { return "tickets_local" }
