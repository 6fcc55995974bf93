// Package tickets creates local tickets, computes final fares, and drives
// sync status through its legal transitions. Everything here is local-only;
// the upload call that actually acknowledges a ticket lives outside the
// terminal core.
package tickets

import (
	"errors"
	"fmt"
	"time"

	"sofer_terminal/internal/models"
)

// ErrIllegalTransition is returned when a sync-status change is not
// permitted by the lifecycle.
var ErrIllegalTransition = errors.New("illegal sync status transition")

// ErrTicketNotFound is returned by transitions against unknown ticket ids.
var ErrTicketNotFound = errors.New("ticket not found")

type table interface {
	InsertTicket(*models.Ticket) error
	TicketByID(id int64) (*models.Ticket, error)
	SetTicketSyncStatus(id int64, status models.SyncStatus) error
	UpsertReservation(*models.Reservation) error
	MarkReservationBoarded(id int64, boardedAt string) error
}

// Draft carries everything the sale screen knows when the driver encashes.
type Draft struct {
	OperatorID    *int
	EmployeeID    *int
	TripID        *int
	TripVehicleID *int
	RouteID       *int

	FromStationID  *int
	ToStationID    *int
	SeatID         *int
	PriceListID    *int
	DiscountTypeID *int

	BasePrice       *float64
	Quantity        int
	RoundTrip       bool
	DiscountPercent float64

	Currency      string
	PaymentMethod string
}

type Manager struct {
	table table
	now   func() time.Time
}

func NewManager(t table) *Manager {
	return &Manager{table: t, now: time.Now}
}

// FinalPrice computes the encashed amount:
// base x quantity x 2 if round trip x (1 - discount/100).
func FinalPrice(base float64, quantity int, roundTrip bool, discountPercent float64) float64 {
	trips := 1.0
	if roundTrip {
		trips = 2
	}
	return base * float64(quantity) * trips * (1 - discountPercent/100)
}

// CanFinalize reports whether a ticket may be encashed. A ticket without a
// resolved base price can exist locally but stays non-finalizable until an
// operator intervenes; that is a state, not an error.
func CanFinalize(t *models.Ticket) bool {
	return t != nil && t.BasePrice != nil
}

// Create writes a new local ticket in pending state. Creation never touches
// the network and always succeeds locally (barring a store failure). When
// the draft has a base price the final price is computed here; otherwise
// both stay nil and the ticket is non-finalizable.
func (m *Manager) Create(d Draft) (*models.Ticket, error) {
	quantity := d.Quantity
	if quantity < 1 {
		quantity = 1
	}

	t := &models.Ticket{
		SyncStatus:     models.SyncPending,
		OperatorID:     d.OperatorID,
		EmployeeID:     d.EmployeeID,
		TripID:         d.TripID,
		TripVehicleID:  d.TripVehicleID,
		RouteID:        d.RouteID,
		FromStationID:  d.FromStationID,
		ToStationID:    d.ToStationID,
		SeatID:         d.SeatID,
		PriceListID:    d.PriceListID,
		DiscountTypeID: d.DiscountTypeID,
		BasePrice:      d.BasePrice,
		Currency:       d.Currency,
		PaymentMethod:  d.PaymentMethod,
		CreatedAt:      m.now(),
	}
	if d.BasePrice != nil {
		final := FinalPrice(*d.BasePrice, quantity, d.RoundTrip, d.DiscountPercent)
		t.FinalPrice = &final
	}

	if err := m.table.InsertTicket(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ValidTransition reports whether a sync status may move from cur to next:
// pending -> synced, pending -> failed, failed -> pending (retry).
// Synced is terminal.
func ValidTransition(cur, next models.SyncStatus) bool {
	switch cur {
	case models.SyncPending:
		return next == models.SyncSynced || next == models.SyncFailed
	case models.SyncFailed:
		return next == models.SyncPending
	}
	return false
}

func (m *Manager) transition(id int64, next models.SyncStatus) error {
	t, err := m.table.TicketByID(id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: %d", ErrTicketNotFound, id)
	}
	if !ValidTransition(t.SyncStatus, next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, t.SyncStatus, next)
	}
	return m.table.SetTicketSyncStatus(id, next)
}

// MarkSynced records that the upload collaborator got an acknowledgement.
func (m *Manager) MarkSynced(id int64) error {
	return m.transition(id, models.SyncSynced)
}

// MarkFailed records a rejected or unreachable upload.
func (m *Manager) MarkFailed(id int64) error {
	return m.transition(id, models.SyncFailed)
}

// Retry queues a failed ticket for another upload attempt.
func (m *Manager) Retry(id int64) error {
	return m.transition(id, models.SyncPending)
}

// MirrorReservation stores or refreshes a server-originated booking.
func (m *Manager) MirrorReservation(r *models.Reservation) error {
	return m.table.UpsertReservation(r)
}

// Board marks a reserved passenger as boarded now.
func (m *Manager) Board(reservationID int64) error {
	at := m.now().Format("2006-01-02 15:04:05")
	return m.table.MarkReservationBoarded(reservationID, at)
}
