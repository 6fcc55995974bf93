package tickets

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"sofer_terminal/internal/models"
	"sofer_terminal/internal/store/storetest"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func TestFinalPrice(t *testing.T) {
	cases := []struct {
		base     float64
		quantity int
		round    bool
		discount float64
		want     float64
	}{
		{42.50, 2, true, 50, 85.00},
		{42.50, 1, false, 0, 42.50},
		{42.50, 1, true, 0, 85.00},
		{42.50, 3, false, 0, 127.50},
		{100.00, 1, false, 50, 50.00},
		{100.00, 2, true, 100, 0},
	}
	for _, c := range cases {
		got := FinalPrice(c.base, c.quantity, c.round, c.discount)
		if got != c.want {
			t.Errorf("FinalPrice(%.2f, %d, %v, %.0f%%) = %.2f, want %.2f",
				c.base, c.quantity, c.round, c.discount, got, c.want)
		}
	}
}

func TestCreateComputesFinalPrice(t *testing.T) {
	m := NewManager(storetest.Open(t))

	ticket, err := m.Create(Draft{
		RouteID:         ptrI(1),
		FromStationID:   ptrI(10),
		ToStationID:     ptrI(11),
		BasePrice:       ptrF(42.50),
		Quantity:        2,
		RoundTrip:       true,
		DiscountPercent: 50,
		Currency:        "RON",
		PaymentMethod:   "cash",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.ID == 0 {
		t.Error("created ticket should have a local id assigned")
	}
	if ticket.SyncStatus != models.SyncPending {
		t.Errorf("new ticket status = %s, want pending", ticket.SyncStatus)
	}
	if ticket.FinalPrice == nil || *ticket.FinalPrice != 85.00 {
		t.Fatalf("final price = %v, want 85.00", ticket.FinalPrice)
	}
	if !CanFinalize(ticket) {
		t.Error("priced ticket should be finalizable")
	}
}

func TestCreateWithoutBasePrice(t *testing.T) {
	m := NewManager(storetest.Open(t))

	ticket, err := m.Create(Draft{RouteID: ptrI(1), Quantity: 1, PaymentMethod: "cash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.BasePrice != nil || ticket.FinalPrice != nil {
		t.Fatalf("unpriced ticket carries prices: base=%v final=%v", ticket.BasePrice, ticket.FinalPrice)
	}
	if CanFinalize(ticket) {
		t.Error("a ticket without a base price must not be finalizable")
	}
}

func TestCreateClampsQuantity(t *testing.T) {
	m := NewManager(storetest.Open(t))

	ticket, err := m.Create(Draft{BasePrice: ptrF(10), Quantity: 0})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.FinalPrice == nil || *ticket.FinalPrice != 10 {
		t.Fatalf("final price = %v, want 10 for a clamped single ticket", ticket.FinalPrice)
	}
}

func TestValidTransition(t *testing.T) {
	cases := []struct {
		cur, next models.SyncStatus
		ok        bool
	}{
		{models.SyncPending, models.SyncSynced, true},
		{models.SyncPending, models.SyncFailed, true},
		{models.SyncPending, models.SyncPending, false},
		{models.SyncFailed, models.SyncPending, true},
		{models.SyncFailed, models.SyncSynced, false},
		{models.SyncSynced, models.SyncPending, false},
		{models.SyncSynced, models.SyncFailed, false},
	}
	for _, c := range cases {
		if got := ValidTransition(c.cur, c.next); got != c.ok {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", c.cur, c.next, got, c.ok)
		}
	}
}

func TestTransitionLifecycle(t *testing.T) {
	st := storetest.Open(t)
	m := NewManager(st)

	ticket, err := m.Create(Draft{BasePrice: ptrF(10), Quantity: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := m.MarkFailed(ticket.ID); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if err := m.Retry(ticket.ID); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if err := m.MarkSynced(ticket.ID); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}

	// Synced is terminal.
	if err := m.Retry(ticket.ID); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("Retry on a synced ticket = %v, want ErrIllegalTransition", err)
	}
	if err := m.MarkFailed(ticket.ID); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("MarkFailed on a synced ticket = %v, want ErrIllegalTransition", err)
	}

	stored, err := st.TicketByID(ticket.ID)
	if err != nil {
		t.Fatalf("TicketByID: %v", err)
	}
	if stored.SyncStatus != models.SyncSynced {
		t.Fatalf("stored status = %s, want synced", stored.SyncStatus)
	}
}

func TestTransitionUnknownTicket(t *testing.T) {
	m := NewManager(storetest.Open(t))

	if err := m.MarkSynced(12345); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("MarkSynced(unknown) = %v, want ErrTicketNotFound", err)
	}
}

func TestMirrorAndBoardReservation(t *testing.T) {
	st := storetest.Open(t)
	m := NewManager(st)

	name := "Ion Popescu"
	r := &models.Reservation{
		ID:         500,
		TripID:     ptrI(7),
		PersonName: &name,
		Status:     models.ReservationActive,
		SyncStatus: models.SyncSynced,
	}
	if err := m.MirrorReservation(r); err != nil {
		t.Fatalf("MirrorReservation: %v", err)
	}

	// Re-mirroring the same booking refreshes it rather than duplicating.
	r.Status = models.ReservationCancelled
	if err := m.MirrorReservation(r); err != nil {
		t.Fatalf("MirrorReservation refresh: %v", err)
	}

	if err := m.Board(500); err != nil {
		t.Fatalf("Board: %v", err)
	}

	stored, err := st.ReservationByID(500)
	if err != nil {
		t.Fatalf("ReservationByID: %v", err)
	}
	if stored == nil {
		t.Fatal("reservation not stored")
	}
	if stored.Status != models.ReservationCancelled {
		t.Errorf("status = %q, want the refreshed value", stored.Status)
	}
	if !stored.Boarded || stored.BoardedAt == nil {
		t.Errorf("boarding not recorded: boarded=%v at=%v", stored.Boarded, stored.BoardedAt)
	}
	if stored.SyncStatus != models.SyncPending {
		t.Errorf("boarding should queue the row for upload, got status %s", stored.SyncStatus)
	}
}

func TestBoardUnknownReservation(t *testing.T) {
	m := NewManager(storetest.Open(t))

	if err := m.Board(999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("Board(unknown) = %v, want gorm.ErrRecordNotFound", err)
	}
}
