package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sofer_terminal/internal/middleware"
	"sofer_terminal/internal/models"
	"sofer_terminal/internal/tickets"
)

type createTicketInput struct {
	OperatorID    *int `json:"operator_id"`
	TripID        *int `json:"trip_id"`
	TripVehicleID *int `json:"trip_vehicle_id"`
	RouteID       *int `json:"route_id"`

	FromStationID  *int `json:"from_station_id"`
	ToStationID    *int `json:"to_station_id"`
	SeatID         *int `json:"seat_id"`
	DiscountTypeID *int `json:"discount_type_id"`

	Quantity  int  `json:"quantity"`
	RoundTrip bool `json:"round_trip"`

	PaymentMethod string `json:"payment_method"`
}

// CreateTicket sells a ticket. The base price is resolved from the replica
// price tables; when no price covers the segment the ticket is still
// written (pending, price-less) but reported as non-finalizable so the UI
// keeps the encash button disabled.
func CreateTicket(c *gin.Context) {
	var input createTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket input: " + err.Error()})
		return
	}

	employeeID := middleware.EmployeeID(c)

	draft := tickets.Draft{
		OperatorID:     input.OperatorID,
		EmployeeID:     &employeeID,
		TripID:         input.TripID,
		TripVehicleID:  input.TripVehicleID,
		RouteID:        input.RouteID,
		FromStationID:  input.FromStationID,
		ToStationID:    input.ToStationID,
		SeatID:         input.SeatID,
		DiscountTypeID: input.DiscountTypeID,
		Quantity:       input.Quantity,
		RoundTrip:      input.RoundTrip,
		PaymentMethod:  input.PaymentMethod,
	}

	if input.DiscountTypeID != nil {
		opt := tickets.DiscountByID(*input.DiscountTypeID)
		if opt == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown discount type"})
			return
		}
		draft.DiscountPercent = opt.Percent
	}

	if input.RouteID != nil && input.FromStationID != nil && input.ToStationID != nil {
		quote, err := Fares.PriceForSegment(*input.RouteID, *input.FromStationID, *input.ToStationID, 1, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Fare lookup failed: " + err.Error()})
			return
		}
		if quote != nil {
			draft.BasePrice = &quote.Price
			draft.PriceListID = &quote.PriceListID
			draft.Currency = quote.Currency
		}
	}

	ticket, err := Tickets.Create(draft)
	if err != nil {
		logrus.WithError(err).Error("CreateTicket: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create ticket failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ticket":       ticket,
		"can_finalize": tickets.CanFinalize(ticket),
	})
}

// ListTickets enumerates locally sold tickets, optionally filtered by
// ?status=pending|synced|failed for the upload collaborator.
func ListTickets(c *gin.Context) {
	var (
		rows []models.Ticket
		err  error
	)
	switch c.Query("status") {
	case "":
		rows, err = Store.Tickets()
	case "pending":
		rows, err = Store.TicketsWithStatus(models.SyncPending)
	case "synced":
		rows, err = Store.TicketsWithStatus(models.SyncSynced)
	case "failed":
		rows, err = Store.TicketsWithStatus(models.SyncFailed)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing tickets: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": rows})
}

// ListDiscounts returns the discount options for the sale screen.
func ListDiscounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"discounts": tickets.Discounts()})
}

func transitionTicket(c *gin.Context, apply func(int64) error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	switch err := apply(id); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "status updated"})
	case errors.Is(err, tickets.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, tickets.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// MarkTicketSynced is called by the upload collaborator after the
// authority acknowledged the ticket.
func MarkTicketSynced(c *gin.Context) { transitionTicket(c, Tickets.MarkSynced) }

// MarkTicketFailed records a rejected or unreachable upload.
func MarkTicketFailed(c *gin.Context) { transitionTicket(c, Tickets.MarkFailed) }

// RetryTicket re-queues a failed ticket for upload.
func RetryTicket(c *gin.Context) { transitionTicket(c, Tickets.Retry) }

// MirrorReservation stores or refreshes a server-originated booking so the
// boarding list works offline.
func MirrorReservation(c *gin.Context) {
	var r models.Reservation
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation: " + err.Error()})
		return
	}
	if r.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation needs its server id"})
		return
	}
	if err := Tickets.MirrorReservation(&r); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store reservation failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": r})
}

// ListReservations returns the boarding list for a trip.
func ListReservations(c *gin.Context) {
	tripID, err := strconv.Atoi(c.Query("trip_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip_id"})
		return
	}
	rows, err := Store.ReservationsForTrip(tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing reservations: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": rows})
}

// BoardReservation marks a reserved passenger as boarded.
func BoardReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}
	if err := Tickets.Board(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Board failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "boarded"})
}
