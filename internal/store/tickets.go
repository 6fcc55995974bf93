package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sofer_terminal/internal/models"
)

// InsertTicket appends a locally created ticket. The store assigns the
// local id; everything else is written exactly once here.
func (s *Store) InsertTicket(t *models.Ticket) error {
	return s.db.Create(t).Error
}

func (s *Store) Tickets() ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.db.Order("id").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *Store) TicketByID(id int64) (*models.Ticket, error) {
	var t models.Ticket
	if err := s.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *Store) TicketsWithStatus(status models.SyncStatus) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.db.Where("sync_status = ?", status).Order("id").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// SetTicketSyncStatus is the only mutation a ticket row ever sees.
func (s *Store) SetTicketSyncStatus(id int64, status models.SyncStatus) error {
	res := s.db.Model(&models.Ticket{}).Where("id = ?", id).Update("sync_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertReservation mirrors a server-originated booking, last write wins.
func (s *Store) UpsertReservation(r *models.Reservation) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(r).Error
}

func (s *Store) ReservationByID(id int64) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) ReservationsForTrip(tripID int) ([]models.Reservation, error) {
	var rows []models.Reservation
	if err := s.db.Where("trip_id = ?", tripID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkReservationBoarded flags a passenger as boarded and queues the change
// for upload.
func (s *Store) MarkReservationBoarded(id int64, boardedAt string) error {
	res := s.db.Model(&models.Reservation{}).Where("id = ?", id).Updates(map[string]interface{}{
		"boarded":     true,
		"boarded_at":  boardedAt,
		"sync_status": models.SyncPending,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
