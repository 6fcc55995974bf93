// Package store is the on-device replica of the authority's master data
// plus the locally originated ticket and reservation tables.
//
// Master entities are merged by upsert on the server-assigned id: a re-sync
// overwrites matching rows and inserts new ones, and never deletes. Rows
// absent from a newer snapshot simply go stale until the authority ships a
// replacement under the same id.
package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sofer_terminal/internal/models"
)

const upsertBatchSize = 200

// Store wraps the replica database. All components receive it explicitly;
// there is no package-level instance.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// upsertByID merges rows into their table, last write wins. The batch runs
// in its own transaction, so readers observe either the pre- or post-merge
// state of the table, never a torn one.
func (s *Store) upsertByID(rows interface{}) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).CreateInBatches(rows, upsertBatchSize).Error
	})
}

func (s *Store) UpsertOperators(rows []models.Operator) error {
	if len(rows) == 0 {
		return nil
	}
	return s.upsertByID(rows)
}

// UpsertEmployees merges employee rows without ever touching the password
// column: the credential is set on-device and the authority does not know
// it, so a sync must not blank it out.
func (s *Store) UpsertEmployees(rows []models.Employee) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "role", "operator_id"}),
		}).CreateInBatches(rows, upsertBatchSize).Error
	})
}

func (s *Store) UpsertVehicles(rows []models.Vehicle) error {
	if len(rows) == 0 {
		return nil
	}
	return s.upsertByID(rows)
}

func (s *Store) UpsertRoutes(rows []models.Route) error {
	if len(rows) == 0 {
		return nil
	}
	return s.upsertByID(rows)
}

func (s *Store) UpsertStations(rows []models.Station) error {
	if len(rows) == 0 {
		return nil
	}
	return s.upsertByID(rows)
}

func (s *Store) UpsertRouteStations(rows []models.RouteStation) error {
	if len(rows) == 0 {
		return nil
	}
	return s.upsertByID(rows)
}

func (s *Store) UpsertPriceLists(rows []models.PriceList) error {
	if len(rows) == 0 {
		return nil
	}
	return s.upsertByID(rows)
}

func (s *Store) UpsertPriceListItems(rows []models.PriceListItem) error {
	if len(rows) == 0 {
		return nil
	}
	return s.upsertByID(rows)
}
