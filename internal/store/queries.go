package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"sofer_terminal/internal/models"
)

// DirectionReturn is the direction value that reverses a route's stop
// enumeration. It does not change geofence geometry.
const DirectionReturn = "retur"

// Routes returns all routes ordered by order_index, routes without one
// last. When visibleOnly is set, administrative routes are filtered out.
func (s *Store) Routes(visibleOnly bool) ([]models.Route, error) {
	q := s.db.Order("order_index IS NULL, order_index, id")
	if visibleOnly {
		q = q.Where("visible_for_drivers = ?", true)
	}
	var routes []models.Route
	if err := q.Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (s *Store) Operators() ([]models.Operator, error) {
	var ops []models.Operator
	if err := s.db.Order("id").Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}

func (s *Store) EmployeeByID(id int) (*models.Employee, error) {
	var emp models.Employee
	if err := s.db.First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

// EmployeeByName looks up the login identifier the driver types. Names are
// what the authority's employee list carries; there is no local username.
func (s *Store) EmployeeByName(name string) (*models.Employee, error) {
	var emp models.Employee
	if err := s.db.Where("name = ?", name).First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

// SetEmployeePassword stores the local-only credential hash.
func (s *Store) SetEmployeePassword(id int, hash string) error {
	res := s.db.Model(&models.Employee{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) Vehicles() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.db.Order("id").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *Store) VehiclesForOperator(operatorID int) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.db.Where("operator_id = ?", operatorID).Order("id").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// StationsForRoute returns a route's stations in stop order. Direction
// "retur" reverses the enumeration; any other value leaves it as-is.
func (s *Store) StationsForRoute(routeID int, direction string) ([]models.Station, error) {
	var stations []models.Station
	err := s.db.Model(&models.Station{}).
		Joins("JOIN route_stations ON route_stations.station_id = stations.id").
		Where("route_stations.route_id = ?", routeID).
		Order("route_stations.order_index").
		Find(&stations).Error
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(direction, DirectionReturn) {
		for i, j := 0, len(stations)-1; i < j; i, j = i+1, j-1 {
			stations[i], stations[j] = stations[j], stations[i]
		}
	}
	return stations, nil
}

// RouteStationsForRoute returns the geofence specs for a route in
// order_index order, which is also the resolver's tie-break priority.
func (s *Store) RouteStationsForRoute(routeID int) ([]models.RouteStation, error) {
	var rows []models.RouteStation
	err := s.db.Where("route_id = ?", routeID).
		Order("order_index").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) PriceLists() ([]models.PriceList, error) {
	var lists []models.PriceList
	if err := s.db.Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *Store) ItemsForPriceList(listID int) ([]models.PriceListItem, error) {
	var items []models.PriceListItem
	if err := s.db.Where("price_list_id = ?", listID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of rows in the table backing the given model.
func (s *Store) Count(model interface{}) (int64, error) {
	var n int64
	if err := s.db.Model(model).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
