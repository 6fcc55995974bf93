// Package sync pulls full master-data snapshots from the remote authority
// and merges them into the replica store.
package sync

import (
	"context"
	"time"

	logrus "github.com/sirupsen/logrus"

	"sofer_terminal/internal/geo"
	"sofer_terminal/internal/models"
	"sofer_terminal/internal/remote"
	"sofer_terminal/internal/store"
)

// Result reports how many rows of each kind a run merged. On failure the
// counts are all zero and Error carries the first failure; tables merged
// before the failure stay committed regardless.
type Result struct {
	Operators      int    `json:"operators"`
	Employees      int    `json:"employees"`
	Vehicles       int    `json:"vehicles"`
	Routes         int    `json:"routes"`
	Stations       int    `json:"stations"`
	RouteStations  int    `json:"route_stations"`
	PriceLists     int    `json:"price_lists"`
	PriceListItems int    `json:"price_list_items"`
	Error          string `json:"error,omitempty"`
}

// Service is the sole writer of master data. Everything it needs is handed
// in by the shell.
type Service struct {
	Client *remote.Client
	Store  *store.Store

	// DriverID scopes the authenticated route pull. Zero means the
	// terminal has no session and Run falls back to the full route list.
	DriverID int
}

func New(client *remote.Client, st *store.Store) *Service {
	return &Service{Client: client, Store: st}
}

// Run pulls operators, employees, vehicles, routes, stations,
// route-stations, price lists and price-list items, in that order, merging
// each batch by id before the next pull starts.
//
// The run is deliberately not atomic: a failure stops the sequence and
// zeroes the reported counts, but earlier tables keep their fresh rows.
// A terminal with this morning's stations and yesterday's prices is more
// useful than one with neither; each table is internally consistent
// because its batch merges in a single transaction.
func (s *Service) Run(ctx context.Context, loggedIn bool) Result {
	fail := func(stage string, err error) Result {
		logrus.WithError(err).WithField("stage", stage).Error("master data sync aborted")
		return Result{Error: stage + ": " + err.Error()}
	}

	var counts Result

	operators, err := s.Client.Operators(ctx)
	if err != nil {
		return fail("operators", err)
	}
	if err := s.Store.UpsertOperators(mapOperators(operators)); err != nil {
		return fail("operators", err)
	}
	counts.Operators = len(operators)

	employees, err := s.Client.Employees(ctx)
	if err != nil {
		return fail("employees", err)
	}
	if err := s.Store.UpsertEmployees(mapEmployees(employees)); err != nil {
		return fail("employees", err)
	}
	counts.Employees = len(employees)

	vehicles, err := s.Client.Vehicles(ctx)
	if err != nil {
		return fail("vehicles", err)
	}
	if err := s.Store.UpsertVehicles(mapVehicles(vehicles)); err != nil {
		return fail("vehicles", err)
	}
	counts.Vehicles = len(vehicles)

	routes, err := s.pullRoutes(ctx, loggedIn)
	if err != nil {
		return fail("routes", err)
	}
	if err := s.Store.UpsertRoutes(mapRoutes(routes)); err != nil {
		return fail("routes", err)
	}
	counts.Routes = len(routes)

	stations, err := s.Client.Stations(ctx)
	if err != nil {
		return fail("stations", err)
	}
	if err := s.Store.UpsertStations(mapStations(stations)); err != nil {
		return fail("stations", err)
	}
	counts.Stations = len(stations)

	// Geofence specs are always pulled for all routes, regardless of the
	// route filter above.
	routeStations, err := s.Client.RouteStations(ctx, nil, "")
	if err != nil {
		return fail("route_stations", err)
	}
	if err := s.Store.UpsertRouteStations(mapRouteStations(routeStations)); err != nil {
		return fail("route_stations", err)
	}
	counts.RouteStations = len(routeStations)

	priceLists, err := s.Client.PriceLists(ctx)
	if err != nil {
		return fail("price_lists", err)
	}
	if err := s.Store.UpsertPriceLists(mapPriceLists(priceLists)); err != nil {
		return fail("price_lists", err)
	}
	counts.PriceLists = len(priceLists)

	items, err := s.Client.PriceListItems(ctx)
	if err != nil {
		return fail("price_list_items", err)
	}
	if err := s.Store.UpsertPriceListItems(mapPriceListItems(items)); err != nil {
		return fail("price_list_items", err)
	}
	counts.PriceListItems = len(items)

	logrus.WithFields(logrus.Fields{
		"routes":   counts.Routes,
		"stations": counts.Stations,
		"prices":   counts.PriceListItems,
	}).Info("master data sync complete")

	return counts
}

func (s *Service) pullRoutes(ctx context.Context, loggedIn bool) ([]remote.RouteDTO, error) {
	if loggedIn && s.DriverID != 0 {
		today := time.Now().Format("2006-01-02")
		return s.Client.DriverRoutes(ctx, today, s.DriverID)
	}
	return s.Client.Routes(ctx)
}

// --- wire -> replica mapping ---

func mapOperators(in []remote.OperatorDTO) []models.Operator {
	out := make([]models.Operator, 0, len(in))
	for _, o := range in {
		out = append(out, models.Operator{ID: o.ID, Name: o.Name})
	}
	return out
}

// mapEmployees leaves Password zero on purpose; the credential is
// local-only and the store's employee upsert never writes the column.
func mapEmployees(in []remote.EmployeeDTO) []models.Employee {
	out := make([]models.Employee, 0, len(in))
	for _, e := range in {
		operatorID := 0
		if e.OperatorID != nil {
			operatorID = *e.OperatorID
		}
		out = append(out, models.Employee{
			ID:         e.ID,
			Name:       e.Name,
			Role:       e.Role,
			OperatorID: operatorID,
		})
	}
	return out
}

func mapVehicles(in []remote.VehicleDTO) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(in))
	for _, v := range in {
		out = append(out, models.Vehicle{ID: v.ID, PlateNumber: v.PlateNumber, OperatorID: v.OperatorID})
	}
	return out
}

func mapRoutes(in []remote.RouteDTO) []models.Route {
	out := make([]models.Route, 0, len(in))
	for _, r := range in {
		out = append(out, models.Route{
			ID:                r.ID,
			Name:              r.Name,
			OrderIndex:        r.OrderIndex,
			VisibleForDrivers: r.VisibleForDrivers,
		})
	}
	return out
}

func mapStations(in []remote.StationDTO) []models.Station {
	out := make([]models.Station, 0, len(in))
	for _, st := range in {
		out = append(out, models.Station{
			ID:        st.ID,
			Name:      st.Name,
			Latitude:  st.Latitude,
			Longitude: st.Longitude,
		})
	}
	return out
}

func mapRouteStations(in []remote.RouteStationDTO) []models.RouteStation {
	out := make([]models.RouteStation, 0, len(in))
	for _, rs := range in {
		row := models.RouteStation{
			ID:             rs.ID,
			RouteID:        rs.RouteID,
			StationID:      rs.StationID,
			OrderIndex:     rs.OrderIndex,
			GeofenceRadius: rs.GeofenceRadius,
		}
		if rs.GeofenceType != nil {
			row.GeofenceType = *rs.GeofenceType
		}
		if len(rs.GeofencePolygon) > 0 {
			if encoded, err := geo.EncodePairs(rs.GeofencePolygon); err == nil {
				row.GeofencePolygon = &encoded
			}
		}
		out = append(out, row)
	}
	return out
}

func mapPriceLists(in []remote.PriceListDTO) []models.PriceList {
	out := make([]models.PriceList, 0, len(in))
	for _, pl := range in {
		out = append(out, models.PriceList{
			ID:            pl.ID,
			RouteID:       pl.RouteID,
			CategoryID:    pl.CategoryID,
			EffectiveFrom: pl.EffectiveFrom,
		})
	}
	return out
}

func mapPriceListItems(in []remote.PriceListItemDTO) []models.PriceListItem {
	out := make([]models.PriceListItem, 0, len(in))
	for _, it := range in {
		out = append(out, models.PriceListItem{
			ID:            it.ID,
			PriceListID:   it.PriceListID,
			FromStationID: it.FromStationID,
			ToStationID:   it.ToStationID,
			Price:         it.Price,
			Currency:      it.Currency,
		})
	}
	return out
}
