// Package geofence determines the driver's current stop from a raw
// position sample and the route's geofence set.
package geofence

import (
	logrus "github.com/sirupsen/logrus"

	"sofer_terminal/internal/geo"
	"sofer_terminal/internal/models"
)

type catalog interface {
	StationsForRoute(routeID int, direction string) ([]models.Station, error)
	RouteStationsForRoute(routeID int) ([]models.RouteStation, error)
}

// Match is the stop whose geofence contains the position.
type Match struct {
	StationID   int    `json:"station_id"`
	StationName string `json:"station_name"`
	OrderIndex  int    `json:"order_index"`
}

type Resolver struct {
	catalog catalog
}

func NewResolver(c catalog) *Resolver {
	return &Resolver{catalog: c}
}

// CurrentStation resolves the stop containing (lat, lng) on the route.
//
// Geofences are evaluated in route_stations order_index order and the
// first containing stop wins, so overlapping fences resolve by stop
// sequence rather than geometric proximity - deterministic when a terminal
// sits inside two fences at once. Direction only affects how other
// consumers enumerate the stops; it never changes the geometry, so the
// same position resolves identically for "tur" and "retur".
//
// A nil Match with a nil error means no geofence contains the position;
// the caller shows the station as unknown.
func (r *Resolver) CurrentStation(routeID int, direction string, lat, lng float64) (*Match, error) {
	stations, err := r.catalog.StationsForRoute(routeID, direction)
	if err != nil {
		return nil, err
	}
	routeStations, err := r.catalog.RouteStationsForRoute(routeID)
	if err != nil {
		return nil, err
	}

	stationByID := make(map[int]models.Station, len(stations))
	for _, st := range stations {
		stationByID[st.ID] = st
	}

	// routeStations already arrives in order_index order.
	for _, rs := range routeStations {
		st, ok := stationByID[rs.StationID]
		if !ok {
			// Stale link without a matching station: drop, never error.
			continue
		}
		if r.contains(rs, st, lat, lng) {
			return &Match{StationID: st.ID, StationName: st.Name, OrderIndex: rs.OrderIndex}, nil
		}
	}
	return nil, nil
}

func (r *Resolver) contains(rs models.RouteStation, st models.Station, lat, lng float64) bool {
	switch rs.GeofenceType {
	case models.GeofenceCircle:
		if st.Latitude == nil || st.Longitude == nil || rs.GeofenceRadius == nil {
			return false
		}
		return geo.PointInCircle(lat, lng, *st.Latitude, *st.Longitude, *rs.GeofenceRadius)

	case models.GeofencePolygon:
		if rs.GeofencePolygon == nil {
			return false
		}
		poly, err := geo.ParsePolygon(*rs.GeofencePolygon)
		if err != nil {
			logrus.WithError(err).WithField("route_station_id", rs.ID).
				Warn("malformed geofence polygon, skipping")
			return false
		}
		return geo.PointInPolygon(lat, lng, poly)
	}

	// "none" or unspecified geofence types never match.
	return false
}
