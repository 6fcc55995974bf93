package geofence

import (
	"testing"

	"sofer_terminal/internal/models"
	"sofer_terminal/internal/store"
	"sofer_terminal/internal/store/storetest"
)

func ptrF(v float64) *float64 { return &v }
func ptrS(v string) *string   { return &v }

// seedRoute builds route 1 with three stops: a circular fence at the
// first, a polygon at the second, and a fence-less third.
func seedRoute(t *testing.T) *store.Store {
	t.Helper()
	st := storetest.Open(t)

	stations := []models.Station{
		{ID: 10, Name: "Autogara Botosani", Latitude: ptrF(47.7486), Longitude: ptrF(26.6590)},
		{ID: 11, Name: "Harlau", Latitude: ptrF(47.4300), Longitude: ptrF(26.9100)},
		{ID: 12, Name: "Autogara Iasi", Latitude: ptrF(47.1585), Longitude: ptrF(27.6014)},
	}
	if err := st.UpsertStations(stations); err != nil {
		t.Fatalf("seed stations: %v", err)
	}

	polygon := "[[47.431,26.909],[47.431,26.911],[47.429,26.911],[47.429,26.909]]"
	links := []models.RouteStation{
		{ID: 1, RouteID: 1, StationID: 10, OrderIndex: 0,
			GeofenceType: models.GeofenceCircle, GeofenceRadius: ptrF(150)},
		{ID: 2, RouteID: 1, StationID: 11, OrderIndex: 1,
			GeofenceType: models.GeofencePolygon, GeofencePolygon: ptrS(polygon)},
		{ID: 3, RouteID: 1, StationID: 12, OrderIndex: 2},
	}
	if err := st.UpsertRouteStations(links); err != nil {
		t.Fatalf("seed route stations: %v", err)
	}
	return st
}

func TestCurrentStationCircle(t *testing.T) {
	r := NewResolver(seedRoute(t))

	match, err := r.CurrentStation(1, "tur", 47.7486, 26.6590)
	if err != nil {
		t.Fatalf("CurrentStation: %v", err)
	}
	if match == nil || match.StationID != 10 {
		t.Fatalf("got %+v, want station 10", match)
	}
	if match.StationName != "Autogara Botosani" || match.OrderIndex != 0 {
		t.Fatalf("got %+v, want name and order of the first stop", match)
	}
}

func TestCurrentStationPolygon(t *testing.T) {
	r := NewResolver(seedRoute(t))

	match, err := r.CurrentStation(1, "tur", 47.4300, 26.9100)
	if err != nil {
		t.Fatalf("CurrentStation: %v", err)
	}
	if match == nil || match.StationID != 11 {
		t.Fatalf("got %+v, want the polygon-fenced station 11", match)
	}
}

func TestCurrentStationNoMatch(t *testing.T) {
	r := NewResolver(seedRoute(t))

	// Open road between stops.
	match, err := r.CurrentStation(1, "tur", 47.6000, 26.8000)
	if err != nil {
		t.Fatalf("CurrentStation: %v", err)
	}
	if match != nil {
		t.Fatalf("expected no match on the open road, got %+v", match)
	}
}

func TestCurrentStationFencelessStopNeverMatches(t *testing.T) {
	r := NewResolver(seedRoute(t))

	// Standing exactly on station 12, which carries no geofence.
	match, err := r.CurrentStation(1, "tur", 47.1585, 27.6014)
	if err != nil {
		t.Fatalf("CurrentStation: %v", err)
	}
	if match != nil {
		t.Fatalf("a stop without a geofence must not match, got %+v", match)
	}
}

func TestCurrentStationDirectionDoesNotChangeGeometry(t *testing.T) {
	r := NewResolver(seedRoute(t))

	tur, err := r.CurrentStation(1, "tur", 47.7486, 26.6590)
	if err != nil {
		t.Fatalf("CurrentStation tur: %v", err)
	}
	retur, err := r.CurrentStation(1, "retur", 47.7486, 26.6590)
	if err != nil {
		t.Fatalf("CurrentStation retur: %v", err)
	}
	if tur == nil || retur == nil || tur.StationID != retur.StationID {
		t.Fatalf("direction changed the resolution: tur=%+v retur=%+v", tur, retur)
	}
}

func TestCurrentStationOverlapResolvesByStopOrder(t *testing.T) {
	st := storetest.Open(t)

	// Two stops sharing the same coordinates, both with generous circles.
	stations := []models.Station{
		{ID: 20, Name: "Peron A", Latitude: ptrF(47.16), Longitude: ptrF(27.58)},
		{ID: 21, Name: "Peron B", Latitude: ptrF(47.16), Longitude: ptrF(27.58)},
	}
	if err := st.UpsertStations(stations); err != nil {
		t.Fatalf("seed stations: %v", err)
	}
	links := []models.RouteStation{
		{ID: 5, RouteID: 3, StationID: 21, OrderIndex: 1,
			GeofenceType: models.GeofenceCircle, GeofenceRadius: ptrF(500)},
		{ID: 6, RouteID: 3, StationID: 20, OrderIndex: 0,
			GeofenceType: models.GeofenceCircle, GeofenceRadius: ptrF(500)},
	}
	if err := st.UpsertRouteStations(links); err != nil {
		t.Fatalf("seed route stations: %v", err)
	}

	match, err := NewResolver(st).CurrentStation(3, "tur", 47.16, 27.58)
	if err != nil {
		t.Fatalf("CurrentStation: %v", err)
	}
	if match == nil || match.StationID != 20 {
		t.Fatalf("got %+v, want the lower order_index stop 20", match)
	}
}

func TestCurrentStationDropsOrphanLinks(t *testing.T) {
	st := seedRoute(t)

	// A link to a station the replica never received.
	err := st.UpsertRouteStations([]models.RouteStation{
		{ID: 9, RouteID: 1, StationID: 999, OrderIndex: 3,
			GeofenceType: models.GeofenceCircle, GeofenceRadius: ptrF(100)},
	})
	if err != nil {
		t.Fatalf("seed orphan link: %v", err)
	}

	match, err := NewResolver(st).CurrentStation(1, "tur", 47.4300, 26.9100)
	if err != nil {
		t.Fatalf("CurrentStation: %v", err)
	}
	if match == nil || match.StationID != 11 {
		t.Fatalf("got %+v, want station 11 with the orphan ignored", match)
	}
}

func TestCurrentStationSkipsMalformedPolygon(t *testing.T) {
	st := storetest.Open(t)

	stations := []models.Station{
		{ID: 30, Name: "Piata Centrala", Latitude: ptrF(47.20), Longitude: ptrF(27.50)},
	}
	if err := st.UpsertStations(stations); err != nil {
		t.Fatalf("seed stations: %v", err)
	}
	links := []models.RouteStation{
		{ID: 7, RouteID: 4, StationID: 30, OrderIndex: 0,
			GeofenceType: models.GeofencePolygon, GeofencePolygon: ptrS("garbage")},
	}
	if err := st.UpsertRouteStations(links); err != nil {
		t.Fatalf("seed route stations: %v", err)
	}

	match, err := NewResolver(st).CurrentStation(4, "tur", 47.20, 27.50)
	if err != nil {
		t.Fatalf("a malformed polygon must not error the resolution: %v", err)
	}
	if match != nil {
		t.Fatalf("a malformed polygon must not match, got %+v", match)
	}
}
