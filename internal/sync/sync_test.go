package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sofer_terminal/internal/models"
	"sofer_terminal/internal/remote"
	"sofer_terminal/internal/store"
	"sofer_terminal/internal/store/storetest"
)

// authority is a fake backend serving one fixed snapshot. Paths set in
// broken answer 500 instead.
type authority struct {
	broken map[string]bool
	hits   map[string]int
}

func newAuthority() *authority {
	return &authority{broken: map[string]bool{}, hits: map[string]int{}}
}

func (a *authority) handler() http.Handler {
	payloads := map[string]string{
		"/api/mobile/operators": `[{"id":1,"name":"Transbus"}]`,
		"/api/mobile/employees": `[{"id":1,"name":"vasile","role":"driver","operator_id":1},
			{"id":2,"name":"gheorghe","role":"driver","operator_id":null}]`,
		"/api/mobile/vehicles": `[{"id":1,"plate_number":"IS-01-ABC","operator_id":1}]`,
		"/api/mobile/routes": `[{"id":1,"name":"Iasi - Botosani","order_index":1,"visible_for_drivers":true},
			{"id":2,"name":"depou","order_index":null,"visible_for_drivers":false}]`,
		"/api/routes": `[{"id":1,"name":"Iasi - Botosani","order_index":1,"visible_for_drivers":true}]`,
		"/api/mobile/stations": `[{"id":10,"name":"Autogara Iasi","latitude":47.1585,"longitude":27.6014},
			{"id":11,"name":"Autogara Botosani","latitude":47.7486,"longitude":26.6590},
			{"id":12,"name":"fara coordonate","latitude":null,"longitude":null}]`,
		"/api/mobile/route_stations": `[{"id":1,"route_id":1,"station_id":10,"order_index":0,
				"geofence_type":"circle","geofence_radius":150,"geofence_polygon":null},
			{"id":2,"route_id":1,"station_id":11,"order_index":1,
				"geofence_type":"polygon","geofence_radius":null,
				"geofence_polygon":[[47.749,26.658],[47.749,26.660],[47.748,26.660],[47.748,26.658]]}]`,
		"/api/mobile/price_lists": `[{"id":1,"route_id":1,"category_id":1,"effective_from":"2025-01-01"},
			{"id":2,"route_id":1,"category_id":1,"effective_from":"2025-06-01"}]`,
		"/api/mobile/price_list_items": `[{"id":1,"price_list_id":1,"from_station_id":10,"to_station_id":11,"price":20,"currency":"RON"},
			{"id":2,"price_list_id":2,"from_station_id":10,"to_station_id":11,"price":25,"currency":"RON"}]`,
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.hits[r.URL.Path]++
		if a.broken[r.URL.Path] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		body, ok := payloads[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func newService(t *testing.T, a *authority) (*Service, *store.Store) {
	t.Helper()
	srv := httptest.NewServer(a.handler())
	t.Cleanup(srv.Close)

	st := storetest.Open(t)
	return New(remote.NewClient(srv.URL, srv.Client()), st), st
}

func TestRunMergesFullSnapshot(t *testing.T) {
	svc, st := newService(t, newAuthority())

	result := svc.Run(context.Background(), false)
	if result.Error != "" {
		t.Fatalf("Run failed: %s", result.Error)
	}

	want := Result{
		Operators:      1,
		Employees:      2,
		Vehicles:       1,
		Routes:         2,
		Stations:       3,
		RouteStations:  2,
		PriceLists:     2,
		PriceListItems: 2,
	}
	if result != want {
		t.Fatalf("counts = %+v, want %+v", result, want)
	}

	// The polygon must land in the replica in its flat textual form.
	links, err := st.RouteStationsForRoute(1)
	if err != nil {
		t.Fatalf("RouteStationsForRoute: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("got %d route stations, want 2", len(links))
	}
	if links[1].GeofencePolygon == nil ||
		*links[1].GeofencePolygon != "[[47.749,26.658],[47.749,26.66],[47.748,26.66],[47.748,26.658]]" {
		t.Fatalf("stored polygon = %v, want the flat pair encoding", links[1].GeofencePolygon)
	}
	if links[0].GeofenceRadius == nil || *links[0].GeofenceRadius != 150 {
		t.Fatalf("stored radius = %v, want 150", links[0].GeofenceRadius)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	svc, st := newService(t, newAuthority())

	first := svc.Run(context.Background(), false)
	if first.Error != "" {
		t.Fatalf("first run failed: %s", first.Error)
	}
	second := svc.Run(context.Background(), false)
	if second.Error != "" {
		t.Fatalf("second run failed: %s", second.Error)
	}
	if first != second {
		t.Fatalf("runs disagree: first %+v, second %+v", first, second)
	}

	n, err := st.Count(&models.Station{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Fatalf("station count = %d after double run, want 3", n)
	}
}

func TestRunFailureZeroesCountsButKeepsEarlierTables(t *testing.T) {
	a := newAuthority()
	a.broken["/api/mobile/price_lists"] = true
	svc, st := newService(t, a)

	result := svc.Run(context.Background(), false)
	if result.Error == "" {
		t.Fatal("expected a failed run")
	}
	if !strings.HasPrefix(result.Error, "price_lists:") {
		t.Fatalf("error = %q, want the failing stage named first", result.Error)
	}
	if result.Operators != 0 || result.Routes != 0 || result.Stations != 0 {
		t.Fatalf("failed run must report zero counts, got %+v", result)
	}

	// Tables merged before the failure stay committed.
	n, err := st.Count(&models.Station{})
	if err != nil {
		t.Fatalf("Count stations: %v", err)
	}
	if n != 3 {
		t.Fatalf("station count = %d, earlier tables should survive the failure", n)
	}
	n, err = st.Count(&models.PriceList{})
	if err != nil {
		t.Fatalf("Count price lists: %v", err)
	}
	if n != 0 {
		t.Fatalf("price list count = %d, the failing table must stay empty", n)
	}

	// The sequence stops at the failure; nothing after it is pulled.
	if a.hits["/api/mobile/price_list_items"] != 0 {
		t.Fatal("price list items were pulled after the failing stage")
	}
}

func TestRunPreservesLocalCredential(t *testing.T) {
	svc, st := newService(t, newAuthority())

	if res := svc.Run(context.Background(), false); res.Error != "" {
		t.Fatalf("first run failed: %s", res.Error)
	}
	if err := st.SetEmployeePassword(1, "$2a$10$localhash"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if res := svc.Run(context.Background(), false); res.Error != "" {
		t.Fatalf("second run failed: %s", res.Error)
	}

	emp, err := st.EmployeeByID(1)
	if err != nil {
		t.Fatalf("EmployeeByID: %v", err)
	}
	if emp == nil || emp.Password != "$2a$10$localhash" {
		t.Fatalf("credential lost across re-sync: %+v", emp)
	}
}

func TestRunScopesRoutesToDriverWhenLoggedIn(t *testing.T) {
	a := newAuthority()
	svc, _ := newService(t, a)
	svc.DriverID = 1

	result := svc.Run(context.Background(), true)
	if result.Error != "" {
		t.Fatalf("Run failed: %s", result.Error)
	}
	if result.Routes != 1 {
		t.Fatalf("routes = %d, want the driver-scoped single route", result.Routes)
	}
	if a.hits["/api/routes"] != 1 {
		t.Fatal("logged-in run should pull the driver-scoped route list")
	}
	if a.hits["/api/mobile/routes"] != 0 {
		t.Fatal("logged-in run must not fall back to the full route list")
	}
}

func TestRunWithoutSessionUsesFullRouteList(t *testing.T) {
	a := newAuthority()
	svc, _ := newService(t, a)
	// DriverID set but not logged in: still the public list.
	svc.DriverID = 1

	result := svc.Run(context.Background(), false)
	if result.Error != "" {
		t.Fatalf("Run failed: %s", result.Error)
	}
	if a.hits["/api/mobile/routes"] != 1 || a.hits["/api/routes"] != 0 {
		t.Fatalf("route pulls wrong: %+v", a.hits)
	}
}
