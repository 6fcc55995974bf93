// Package remote speaks the authority's mobile JSON API. The client is an
// explicit value constructed by the application shell and handed to
// whatever needs it; nothing in this package is process-global.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTimeout = 5 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given authority base URL. A nil
// httpClient gets the default timeout; callers that care pass their own.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("POST %s: decode: %w", path, err)
	}
	return nil
}

// --- master data snapshots ---

func (c *Client) Operators(ctx context.Context) ([]OperatorDTO, error) {
	var out []OperatorDTO
	return out, c.getJSON(ctx, "/api/mobile/operators", nil, &out)
}

func (c *Client) Employees(ctx context.Context) ([]EmployeeDTO, error) {
	var out []EmployeeDTO
	return out, c.getJSON(ctx, "/api/mobile/employees", nil, &out)
}

func (c *Client) Vehicles(ctx context.Context) ([]VehicleDTO, error) {
	var out []VehicleDTO
	return out, c.getJSON(ctx, "/api/mobile/vehicles", nil, &out)
}

func (c *Client) Stations(ctx context.Context) ([]StationDTO, error) {
	var out []StationDTO
	return out, c.getJSON(ctx, "/api/mobile/stations", nil, &out)
}

// Routes is the unauthenticated full route list.
func (c *Client) Routes(ctx context.Context) ([]RouteDTO, error) {
	var out []RouteDTO
	return out, c.getJSON(ctx, "/api/mobile/routes", nil, &out)
}

// DriverRoutes is the authenticated, date-and-driver-scoped route list used
// once the driver has logged in.
func (c *Client) DriverRoutes(ctx context.Context, date string, driverID int) ([]RouteDTO, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("driver", strconv.Itoa(driverID))
	var out []RouteDTO
	return out, c.getJSON(ctx, "/api/routes", q, &out)
}

// RouteStations pulls geofence specs, optionally filtered by route and
// direction. The synchronizer calls it unfiltered to mirror every route.
func (c *Client) RouteStations(ctx context.Context, routeID *int, direction string) ([]RouteStationDTO, error) {
	q := url.Values{}
	if routeID != nil {
		q.Set("route_id", strconv.Itoa(*routeID))
	}
	if direction != "" {
		q.Set("direction", direction)
	}
	var out []RouteStationDTO
	return out, c.getJSON(ctx, "/api/mobile/route_stations", q, &out)
}

func (c *Client) PriceLists(ctx context.Context) ([]PriceListDTO, error) {
	var out []PriceListDTO
	return out, c.getJSON(ctx, "/api/mobile/price_lists", nil, &out)
}

func (c *Client) PriceListItems(ctx context.Context) ([]PriceListItemDTO, error) {
	var out []PriceListItemDTO
	return out, c.getJSON(ctx, "/api/mobile/price_list_items", nil, &out)
}

// --- trip helpers ---

func (c *Client) RoutesWithTrips(ctx context.Context, date string) ([]RouteWithTripsDTO, error) {
	q := url.Values{}
	q.Set("date", date)
	var out []RouteWithTripsDTO
	return out, c.getJSON(ctx, "/api/mobile/routes-with-trips", q, &out)
}

// ValidateTripStart asks the authority whether this vehicle may run this
// trip. The check is opaque to the terminal.
func (c *Client) ValidateTripStart(ctx context.Context, req TripStartCheckRequest) (*TripStartCheckResponse, error) {
	var out TripStartCheckResponse
	if err := c.postJSON(ctx, "/api/mobile/validate-trip-start", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks reachability of the authority and returns the raw body for
// the sync screen.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ping", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, body), nil
}
