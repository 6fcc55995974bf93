package remote

// Wire types for the authority's mobile endpoints. Field names follow the
// backend's snake_case JSON exactly.

type OperatorDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type EmployeeDTO struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	OperatorID *int   `json:"operator_id"`
}

type VehicleDTO struct {
	ID          int    `json:"id"`
	PlateNumber string `json:"plate_number"`
	OperatorID  int    `json:"operator_id"`
}

type RouteDTO struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	OrderIndex        *int   `json:"order_index"`
	VisibleForDrivers bool   `json:"visible_for_drivers"`
}

type StationDTO struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// RouteStationDTO carries a stop's place in the route plus its geofence.
// The polygon arrives as an ordered list of [lat, lng] pairs.
type RouteStationDTO struct {
	ID              int         `json:"id"`
	RouteID         int         `json:"route_id"`
	StationID       int         `json:"station_id"`
	OrderIndex      int         `json:"order_index"`
	StationName     *string     `json:"station_name,omitempty"`
	GeofenceType    *string     `json:"geofence_type"`
	GeofenceRadius  *float64    `json:"geofence_radius"`
	GeofencePolygon [][]float64 `json:"geofence_polygon"`
}

type PriceListDTO struct {
	ID            int    `json:"id"`
	RouteID       int    `json:"route_id"`
	CategoryID    int    `json:"category_id"`
	EffectiveFrom string `json:"effective_from"`
}

type PriceListItemDTO struct {
	ID            int     `json:"id"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	PriceListID   int     `json:"price_list_id"`
	FromStationID int     `json:"from_station_id"`
	ToStationID   int     `json:"to_station_id"`
}

type TripDTO struct {
	TripID         int    `json:"trip_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Direction      string `json:"direction"`
	DirectionLabel string `json:"direction_label"`
	DisplayTime    string `json:"display_time"`
}

type RouteWithTripsDTO struct {
	RouteID   int       `json:"route_id"`
	RouteName string    `json:"route_name"`
	Trips     []TripDTO `json:"trips"`
}

type TripStartCheckRequest struct {
	RouteID   int  `json:"route_id"`
	TripID    *int `json:"trip_id"`
	VehicleID int  `json:"vehicle_id"`
}

// TripStartCheckResponse flags vehicle/route mismatches before departure.
// Critical means the driver must not start the trip.
type TripStartCheckResponse struct {
	OK       bool    `json:"ok"`
	Critical bool    `json:"critical"`
	Error    *string `json:"error"`
}
