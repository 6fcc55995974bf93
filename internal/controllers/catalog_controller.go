package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"sofer_terminal/internal/remote"
)

// ListRoutes returns the replica's routes in display order, restricted to
// driver-visible ones unless ?all=true.
func ListRoutes(c *gin.Context) {
	visibleOnly := c.Query("all") != "true"
	routes, err := Store.Routes(visibleOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing routes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// ListStationsForRoute returns a route's stations in stop order;
// ?direction=retur reverses the enumeration.
func ListStationsForRoute(c *gin.Context) {
	routeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	stations, err := Store.StationsForRoute(routeID, c.Query("direction"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing stations: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations})
}

func ListOperators(c *gin.Context) {
	operators, err := Store.Operators()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing operators: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"operators": operators})
}

// ListVehicles returns all vehicles, or one operator's fleet with
// ?operator_id=.
func ListVehicles(c *gin.Context) {
	if raw := c.Query("operator_id"); raw != "" {
		operatorID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid operator_id"})
			return
		}
		vehicles, err := Store.VehiclesForOperator(operatorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
		return
	}

	vehicles, err := Store.Vehicles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// ListTrips relays the authority's per-route trip list for a day. Trips
// are not replicated locally, so this needs connectivity.
func ListTrips(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	trips, err := Remote.RoutesWithTrips(c.Request.Context(), date)
	if err != nil {
		logrus.WithError(err).Warn("ListTrips: authority unreachable")
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load trips: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": trips})
}

// ValidateTripStart forwards the pre-departure vehicle/route check. When
// the authority is unreachable the check degrades to non-critical unknown
// so an offline driver is not blocked from working.
func ValidateTripStart(c *gin.Context) {
	var body remote.TripStartCheckRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check, err := Remote.ValidateTripStart(c.Request.Context(), body)
	if err != nil {
		logrus.WithError(err).Warn("ValidateTripStart: authority unreachable")
		msg := "validation unavailable offline"
		c.JSON(http.StatusOK, remote.TripStartCheckResponse{OK: false, Critical: false, Error: &msg})
		return
	}
	c.JSON(http.StatusOK, check)
}
