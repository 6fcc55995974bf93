package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	logrus "github.com/sirupsen/logrus"
)

// upgrader configures the WebSocket connection for the position feed.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The API only listens on the device; any local origin is fine.
		return true
	},
}

// positionSample is one GPS fix from the UI shell.
type positionSample struct {
	RouteID   int     `json:"route_id"`
	Direction string  `json:"direction"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

const unknownStation = "necunoscuta"

// CurrentStation resolves the stop containing a single position sample.
// An empty match is reported as the unknown station, not as an error.
func CurrentStation(c *gin.Context) {
	routeID, err := strconv.Atoi(c.Query("route_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route_id"})
		return
	}
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lat/lng"})
		return
	}

	match, err := Stations.CurrentStation(routeID, c.Query("direction"), lat, lng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Station lookup failed: " + err.Error()})
		return
	}
	if match == nil {
		c.JSON(http.StatusOK, gin.H{"station_name": unknownStation, "match": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"station_name": match.StationName, "match": match})
}

// PositionFeed upgrades to a WebSocket and answers every incoming GPS
// sample with the resolved current station, so the UI header can track the
// stop continuously while driving.
func PositionFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("PositionFeed: WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var sample positionSample
		if err := conn.ReadJSON(&sample); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).Warn("PositionFeed: connection dropped")
			}
			return
		}

		match, err := Stations.CurrentStation(sample.RouteID, sample.Direction, sample.Latitude, sample.Longitude)
		if err != nil {
			logrus.WithError(err).Error("PositionFeed: station lookup failed")
			if writeErr := conn.WriteJSON(gin.H{"error": "station lookup failed"}); writeErr != nil {
				return
			}
			continue
		}

		response := gin.H{"station_name": unknownStation, "match": nil}
		if match != nil {
			response = gin.H{"station_name": match.StationName, "match": match}
		}
		if err := conn.WriteJSON(response); err != nil {
			return
		}
	}
}
