package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sofer_terminal/internal/pricing"
)

// QuoteFare resolves the fare for a segment of a route. Stations are given
// either by id (from_id/to_id) or by name (from/to); category defaults to
// the normal fare, the date to today.
//
// A missing price is a normal outcome: the response carries a null quote
// and the sale screen must block encashment.
func QuoteFare(c *gin.Context) {
	routeID, err := strconv.Atoi(c.Query("route_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route_id"})
		return
	}

	categoryID := 1
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
	}

	asOf := time.Now()
	if raw := c.Query("date"); raw != "" {
		asOf, err = time.Parse(pricing.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, want YYYY-MM-DD"})
			return
		}
	}

	var quote *pricing.Quote
	switch {
	case c.Query("from_id") != "" && c.Query("to_id") != "":
		fromID, err1 := strconv.Atoi(c.Query("from_id"))
		toID, err2 := strconv.Atoi(c.Query("to_id"))
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from_id/to_id"})
			return
		}
		quote, err = Fares.PriceForSegment(routeID, fromID, toID, categoryID, asOf)

	case c.Query("from") != "" && c.Query("to") != "":
		quote, err = Fares.PriceForSegmentByName(routeID, c.Query("from"), c.Query("to"), categoryID, asOf)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide from_id/to_id or from/to"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fare lookup failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
